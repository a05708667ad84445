package models

import (
	"database/sql"
	"time"
)

// EntryKind discriminates the sign of a ledger entry.
type EntryKind string

const (
	EntryTopUp     EntryKind = "Top Up"
	EntryDeduction EntryKind = "Deduction"
)

// LedgerEntry is an immutable credit movement. Entries are append-only and
// never updated or deleted; a user's balance is the signed sum of their
// entries (+Top Up, -Deduction).
type LedgerEntry struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"`
	BikeID    sql.NullInt64 `json:"bike_id" db:"bike_id"` // set when the charge is tied to a bike
	Kind      EntryKind     `json:"kind" db:"kind"`
	Amount    int64         `json:"amount" db:"amount"` // whole credits, always >= 0
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// Signed returns the entry amount with its ledger sign applied.
func (e *LedgerEntry) Signed() int64 {
	if e.Kind == EntryDeduction {
		return -e.Amount
	}
	return e.Amount
}
