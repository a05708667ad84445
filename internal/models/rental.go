package models

import (
	"database/sql"
	"time"
)

// Rental records one checkout of one bike by one user. A null EndTime marks
// the rental open; at most one open rental may exist per user.
type Rental struct {
	ID        int64        `json:"id" db:"id"`
	UserID    int64        `json:"user_id" db:"user_id"`
	BikeID    int64        `json:"bike_id" db:"bike_id"`
	StartTime time.Time    `json:"start_time" db:"start_time"`
	EndTime   sql.NullTime `json:"end_time" db:"end_time"`
}

// Open reports whether the rental has not been closed yet.
func (r *Rental) Open() bool {
	return !r.EndTime.Valid
}

// Elapsed returns the rental duration as of now, truncated to whole seconds.
func (r *Rental) Elapsed(now time.Time) time.Duration {
	return now.Sub(r.StartTime).Truncate(time.Second)
}
