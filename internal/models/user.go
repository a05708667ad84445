package models

import "time"

// User is a registered cardholder. Registration happens out of band at the
// front desk; the station only ever reads users.
type User struct {
	ID        int64     `json:"id" db:"id"`
	CardNo    string    `json:"card_no" db:"card_no"` // opaque hex token from the RFID reader
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
