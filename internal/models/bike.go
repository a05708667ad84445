package models

// Bike is a static reference entity. Availability is never stored on the
// bike row; it is derived from the absence of an open rental.
type Bike struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
