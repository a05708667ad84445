// Package feedback carries operator-facing status signals for the station:
// the console in front of the rack and, optionally, a Redis channel feeding
// an external display board.
package feedback

import (
	"time"

	"github.com/cyclepass/station/internal/models"
)

// Notifier receives every user-visible outcome of a card presentation.
// Implementations must not mutate durable state; a lost signal is annoying,
// a doubled charge is not.
type Notifier interface {
	CardDetected(token string)
	Balance(balance int64)
	InsufficientBalance(balance, required int64)
	UnregisteredCard(token string) // buzzer
	NoBikesAvailable()
	InvalidSelection(bikeID int64)
	RentalStarted(bike models.Bike, at time.Time) // solenoid lock opens
	RentalActive(bikeID int64, remaining time.Duration)
	AutoDeducted(bikeID int64, amount int64)
	BikeReturned(bikeName string, total int64, at time.Time) // solenoid lock closes
}

// Multi fans a signal out to several notifiers in order.
type Multi []Notifier

func (m Multi) CardDetected(token string) {
	for _, n := range m {
		n.CardDetected(token)
	}
}

func (m Multi) Balance(balance int64) {
	for _, n := range m {
		n.Balance(balance)
	}
}

func (m Multi) InsufficientBalance(balance, required int64) {
	for _, n := range m {
		n.InsufficientBalance(balance, required)
	}
}

func (m Multi) UnregisteredCard(token string) {
	for _, n := range m {
		n.UnregisteredCard(token)
	}
}

func (m Multi) NoBikesAvailable() {
	for _, n := range m {
		n.NoBikesAvailable()
	}
}

func (m Multi) InvalidSelection(bikeID int64) {
	for _, n := range m {
		n.InvalidSelection(bikeID)
	}
}

func (m Multi) RentalStarted(bike models.Bike, at time.Time) {
	for _, n := range m {
		n.RentalStarted(bike, at)
	}
}

func (m Multi) RentalActive(bikeID int64, remaining time.Duration) {
	for _, n := range m {
		n.RentalActive(bikeID, remaining)
	}
}

func (m Multi) AutoDeducted(bikeID int64, amount int64) {
	for _, n := range m {
		n.AutoDeducted(bikeID, amount)
	}
}

func (m Multi) BikeReturned(bikeName string, total int64, at time.Time) {
	for _, n := range m {
		n.BikeReturned(bikeName, total, at)
	}
}
