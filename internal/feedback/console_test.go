package feedback

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cyclepass/station/internal/models"
)

func TestConsole_Signals(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader(""), &out)
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	console.CardDetected("04A1B2C3")
	console.Balance(15)
	console.RentalStarted(models.Bike{ID: 1, Name: "Bike A"}, at)
	console.BikeReturned("Bike A", 30, at)
	console.UnregisteredCard("DEADBEEF")
	console.InsufficientBalance(5, 10)
	console.NoBikesAvailable()
	console.AutoDeducted(42, 10)
	console.RentalActive(42, 5*time.Hour+30*time.Minute)

	got := out.String()
	assert.Contains(t, got, "Card detected: 04A1B2C3")
	assert.Contains(t, got, "Current balance: 15 credits")
	assert.Contains(t, got, "Bike Bike A rented successfully at 2024-05-01 09:30:00")
	assert.Contains(t, got, "SOLENOID LOCK: OPENED")
	assert.Contains(t, got, "Total rental cost: 30 credits")
	assert.Contains(t, got, "SOLENOID LOCK: CLOSED")
	assert.Contains(t, got, "BUZZER: ON")
	assert.Contains(t, got, "Insufficient balance (minimum 10 credits)")
	assert.Contains(t, got, "No bikes available")
	assert.Contains(t, got, "Auto-deducted 10 credits")
	assert.Contains(t, got, "5.5 hours remaining")
}

func TestConsole_SelectBike(t *testing.T) {
	bikes := []models.Bike{{ID: 1, Name: "Bike A"}, {ID: 3, Name: "Bike C"}}

	t.Run("valid selection", func(t *testing.T) {
		var out bytes.Buffer
		console := NewConsole(strings.NewReader("3\n"), &out)

		id, err := console.SelectBike(bikes)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), id)
		assert.Contains(t, out.String(), "1: Bike A")
		assert.Contains(t, out.String(), "3: Bike C")
	})

	t.Run("not a number", func(t *testing.T) {
		var out bytes.Buffer
		console := NewConsole(strings.NewReader("abc\n"), &out)

		_, err := console.SelectBike(bikes)
		assert.Error(t, err)
	})

	t.Run("input closed", func(t *testing.T) {
		var out bytes.Buffer
		console := NewConsole(strings.NewReader(""), &out)

		_, err := console.SelectBike(bikes)
		assert.Error(t, err)
	})
}

func TestConsole_ConfirmReturn(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"anything\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		console := NewConsole(strings.NewReader(tt.input), &out)

		got, err := console.ConfirmReturn()
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
