package feedback

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/models"
)

func TestPublisher_PublishesEvents(t *testing.T) {
	client, mock := redismock.NewClientMock()
	publisher := NewPublisher(client, "station:events", zap.NewNop())

	t.Run("card detected", func(t *testing.T) {
		mock.ExpectPublish("station:events",
			`{"event":"card_detected","token":"04A1B2C3"}`).SetVal(1)

		publisher.CardDetected("04A1B2C3")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("balance", func(t *testing.T) {
		mock.ExpectPublish("station:events",
			`{"balance":15,"event":"balance"}`).SetVal(1)

		publisher.Balance(15)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rental started", func(t *testing.T) {
		at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
		mock.ExpectPublish("station:events",
			`{"at":"2024-05-01T09:30:00Z","bike_id":1,"bike_name":"Bike A","event":"rental_started"}`).SetVal(1)

		publisher.RentalStarted(models.Bike{ID: 1, Name: "Bike A"}, at)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bike returned", func(t *testing.T) {
		at := time.Date(2024, 5, 1, 17, 30, 0, 0, time.UTC)
		mock.ExpectPublish("station:events",
			`{"at":"2024-05-01T17:30:00Z","bike_name":"Bike A","event":"bike_returned","total":10}`).SetVal(1)

		publisher.BikeReturned("Bike A", 10, at)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rental active", func(t *testing.T) {
		mock.ExpectPublish("station:events",
			`{"bike_id":42,"event":"rental_active","remaining_seconds":18000}`).SetVal(1)

		publisher.RentalActive(42, 5*time.Hour)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPublisher_PublishFailureIsSwallowed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	publisher := NewPublisher(client, "station:events", zap.NewNop())

	mock.ExpectPublish("station:events",
		`{"event":"no_bikes_available"}`).SetErr(assert.AnError)

	// Must not panic or propagate; the session never depends on the board.
	publisher.NoBikesAvailable()
	assert.NoError(t, mock.ExpectationsWereMet())
}
