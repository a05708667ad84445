package feedback

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/models"
)

// DefaultChannel is the pub/sub channel the display board subscribes to.
const DefaultChannel = "station:events"

const publishTimeout = 2 * time.Second

// Publisher mirrors every station signal as a JSON event on a Redis pub/sub
// channel. Publishing is best effort: a down display board must never block
// or fail a rental session, so errors are logged and dropped.
type Publisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

func NewPublisher(client *redis.Client, channel string, logger *zap.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel, logger: logger}
}

func (p *Publisher) publish(event string, fields map[string]any) {
	payload := map[string]any{"event": event}
	for k, v := range fields {
		payload[k] = v
	}
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("failed to encode event", zap.String("event", event), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, string(body)).Err(); err != nil {
		p.logger.Warn("failed to publish event", zap.String("event", event), zap.Error(err))
	}
}

func (p *Publisher) CardDetected(token string) {
	p.publish("card_detected", map[string]any{"token": token})
}

func (p *Publisher) Balance(balance int64) {
	p.publish("balance", map[string]any{"balance": balance})
}

func (p *Publisher) InsufficientBalance(balance, required int64) {
	p.publish("insufficient_balance", map[string]any{"balance": balance, "required": required})
}

func (p *Publisher) UnregisteredCard(token string) {
	p.publish("unregistered_card", map[string]any{"token": token})
}

func (p *Publisher) NoBikesAvailable() {
	p.publish("no_bikes_available", nil)
}

func (p *Publisher) InvalidSelection(bikeID int64) {
	p.publish("invalid_selection", map[string]any{"bike_id": bikeID})
}

func (p *Publisher) RentalStarted(bike models.Bike, at time.Time) {
	p.publish("rental_started", map[string]any{
		"bike_id":   bike.ID,
		"bike_name": bike.Name,
		"at":        at.Format(time.RFC3339),
	})
}

func (p *Publisher) RentalActive(bikeID int64, remaining time.Duration) {
	p.publish("rental_active", map[string]any{
		"bike_id":           bikeID,
		"remaining_seconds": int64(remaining / time.Second),
	})
}

func (p *Publisher) AutoDeducted(bikeID int64, amount int64) {
	p.publish("auto_deducted", map[string]any{"bike_id": bikeID, "amount": amount})
}

func (p *Publisher) BikeReturned(bikeName string, total int64, at time.Time) {
	p.publish("bike_returned", map[string]any{
		"bike_name": bikeName,
		"total":     total,
		"at":        at.Format(time.RFC3339),
	})
}
