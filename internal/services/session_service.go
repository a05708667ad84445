package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/billing"
	"github.com/cyclepass/station/internal/feedback"
	"github.com/cyclepass/station/internal/models"
)

// The session controller only needs narrow views of the services it
// drives; accepting interfaces keeps it testable without a database.

// UserDirectory resolves cardholders and balances.
type UserDirectory interface {
	UserByToken(ctx context.Context, token string) (*models.User, error)
	Balance(ctx context.Context, userID int64) (int64, error)
}

// BikeLister derives the currently rentable bikes.
type BikeLister interface {
	Available(ctx context.Context) ([]models.Bike, error)
}

// RentalDesk drives the per-user rental state machine.
type RentalDesk interface {
	Open(ctx context.Context, userID int64) (*models.Rental, error)
	Begin(ctx context.Context, userID, bikeID int64, now time.Time) (*models.Rental, error)
	Return(ctx context.Context, userID int64, now time.Time) (*Receipt, error)
	ExtendCharge(ctx context.Context, userID int64, now time.Time) (int64, error)
}

// Compile-time checks that the concrete services satisfy the views.
var (
	_ UserDirectory = (*LedgerService)(nil)
	_ BikeLister    = (*BikeService)(nil)
	_ RentalDesk    = (*RentalService)(nil)
)

// SessionService orchestrates one card presentation end to end. It holds no
// state between presentations; everything is re-derived from the store, and
// every durable change happens inside one of the rental desk's transactions.
type SessionService struct {
	users    UserDirectory
	bikes    BikeLister
	rentals  RentalDesk
	calc     billing.Calculator
	notifier feedback.Notifier
	terminal feedback.Terminal
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionService(
	users UserDirectory,
	bikes BikeLister,
	rentals RentalDesk,
	calc billing.Calculator,
	notifier feedback.Notifier,
	terminal feedback.Terminal,
	logger *zap.Logger,
	now func() time.Time,
) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		users:    users,
		bikes:    bikes,
		rentals:  rentals,
		calc:     calc,
		notifier: notifier,
		terminal: terminal,
		logger:   logger,
		now:      now,
	}
}

// HandleCard processes one presentation of the given card token. Expected
// business outcomes (unregistered card, insufficient balance, no bikes,
// invalid selection) are signalled and return nil; a non-nil error means
// the session aborted with no durable effect and may be retried on the
// next poll.
func (s *SessionService) HandleCard(ctx context.Context, token string) error {
	logger := s.logger.With(
		zap.String("session_id", uuid.NewString()),
		zap.String("token", token))

	s.notifier.CardDetected(token)

	user, err := s.users.UserByToken(ctx, token)
	if errors.Is(err, ErrUnknownUser) {
		logger.Info("unregistered card")
		s.notifier.UnregisteredCard(token)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolving user: %w", err)
	}
	logger = logger.With(zap.Int64("user_id", user.ID))

	balance, err := s.users.Balance(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("resolving balance: %w", err)
	}
	s.notifier.Balance(balance)

	if balance < s.calc.Rate {
		logger.Info("insufficient balance", zap.Int64("balance", balance))
		s.notifier.InsufficientBalance(balance, s.calc.Rate)
		return nil
	}

	rental, err := s.rentals.Open(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("resolving rental state: %w", err)
	}
	if rental == nil {
		return s.beginRental(ctx, logger, user)
	}
	return s.handleOpenRental(ctx, logger, user, rental)
}

func (s *SessionService) beginRental(ctx context.Context, logger *zap.Logger, user *models.User) error {
	bikes, err := s.bikes.Available(ctx)
	if err != nil {
		return fmt.Errorf("resolving availability: %w", err)
	}
	if len(bikes) == 0 {
		logger.Info("no bikes available")
		s.notifier.NoBikesAvailable()
		return nil
	}

	bikeID, err := s.terminal.SelectBike(bikes)
	if err != nil {
		return fmt.Errorf("reading bike selection: %w", err)
	}
	chosen, ok := findBike(bikes, bikeID)
	if !ok {
		logger.Info("invalid bike selection", zap.Int64("bike_id", bikeID))
		s.notifier.InvalidSelection(bikeID)
		return nil
	}

	opened, err := s.rentals.Begin(ctx, user.ID, chosen.ID, s.now())
	if err != nil {
		return fmt.Errorf("beginning rental: %w", err)
	}
	s.notifier.RentalStarted(chosen, opened.StartTime)
	return nil
}

func (s *SessionService) handleOpenRental(ctx context.Context, logger *zap.Logger, user *models.User, rental *models.Rental) error {
	now := s.now()
	elapsed := rental.Elapsed(now)
	logger = logger.With(
		zap.Int64("bike_id", rental.BikeID),
		zap.Duration("elapsed", elapsed))

	returning, err := s.terminal.ConfirmReturn()
	if err != nil {
		return fmt.Errorf("reading return intent: %w", err)
	}

	if returning {
		receipt, err := s.rentals.Return(ctx, user.ID, now)
		if err != nil {
			return fmt.Errorf("returning bike: %w", err)
		}
		s.notifier.BikeReturned(receipt.BikeName, receipt.Total, receipt.EndTime)
		return nil
	}

	if s.calc.Overdue(elapsed) {
		amount, err := s.rentals.ExtendCharge(ctx, user.ID, now)
		if err != nil {
			return fmt.Errorf("charging extended hold: %w", err)
		}
		logger.Info("extended-hold charge", zap.Int64("amount", amount))
		s.notifier.AutoDeducted(rental.BikeID, amount)
		return nil
	}

	s.notifier.RentalActive(rental.BikeID, s.calc.Remaining(elapsed))
	return nil
}

func findBike(bikes []models.Bike, id int64) (models.Bike, bool) {
	for _, bike := range bikes {
		if bike.ID == id {
			return bike, true
		}
	}
	return models.Bike{}, false
}
