package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/billing"
	"github.com/cyclepass/station/internal/models"
)

// Receipt summarizes a closed rental.
type Receipt struct {
	RentalID  int64
	BikeID    int64
	BikeName  string
	StartTime time.Time
	EndTime   time.Time
	Periods   int64
	Total     int64
}

// RentalService is the per-user rental state machine: Idle (no open rental)
// and Renting (exactly one). Every transition runs in a single transaction
// that re-checks its precondition under row locks at commit time, because
// other agents (top-up terminal, a second station) share the store.
type RentalService struct {
	db     *sql.DB
	calc   billing.Calculator
	logger *zap.Logger
}

func NewRentalService(db *sql.DB, calc billing.Calculator, logger *zap.Logger) *RentalService {
	return &RentalService{db: db, calc: calc, logger: logger}
}

// Open returns the user's open rental, or nil when the user is Idle.
func (s *RentalService) Open(ctx context.Context, userID int64) (*models.Rental, error) {
	var rental models.Rental
	err := s.db.QueryRowContext(ctx, queryOpenRental, userID).
		Scan(&rental.ID, &rental.UserID, &rental.BikeID, &rental.StartTime, &rental.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up open rental for user %d: %w", userID, err)
	}
	return &rental, nil
}

// Begin performs the Idle -> Renting transition: insert the rental row and
// its base-rate deduction in one atomic unit. The no-open-rental and
// bike-available preconditions are re-validated inside the transaction; a
// concurrent session that got there first surfaces as ErrRaceLost or
// ErrBikeUnavailable with nothing applied.
func (s *RentalService) Begin(ctx context.Context, userID, bikeID int64, now time.Time) (*models.Rental, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning rental transaction: %w", err)
	}
	defer tx.Rollback()

	var openID int64
	err = tx.QueryRowContext(ctx, queryLockOpenRentalID, userID).Scan(&openID)
	if err == nil {
		return nil, ErrRaceLost
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("re-checking open rental: %w", err)
	}

	var bike models.Bike
	err = tx.QueryRowContext(ctx, queryLockBike, bikeID).Scan(&bike.ID, &bike.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBikeUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("locking bike %d: %w", bikeID, err)
	}

	var taken bool
	if err := tx.QueryRowContext(ctx, queryBikeHasOpenRental, bikeID).Scan(&taken); err != nil {
		return nil, fmt.Errorf("re-checking bike availability: %w", err)
	}
	if taken {
		return nil, ErrBikeUnavailable
	}

	rental := models.Rental{UserID: userID, BikeID: bikeID, StartTime: now}
	if err := tx.QueryRowContext(ctx, queryInsertRental, userID, bikeID, now).Scan(&rental.ID); err != nil {
		return nil, fmt.Errorf("inserting rental: %w", err)
	}

	if _, err := tx.ExecContext(ctx, queryInsertEntry,
		userID, bikeID, models.EntryDeduction, s.calc.Rate, now); err != nil {
		return nil, fmt.Errorf("inserting base charge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing rental: %w", err)
	}

	s.logger.Info("rental opened",
		zap.Int64("user_id", userID),
		zap.Int64("bike_id", bikeID),
		zap.Int64("charge", s.calc.Rate))
	return &rental, nil
}

// Return performs the Renting -> Idle transition: close the open rental and
// deduct the period-rounded charge atomically. Returns ErrNoOpenRental when
// the user is Idle (or another agent already closed it).
func (s *RentalService) Return(ctx context.Context, userID int64, now time.Time) (*Receipt, error) {
	return s.settle(ctx, userID, now)
}

// ForceSettle closes an overdue rental on the operator's behalf, with the
// same billing as a normal return. Used for bikes that were recovered
// without the cardholder ever presenting again.
func (s *RentalService) ForceSettle(ctx context.Context, userID int64, now time.Time) (*Receipt, error) {
	receipt, err := s.settle(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	s.logger.Warn("rental force-settled",
		zap.Int64("user_id", userID),
		zap.Int64("bike_id", receipt.BikeID),
		zap.Int64("total", receipt.Total))
	return receipt, nil
}

func (s *RentalService) settle(ctx context.Context, userID int64, now time.Time) (*Receipt, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning return transaction: %w", err)
	}
	defer tx.Rollback()

	rental, bikeName, err := lockOpenRental(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	elapsed := rental.Elapsed(now)
	periods := s.calc.Periods(elapsed)
	total := periods * s.calc.Rate

	res, err := tx.ExecContext(ctx, queryCloseRental, now, rental.ID)
	if err != nil {
		return nil, fmt.Errorf("closing rental %d: %w", rental.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("closing rental %d: %w", rental.ID, err)
	}
	if affected == 0 {
		return nil, ErrRaceLost
	}

	if _, err := tx.ExecContext(ctx, queryInsertEntry,
		userID, rental.BikeID, models.EntryDeduction, total, now); err != nil {
		return nil, fmt.Errorf("inserting return charge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing return: %w", err)
	}

	s.logger.Info("rental closed",
		zap.Int64("user_id", userID),
		zap.Int64("bike_id", rental.BikeID),
		zap.Duration("elapsed", elapsed),
		zap.Int64("periods", periods),
		zap.Int64("total", total))
	return &Receipt{
		RentalID:  rental.ID,
		BikeID:    rental.BikeID,
		BikeName:  bikeName,
		StartTime: rental.StartTime,
		EndTime:   now,
		Periods:   periods,
		Total:     total,
	}, nil
}

// ExtendCharge applies the extended-hold auto-deduction: a flat one-period
// charge without closing the rental. The Renting state is unchanged; the
// bike stays checked out and the clock keeps running.
func (s *RentalService) ExtendCharge(ctx context.Context, userID int64, now time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning charge transaction: %w", err)
	}
	defer tx.Rollback()

	rental, _, err := lockOpenRental(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	if !s.calc.Overdue(rental.Elapsed(now)) {
		return 0, ErrNotOverdue
	}

	if _, err := tx.ExecContext(ctx, queryInsertEntry,
		userID, rental.BikeID, models.EntryDeduction, s.calc.Rate, now); err != nil {
		return 0, fmt.Errorf("inserting extension charge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing extension charge: %w", err)
	}

	s.logger.Info("extended-hold charge applied",
		zap.Int64("user_id", userID),
		zap.Int64("bike_id", rental.BikeID),
		zap.Int64("charge", s.calc.Rate))
	return s.calc.Rate, nil
}

func lockOpenRental(ctx context.Context, tx *sql.Tx, userID int64) (*models.Rental, string, error) {
	rental := models.Rental{UserID: userID}
	var bikeName string
	err := tx.QueryRowContext(ctx, queryLockOpenRental, userID).
		Scan(&rental.ID, &rental.BikeID, &rental.StartTime, &bikeName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNoOpenRental
	}
	if err != nil {
		return nil, "", fmt.Errorf("locking open rental for user %d: %w", userID, err)
	}
	return &rental, bikeName, nil
}
