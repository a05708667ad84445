package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/models"
)

// LedgerService resolves users and balances from the append-only credit
// ledger and records top-ups. It never caches: every call reads the store.
type LedgerService struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewLedgerService(db *sql.DB, logger *zap.Logger) *LedgerService {
	return &LedgerService{db: db, logger: logger}
}

// UserByToken looks up the cardholder for an RFID token. Returns
// ErrUnknownUser for unregistered cards.
func (s *LedgerService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, queryUserByToken, token).
		Scan(&user.ID, &user.CardNo, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("looking up card token: %w", err)
	}
	return &user, nil
}

// Balance returns the signed sum of the user's ledger entries. A user with
// no entries has balance 0. A store failure propagates as an error and must
// never be read as a zero balance.
func (s *LedgerService) Balance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx, queryBalance, userID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("resolving balance for user %d: %w", userID, err)
	}
	return balance, nil
}

// TopUp appends a Top Up entry for the user. Used by the top-up terminal
// CLI; the station itself only deducts.
func (s *LedgerService) TopUp(ctx context.Context, userID, amount int64, now time.Time) error {
	if amount <= 0 {
		return fmt.Errorf("top-up amount must be positive, got %d", amount)
	}
	_, err := s.db.ExecContext(ctx, queryInsertEntry,
		userID, nil, models.EntryTopUp, amount, now)
	if err != nil {
		return fmt.Errorf("recording top-up: %w", err)
	}
	s.logger.Info("top-up recorded",
		zap.Int64("user_id", userID),
		zap.Int64("amount", amount))
	return nil
}
