// Command settle force-closes a user's overdue rental with normal return
// billing, for bikes recovered without the cardholder presenting again.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/billing"
	"github.com/cyclepass/station/internal/config"
	"github.com/cyclepass/station/internal/database"
	"github.com/cyclepass/station/internal/reader"
	"github.com/cyclepass/station/internal/services"
)

func main() {
	card := flag.String("card", "", "card token (hex)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	token, err := reader.ParseToken(*card)
	if err != nil {
		logger.Fatal("invalid card token", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	loc, err := cfg.Billing.Location()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to ledger store", zap.Error(err))
	}
	defer db.Close()

	calc := billing.Calculator{Rate: cfg.Billing.Rate, Period: cfg.Billing.Period}
	ledger := services.NewLedgerService(db, logger)
	rentals := services.NewRentalService(db, calc, logger)

	user, err := ledger.UserByToken(ctx, token)
	if err != nil {
		logger.Fatal("failed to resolve card", zap.Error(err))
	}

	receipt, err := rentals.ForceSettle(ctx, user.ID, time.Now().In(loc))
	if errors.Is(err, services.ErrNoOpenRental) {
		fmt.Printf("No open rental for %s\n", user.Name)
		return
	}
	if err != nil {
		logger.Fatal("force-settle failed", zap.Error(err))
	}

	fmt.Printf("Settled rental of bike %s for %s: %d periods, %d credits\n",
		receipt.BikeName, user.Name, receipt.Periods, receipt.Total)
}
