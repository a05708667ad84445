// Command topup appends a Top Up ledger entry for a card. It is the same
// write path the top-up terminal uses, packaged for the operator desk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/config"
	"github.com/cyclepass/station/internal/database"
	"github.com/cyclepass/station/internal/reader"
	"github.com/cyclepass/station/internal/services"
)

func main() {
	card := flag.String("card", "", "card token (hex)")
	amount := flag.Int64("amount", 0, "credits to add")
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
	if *amount <= 0 {
		logger.Fatal("amount must be positive", zap.Int64("amount", *amount))
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

	ledger := services.NewLedgerService(db, logger)
	user, err := ledger.UserByToken(ctx, token)
	if err != nil {
		logger.Fatal("failed to resolve card", zap.Error(err))
	}

	if err := ledger.TopUp(ctx, user.ID, *amount, time.Now().In(loc)); err != nil {
		logger.Fatal("top-up failed", zap.Error(err))
	}

	balance, err := ledger.Balance(ctx, user.ID)
	if err != nil {
		logger.Fatal("failed to read back balance", zap.Error(err))
	}
	fmt.Printf("Added %d credits to %s. New balance: %d credits\n", *amount, user.Name, balance)
}
