package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cyclepass/station/internal/billing"
	"github.com/cyclepass/station/internal/config"
	"github.com/cyclepass/station/internal/database"
	"github.com/cyclepass/station/internal/feedback"
	"github.com/cyclepass/station/internal/reader"
	"github.com/cyclepass/station/internal/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	loc, err := cfg.Billing.Location()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to ledger store", zap.Error(err))
	}
	defer db.Close()

	rdb := database.OpenRedis(ctx, cfg.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	cardReader, err := reader.NewSerial(cfg.Reader.Port, cfg.Reader.BaudRate, logger)
	if err != nil {
		logger.Fatal("failed to open card reader", zap.Error(err))
	}
	defer cardReader.Close()

	calc := billing.Calculator{Rate: cfg.Billing.Rate, Period: cfg.Billing.Period}
	console := feedback.NewConsole(os.Stdin, os.Stdout)
	var notifier feedback.Notifier = console
	if rdb != nil {
		notifier = feedback.Multi{
			console,
			feedback.NewPublisher(rdb, cfg.Redis.Channel, logger),
		}
	}

	now := func() time.Time { return time.Now().In(loc) }
	ledger := services.NewLedgerService(db, logger)
	bikes := services.NewBikeService(db)
	rentals := services.NewRentalService(db, calc, logger)
	session := services.NewSessionService(ledger, bikes, rentals, calc, notifier, console, logger, now)

	fmt.Println("=== Bike Rental RFID System ===")
	fmt.Printf("Rate: %d credits for %d hours\n", calc.Rate, int(calc.Period.Hours()))
	logger.Info("station ready",
		zap.Int64("rate", calc.Rate),
		zap.Duration("period", calc.Period),
		zap.String("timezone", cfg.Billing.Timezone))

	run(ctx, cardReader, session, cfg.Station, logger)
	logger.Info("station stopped")
}

// run polls the card reader and processes one session at a time, end to
// end, until the context is cancelled. Session failures are logged and the
// loop keeps going; the next tap retries.
func run(ctx context.Context, cardReader reader.Reader, session *services.SessionService, cfg config.StationConfig, logger *zap.Logger) {
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	fmt.Println("\nReady to scan card...")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			token, ok := cardReader.Poll()
			if !ok {
				continue
			}
			sessCtx, cancel := context.WithTimeout(ctx, cfg.SessionTimeout)
			if err := session.HandleCard(sessCtx, token); err != nil {
				logger.Warn("session aborted", zap.Error(err))
			}
			cancel()
			fmt.Println("\nReady to scan card...")
		}
	}
}
