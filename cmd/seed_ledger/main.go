package main

import (
	"context"
	"fmt"
	"os"

	"foodgateway/config"
	"foodgateway/pkg/logger"
	"foodgateway/storage"
	"foodgateway/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New("seed-ledger", cfg.LoggerLevel)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("failed to seed ledger", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(ctx context.Context, cfg config.Config, log logger.ILogger) error {
	pg, err := postgres.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pg.Close()

	// Accounts outside the seed set are removed so the ledger matches it exactly.
	if _, err := pg.GetPool().Exec(ctx, "TRUNCATE TABLE ledger_accounts"); err != nil {
		return fmt.Errorf("truncate ledger: %w", err)
	}

	ledger := pg.Ledger()
	for account, balance := range storage.SeedBalances {
		if err := ledger.Set(ctx, account, balance); err != nil {
			return fmt.Errorf("seed account %s: %w", account, err)
		}
		log.Info("account seeded", logger.String("account", account), logger.Float64("balance", balance))
	}
	return nil
}
