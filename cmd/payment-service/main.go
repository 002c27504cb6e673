package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"foodgateway/backend"
	"foodgateway/config"
	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/rpc"
	"foodgateway/storage"
	"foodgateway/storage/memory"
	"foodgateway/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(channels.PaymentService, cfg.LoggerLevel)

	if err := run(cfg, log); err != nil {
		log.Error("payment service stopped with error", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg config.Config, log logger.ILogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger, closeLedger, err := openLedger(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s ledger: %w", cfg.LedgerDriver, err)
	}
	defer closeLedger()

	srv, err := backend.NewServer(cfg.CertsDir, channels.PaymentService, log)
	if err != nil {
		return fmt.Errorf("build gRPC server: %w", err)
	}
	rpc.RegisterPaymentServiceServer(srv, backend.NewPaymentServer(backend.NewAuthorizer(ledger, log), log))

	return backend.Serve(ctx, srv, fmt.Sprintf(":%d", cfg.PaymentServicePort), cfg.ShutdownTimeout, log)
}

func openLedger(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.ILedgerStorage, func(), error) {
	switch cfg.LedgerDriver {
	case "memory":
		log.Info("using in-memory ledger")
		return memory.NewLedgerRepo(storage.SeedBalances), func() {}, nil
	case "postgres":
		pg, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return pg.Ledger(), pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger driver %q", cfg.LedgerDriver)
	}
}
