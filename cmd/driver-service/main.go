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
	log := logger.New(channels.DriverService, cfg.LoggerLevel)

	if err := run(cfg, log); err != nil {
		log.Error("driver service stopped with error", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg config.Config, log logger.ILogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drivers, closeDrivers, err := openDrivers(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s driver pool: %w", cfg.DriverStore, err)
	}
	defer closeDrivers()

	srv, err := backend.NewServer(cfg.CertsDir, channels.DriverService, log)
	if err != nil {
		return fmt.Errorf("build gRPC server: %w", err)
	}
	driverServer := backend.NewDriverServer(drivers, log)
	if err := driverServer.LogPool(ctx); err != nil {
		return err
	}
	rpc.RegisterDriverServiceServer(srv, driverServer)

	return backend.Serve(ctx, srv, fmt.Sprintf(":%d", cfg.DriverServicePort), cfg.ShutdownTimeout, log)
}

func openDrivers(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IDriverStorage, func(), error) {
	switch cfg.DriverStore {
	case "memory":
		log.Info("using in-memory driver pool")
		return memory.NewDriverRepo(storage.SeedDrivers()), func() {}, nil
	case "postgres":
		pg, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return pg.Drivers(), pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown driver store %q", cfg.DriverStore)
	}
}
