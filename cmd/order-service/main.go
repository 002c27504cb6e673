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
)

func main() {
	cfg := config.Load()
	log := logger.New(channels.OrderService, cfg.LoggerLevel)

	if err := run(cfg, log); err != nil {
		log.Error("order service stopped with error", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg config.Config, log logger.ILogger) error {
	srv, err := backend.NewServer(cfg.CertsDir, channels.OrderService, log)
	if err != nil {
		return fmt.Errorf("build gRPC server: %w", err)
	}
	rpc.RegisterOrderServiceServer(srv, backend.NewOrderServer(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return backend.Serve(ctx, srv, fmt.Sprintf(":%d", cfg.OrderServicePort), cfg.ShutdownTimeout, log)
}
