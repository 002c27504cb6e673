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
	"foodgateway/pkg/messaging"
	"foodgateway/pkg/rpc"
)

func main() {
	cfg := config.Load()
	log := logger.New(channels.NotificationService, cfg.LoggerLevel)

	if err := run(cfg, log); err != nil {
		log.Error("notification service stopped with error", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg config.Config, log logger.ILogger) error {
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.RabbitURL != "" {
		rp, err := messaging.NewRabbitPublisher(cfg.RabbitURL, cfg.NotificationsExchange)
		if err != nil {
			return fmt.Errorf("connect to broker: %w", err)
		}
		publisher = rp
		log.Info("mirroring notifications to broker", logger.String("exchange", cfg.NotificationsExchange))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warning("failed to close publisher", logger.Error(err))
		}
	}()

	srv, err := backend.NewServer(cfg.CertsDir, channels.NotificationService, log)
	if err != nil {
		return fmt.Errorf("build gRPC server: %w", err)
	}
	rpc.RegisterNotificationServiceServer(srv, backend.NewNotificationServer(publisher, log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return backend.Serve(ctx, srv, fmt.Sprintf(":%d", cfg.NotificationServicePort), cfg.ShutdownTimeout, log)
}
