package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"foodgateway/api"
	"foodgateway/config"
	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/metrics"
	"foodgateway/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	if err := run(cfg, log); err != nil {
		log.Error("gateway stopped with error", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg config.Config, log logger.ILogger) error {
	registry, err := channels.Open(channels.Settings{
		Order:        channels.Endpoint{Name: channels.OrderService, Address: cfg.OrderServiceAddress, CertsDir: cfg.CertsDir},
		Payment:      channels.Endpoint{Name: channels.PaymentService, Address: cfg.PaymentServiceAddress, CertsDir: cfg.CertsDir},
		Driver:       channels.Endpoint{Name: channels.DriverService, Address: cfg.DriverServiceAddress, CertsDir: cfg.DriverServiceCertsDir},
		Notification: channels.Endpoint{Name: channels.NotificationService, Address: cfg.NotificationServiceAddress, CertsDir: cfg.NotificationServiceCertsDir},
	}, log)
	if err != nil {
		return fmt.Errorf("open backend channels: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services := service.New(service.BackendsFromRegistry(registry), service.Options{
		CallTimeout:     cfg.BackendCallTimeout,
		NotifyQueueSize: cfg.NotifyQueueSize,
		NotifyWorkers:   cfg.NotifyWorkers,
		NotifyTimeout:   cfg.NotifyTimeout,
	}, metrics.NewSagaMetrics(reg), log)

	srv := api.NewServer(fmt.Sprintf(":%d", cfg.HTTPPort), api.NewRouter(api.Options{
		Services: services,
		Metrics:  metrics.NewServerMetrics(reg),
		Gatherer: reg,
		Log:      log,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("gateway listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down gateway")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	services.Notification().Close()
	if cerr := registry.Close(); cerr != nil {
		log.Warning("backend channels closed with errors", logger.Error(cerr))
	}
	log.Info("gateway stopped")
	return err
}
