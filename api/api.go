// Package api exposes the gateway over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/metrics"
	"foodgateway/service"
)

type Options struct {
	Services service.IServiceManager
	Metrics  *metrics.ServerMetrics
	Gatherer prometheus.Gatherer
	Log      logger.ILogger
}

// NewRouter wires the gateway routes.
func NewRouter(o Options) http.Handler {
	h := &handler{services: o.Services, log: o.Log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(instrument(o.Metrics))

	r.Route("/api", func(r chi.Router) {
		r.Get("/orders/health", h.health)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{orderId}", h.getOrderStatus)
		r.Post("/notifications/test", h.sendTestNotification)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(o.Gatherer))

	return r
}

// NewServer returns an HTTP server for the router on addr.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
