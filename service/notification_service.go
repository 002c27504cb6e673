package service

import (
	"context"
	"sync"
	"time"

	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/metrics"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
)

// Notifier queues a best-effort notification. It never blocks and never fails.
type Notifier interface {
	Notify(orderID, status, title, body string)
}

type NotificationService interface {
	Notifier
	// SendNow delivers one notification synchronously. Failures are logged only.
	SendNow(ctx context.Context, orderID, status, title, body string)
	// Close stops accepting notifications and waits for queued ones.
	Close()
}

type NotifyOptions struct {
	QueueSize int
	Workers   int
	Timeout   time.Duration
}

type notificationService struct {
	client  channels.Link[rpc.NotificationServiceClient]
	timeout time.Duration
	metrics *metrics.SagaMetrics
	log     logger.ILogger
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan models.NotificationEvent
	wg     sync.WaitGroup
}

func NewNotificationService(client channels.Link[rpc.NotificationServiceClient], opts NotifyOptions, m *metrics.SagaMetrics, log logger.ILogger) NotificationService {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}

	s := &notificationService{
		client:  client,
		timeout: opts.Timeout,
		metrics: m,
		log:     log,
		now:     time.Now,
		queue:   make(chan models.NotificationEvent, opts.QueueSize),
	}

	if client.IsConnected() {
		for i := 0; i < opts.Workers; i++ {
			s.wg.Add(1)
			go s.worker()
		}
	}
	return s
}

func (s *notificationService) Notify(orderID, status, title, body string) {
	if !s.client.IsConnected() {
		s.log.Debug("notification backend not configured; skipping", logger.String("order_id", orderID), logger.String("status", status))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.log.Warning("notifier closed; dropping notification", logger.String("order_id", orderID), logger.String("status", status))
		s.metrics.Notifications.WithLabelValues("dropped").Inc()
		return
	}

	select {
	case s.queue <- s.event(orderID, status, title, body):
	default:
		s.log.Warning("notification queue full; dropping notification", logger.String("order_id", orderID), logger.String("status", status))
		s.metrics.Notifications.WithLabelValues("dropped").Inc()
	}
}

func (s *notificationService) SendNow(ctx context.Context, orderID, status, title, body string) {
	if !s.client.IsConnected() {
		s.log.Warning("notification backend not configured; cannot send notification", logger.String("order_id", orderID))
		return
	}
	s.deliver(ctx, s.event(orderID, status, title, body))
}

func (s *notificationService) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *notificationService) event(orderID, status, title, body string) models.NotificationEvent {
	return models.NotificationEvent{
		OrderID:   orderID,
		Status:    status,
		Title:     title,
		Body:      body,
		Timestamp: s.now(),
	}
}

func (s *notificationService) worker() {
	defer s.wg.Done()
	for ev := range s.queue {
		s.deliver(context.Background(), ev)
	}
}

func (s *notificationService) deliver(ctx context.Context, ev models.NotificationEvent) {
	client, ok := s.client.Get()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := client.SendNotification(ctx, &rpc.NotificationMessage{
		OrderID:   ev.OrderID,
		Status:    ev.Status,
		Title:     ev.Title,
		Body:      ev.Body,
		Timestamp: ev.Timestamp.UnixMilli(),
	})
	if err != nil {
		s.log.Warning("failed to send notification",
			logger.String("order_id", ev.OrderID), logger.String("status", ev.Status), logger.Error(err))
		s.metrics.Notifications.WithLabelValues("failed").Inc()
		return
	}

	s.log.Info("sent notification", logger.String("order_id", ev.OrderID), logger.String("status", ev.Status))
	s.metrics.Notifications.WithLabelValues("sent").Inc()
}
