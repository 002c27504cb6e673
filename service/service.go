package service

import (
	"time"

	"google.golang.org/grpc"

	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/metrics"
	"foodgateway/pkg/rpc"
)

type IServiceManager interface {
	Order() OrderService
	Status() StatusService
	Notification() NotificationService
}

// Backends are the RPC clients the gateway services call.
type Backends struct {
	Orders        rpc.OrderServiceClient
	Payments      rpc.PaymentServiceClient
	Drivers       channels.Link[rpc.DriverServiceClient]
	Notifications channels.Link[rpc.NotificationServiceClient]
}

func BackendsFromRegistry(r *channels.Registry) Backends {
	return Backends{
		Orders:   rpc.NewOrderServiceClient(r.Order),
		Payments: rpc.NewPaymentServiceClient(r.Payment),
		Drivers: channels.Map(r.Driver, func(cc *grpc.ClientConn) rpc.DriverServiceClient {
			return rpc.NewDriverServiceClient(cc)
		}),
		Notifications: channels.Map(r.Notification, func(cc *grpc.ClientConn) rpc.NotificationServiceClient {
			return rpc.NewNotificationServiceClient(cc)
		}),
	}
}

type Options struct {
	CallTimeout       time.Duration
	NotifyQueueSize   int
	NotifyWorkers     int
	NotifyTimeout     time.Duration
	StatusReadTimeout time.Duration
}

type service struct {
	orderService        OrderService
	statusService       StatusService
	notificationService NotificationService
}

func New(b Backends, opts Options, m *metrics.SagaMetrics, log logger.ILogger) IServiceManager {
	notifications := NewNotificationService(b.Notifications, NotifyOptions{
		QueueSize: opts.NotifyQueueSize,
		Workers:   opts.NotifyWorkers,
		Timeout:   opts.NotifyTimeout,
	}, m, log)

	return &service{
		orderService:        NewOrderService(b, notifications, opts.CallTimeout, m, log),
		statusService:       NewStatusService(b.Notifications, opts.StatusReadTimeout, log),
		notificationService: notifications,
	}
}

func (s *service) Order() OrderService {
	return s.orderService
}

func (s *service) Status() StatusService {
	return s.statusService
}

func (s *service) Notification() NotificationService {
	return s.notificationService
}
