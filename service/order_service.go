package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/metrics"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
)

const (
	msgAssigned      = "Order created and driver assigned successfully!"
	msgDriverPending = "Order created; driver pending"
)

type OrderService interface {
	// CreateOrder runs the order saga. It always returns a response; backend
	// failures are reported through its status fields.
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) *models.CreateOrderResponse
}

type orderService struct {
	orders      rpc.OrderServiceClient
	payments    rpc.PaymentServiceClient
	drivers     channels.Link[rpc.DriverServiceClient]
	notifier    Notifier
	callTimeout time.Duration
	metrics     *metrics.SagaMetrics
	log         logger.ILogger
}

func NewOrderService(b Backends, notifier Notifier, callTimeout time.Duration, m *metrics.SagaMetrics, log logger.ILogger) OrderService {
	return &orderService{
		orders:      b.Orders,
		payments:    b.Payments,
		drivers:     b.Drivers,
		notifier:    notifier,
		callTimeout: callTimeout,
		metrics:     m,
		log:         log,
	}
}

// paymentStep is the result of the payment call. err holds a transport
// failure; outcome is then the synthetic FAILED outcome.
type paymentStep struct {
	outcome models.PaymentOutcome
	err     error
}

type driverResult int

const (
	driverSkipped driverResult = iota
	driverAssigned
	driverPending
	driverUnreachable
)

type driverStep struct {
	result driverResult
	info   *models.DriverInfo
	err    error
}

func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) *models.CreateOrderResponse {
	// The saga runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	order := &models.Order{State: models.SagaCreating}
	s.log.Info("processing order", logger.String("customer_id", req.CustomerID), logger.String("restaurant_id", req.RestaurantID))

	created, err := s.createOrder(ctx, req)
	if err != nil {
		s.log.Error("failed to create order", logger.String("customer_id", req.CustomerID), logger.Error(err))
		s.metrics.Orders.WithLabelValues(models.OrderStatusError).Inc()
		return &models.CreateOrderResponse{
			Status:        models.OrderStatusError,
			PaymentStatus: models.PaymentFailed,
			Message:       "Order creation failed: " + err.Error(),
		}
	}

	order.ID = created.OrderID
	s.transition(order, models.SagaCreated)
	s.log.Info("order created", logger.String("order_id", order.ID), logger.String("backend_status", created.Status))
	s.notifier.Notify(order.ID, models.NotifyCreated, "Order Created", fmt.Sprintf("Order %s was created", order.ID))

	s.transition(order, models.SagaPaymentEvaluating)
	payment := s.authorizePayment(ctx, order.ID, req)
	order.PaymentStatus = payment.outcome.Status
	s.notifyPayment(order.ID, payment)

	drv := driverStep{result: driverSkipped}
	if isApproved(order.PaymentStatus) {
		if client, ok := s.drivers.Get(); ok {
			s.transition(order, models.SagaAssigningDriver)
			drv = s.assignDriver(ctx, client, order.ID, req)
		} else {
			s.log.Debug("driver backend not configured; skipping assignment", logger.String("order_id", order.ID))
		}
	}

	order.Status = decideStatus(order.PaymentStatus, drv)
	order.Driver = drv.info
	s.transition(order, models.SagaTerminal)
	s.metrics.Orders.WithLabelValues(order.Status).Inc()

	message := msgDriverPending
	if order.Status == models.OrderStatusAssigned {
		message = msgAssigned
	}

	return &models.CreateOrderResponse{
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Driver:        order.Driver,
		Message:       message,
	}
}

// decideStatus folds the payment and driver step results into the order
// status reported to the caller.
func decideStatus(paymentStatus string, drv driverStep) string {
	if !isApproved(paymentStatus) {
		return models.PaymentOrderStatus(paymentStatus)
	}
	switch drv.result {
	case driverAssigned:
		return models.OrderStatusAssigned
	case driverPending, driverUnreachable:
		return models.OrderStatusPendingDriver
	default:
		return models.OrderStatusCreated
	}
}

func isApproved(paymentStatus string) bool {
	return strings.EqualFold(paymentStatus, models.PaymentApproved)
}

func (s *orderService) createOrder(ctx context.Context, req *models.CreateOrderRequest) (*rpc.OrderResponse, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	started := time.Now()
	resp, err := s.orders.CreateOrder(ctx, &rpc.OrderRequest{
		UserID:       req.CustomerID,
		RestaurantID: req.RestaurantID,
		Items:        req.ItemNames(),
	})
	s.metrics.ObserveStep("create_order", started, err)
	return resp, err
}

func (s *orderService) authorizePayment(ctx context.Context, orderID string, req *models.CreateOrderRequest) paymentStep {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	started := time.Now()
	resp, err := s.payments.ProcessPayment(ctx, &rpc.PaymentRequest{
		OrderID:       orderID,
		UserID:        req.CustomerID,
		Amount:        req.TotalAmount(),
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	s.metrics.ObserveStep("process_payment", started, err)
	if err != nil {
		s.log.Error("failed to process payment", logger.String("order_id", orderID), logger.Error(err))
		return paymentStep{outcome: models.PaymentOutcome{Status: models.PaymentFailed}, err: err}
	}

	s.log.Info("payment processed",
		logger.String("order_id", orderID),
		logger.String("payment_id", resp.PaymentID),
		logger.String("status", resp.Status),
		logger.String("message", resp.Message))
	return paymentStep{outcome: models.PaymentOutcome{
		PaymentID: resp.PaymentID,
		Status:    resp.Status,
		Message:   resp.Message,
	}}
}

func (s *orderService) notifyPayment(orderID string, p paymentStep) {
	if p.err != nil {
		s.notifier.Notify(orderID, models.NotifyPaymentFailed, "Payment Failed",
			fmt.Sprintf("Payment processing failed for order %s: %s", orderID, p.err))
		return
	}

	status := p.outcome.Status
	tag := models.NotifyUnknownPayment
	if status != "" {
		tag = "PAYMENT_" + status
	}
	s.notifier.Notify(orderID, tag, "Payment "+status, fmt.Sprintf("Payment for order %s status: %s", orderID, status))
}

func (s *orderService) assignDriver(ctx context.Context, client rpc.DriverServiceClient, orderID string, req *models.CreateOrderRequest) driverStep {
	pickup := pickupLocation(req.DeliveryAddress)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	started := time.Now()
	resp, err := client.AssignDriver(callCtx, &rpc.AssignDriverRequest{
		OrderID:        orderID,
		PickupLocation: &rpc.Location{Latitude: pickup.Latitude, Longitude: pickup.Longitude},
	})
	s.metrics.ObserveStep("assign_driver", started, err)
	if err != nil {
		s.log.Warning("driver assignment failed", logger.String("order_id", orderID), logger.Error(err))
		return driverStep{result: driverUnreachable, err: err}
	}

	if !strings.EqualFold(resp.Status, models.DriverAssigned) {
		s.log.Info("no driver assigned yet", logger.String("order_id", orderID), logger.String("backend_status", resp.Status))
		s.notifier.Notify(orderID, models.NotifyPendingDriver, "Driver Pending",
			fmt.Sprintf("No driver assigned yet for order %s", orderID))
		return driverStep{result: driverPending}
	}

	s.log.Info("driver assigned", logger.String("order_id", orderID), logger.String("driver_id", resp.DriverID))
	s.notifier.Notify(orderID, models.NotifyDriverAssigned, "Driver Assigned",
		fmt.Sprintf("Driver %s assigned to order %s", resp.DriverName, orderID))
	return driverStep{
		result: driverAssigned,
		info: &models.DriverInfo{
			DriverID:             resp.DriverID,
			DriverName:           resp.DriverName,
			Vehicle:              resp.Vehicle,
			EstimatedTimeMinutes: resp.EstimatedTimeMinutes,
		},
	}
}

// pickupLocation defaults each coordinate independently.
func pickupLocation(addr *models.DeliveryAddress) models.Location {
	loc := models.DefaultPickup
	if addr == nil {
		return loc
	}
	if addr.Latitude != nil {
		loc.Latitude = *addr.Latitude
	}
	if addr.Longitude != nil {
		loc.Longitude = *addr.Longitude
	}
	return loc
}

func (s *orderService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func (s *orderService) transition(order *models.Order, next models.SagaState) {
	s.log.Debug("order state transition",
		logger.String("order_id", order.ID),
		logger.String("from", string(order.State)),
		logger.String("to", string(next)))
	order.State = next
}
