package service

import (
	"context"
	"errors"
	"io"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
)

// StatusReadTimeout bounds how long a status read waits for the first update.
const StatusReadTimeout = 2 * time.Second

const (
	msgNotificationUnavailable = "Notification service unavailable"
	msgNoUpdates               = "No updates available"
)

type StatusService interface {
	// GetOrderStatus returns the first update published for orderID. It never
	// fails: problems are described in the message.
	GetOrderStatus(ctx context.Context, orderID string) *models.OrderStatusResponse
}

type statusService struct {
	client      channels.Link[rpc.NotificationServiceClient]
	readTimeout time.Duration
	log         logger.ILogger
}

func NewStatusService(client channels.Link[rpc.NotificationServiceClient], readTimeout time.Duration, log logger.ILogger) StatusService {
	if readTimeout <= 0 {
		readTimeout = StatusReadTimeout
	}
	return &statusService{client: client, readTimeout: readTimeout, log: log}
}

func (s *statusService) GetOrderStatus(ctx context.Context, orderID string) *models.OrderStatusResponse {
	client, ok := s.client.Get()
	if !ok {
		s.log.Warning("notification backend not configured; cannot fetch status", logger.String("order_id", orderID))
		return &models.OrderStatusResponse{OrderID: orderID, Message: msgNotificationUnavailable}
	}

	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	update, err := s.firstUpdate(ctx, client, orderID)
	switch {
	case err == nil:
		st := update.Status
		return &models.OrderStatusResponse{OrderID: update.OrderID, Status: &st, Message: update.Message}
	case isNoData(err):
		return &models.OrderStatusResponse{OrderID: orderID, Message: msgNoUpdates}
	default:
		s.log.Warning("failed to fetch order status", logger.String("order_id", orderID), logger.Error(err))
		return &models.OrderStatusResponse{OrderID: orderID, Message: "Error retrieving status: " + err.Error()}
	}
}

func (s *statusService) firstUpdate(ctx context.Context, client rpc.NotificationServiceClient, orderID string) (*rpc.OrderUpdate, error) {
	stream, err := client.StreamOrderUpdates(ctx, &rpc.SubscribeRequest{OrderID: orderID})
	if err != nil {
		return nil, err
	}
	return stream.Recv()
}

// isNoData reports whether the stream ended or timed out without an update.
func isNoData(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, context.DeadlineExceeded) ||
		status.Code(err) == codes.DeadlineExceeded
}
