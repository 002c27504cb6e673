package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/rpc"
)

func newStatusService(backend *fakeNotifications, timeout time.Duration) StatusService {
	return NewStatusService(channels.Connected[rpc.NotificationServiceClient](backend), timeout, logger.Nop())
}

func TestGetOrderStatusReturnsFirstUpdate(t *testing.T) {
	backend := &fakeNotifications{update: &rpc.OrderUpdate{OrderID: "order-1", Status: "NOTIFICATION", Message: "Order Created: Order order-1 was created"}}

	resp := newStatusService(backend, time.Second).GetOrderStatus(context.Background(), "order-1")

	assert.Equal(t, "order-1", resp.OrderID)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "NOTIFICATION", *resp.Status)
	assert.Equal(t, "Order Created: Order order-1 was created", resp.Message)
}

func TestGetOrderStatusNoUpdateBeforeDeadline(t *testing.T) {
	backend := &fakeNotifications{block: true}

	started := time.Now()
	resp := newStatusService(backend, 50*time.Millisecond).GetOrderStatus(context.Background(), "order-1")

	assert.Less(t, time.Since(started), time.Second)
	assert.Equal(t, "order-1", resp.OrderID)
	assert.Nil(t, resp.Status)
	assert.Equal(t, "No updates available", resp.Message)
}

func TestGetOrderStatusEndOfStream(t *testing.T) {
	backend := &fakeNotifications{recvErr: io.EOF}

	resp := newStatusService(backend, time.Second).GetOrderStatus(context.Background(), "order-1")

	assert.Nil(t, resp.Status)
	assert.Equal(t, "No updates available", resp.Message)
}

func TestGetOrderStatusConnectionError(t *testing.T) {
	backend := &fakeNotifications{streamErr: errUnavailable}

	resp := newStatusService(backend, time.Second).GetOrderStatus(context.Background(), "order-1")

	assert.Equal(t, "order-1", resp.OrderID)
	assert.Nil(t, resp.Status)
	assert.Equal(t, "Error retrieving status: "+errUnavailable.Error(), resp.Message)
}

func TestGetOrderStatusUnconfigured(t *testing.T) {
	svc := NewStatusService(channels.Unconfigured[rpc.NotificationServiceClient](), 0, logger.Nop())

	resp := svc.GetOrderStatus(context.Background(), "order-1")

	assert.Equal(t, "order-1", resp.OrderID)
	assert.Nil(t, resp.Status)
	assert.Equal(t, "Notification service unavailable", resp.Message)
}
