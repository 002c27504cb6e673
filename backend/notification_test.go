package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
)

type published struct {
	routingKey string
	payload    []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{routingKey: routingKey, payload: payload})
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.msgs...)
}

func newNotificationClient(t *testing.T, pub *fakePublisher) rpc.NotificationServiceClient {
	t.Helper()
	srv := NewNotificationServer(pub, logger.Nop())
	srv.now = func() time.Time { return time.UnixMilli(1700000000000) }
	conn := startBufServer(t, func(s *grpc.Server) {
		rpc.RegisterNotificationServiceServer(s, srv)
	})
	return rpc.NewNotificationServiceClient(conn)
}

func TestStreamStartsWithSubscriptionSnapshot(t *testing.T) {
	client := newNotificationClient(t, &fakePublisher{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.StreamOrderUpdates(ctx, &rpc.SubscribeRequest{UserID: "customer-123", OrderID: "order-1"})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, &rpc.OrderUpdate{
		OrderID:   "order-1",
		Status:    models.UpdateSubscribed,
		Message:   "Subscription established",
		Timestamp: 1700000000000,
	}, first)
}

func TestSendNotificationFansOutToSubscribers(t *testing.T) {
	pub := &fakePublisher{}
	client := newNotificationClient(t, pub)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.StreamOrderUpdates(ctx, &rpc.SubscribeRequest{OrderID: "order-1"})
	require.NoError(t, err)
	_, err = stream.Recv()
	require.NoError(t, err)

	other, err := client.StreamOrderUpdates(ctx, &rpc.SubscribeRequest{OrderID: "order-2"})
	require.NoError(t, err)
	_, err = other.Recv()
	require.NoError(t, err)

	msg := &rpc.NotificationMessage{
		OrderID:   "order-1",
		Status:    "CREATED",
		Title:     "Order Created",
		Body:      "Order order-1 was created",
		Timestamp: 1700000000000,
	}
	echo, err := client.SendNotification(ctx, msg)
	require.NoError(t, err)
	assert.Equal(t, msg, echo)

	update, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, models.UpdateNotification, update.Status)
	assert.Equal(t, "Order Created: Order order-1 was created", update.Message)
	assert.Equal(t, "order-1", update.OrderID)

	msgs := pub.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, "CREATED", msgs[0].routingKey)
	var event models.NotificationEvent
	require.NoError(t, json.Unmarshal(msgs[0].payload, &event))
	assert.Equal(t, "order-1", event.OrderID)
	assert.Equal(t, "Order Created", event.Title)
}

func TestLateSubscriberSeesLastUpdate(t *testing.T) {
	client := newNotificationClient(t, &fakePublisher{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, status := range []string{"CREATED", "PAYMENT_APPROVED"} {
		_, err := client.SendNotification(ctx, &rpc.NotificationMessage{
			OrderID: "order-1",
			Status:  status,
			Title:   "Payment " + status,
			Body:    "body",
		})
		require.NoError(t, err)
	}

	stream, err := client.StreamOrderUpdates(ctx, &rpc.SubscribeRequest{OrderID: "order-1"})
	require.NoError(t, err)
	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, models.UpdateNotification, first.Status)
	assert.Equal(t, "Payment PAYMENT_APPROVED: body", first.Message)
}

func TestPublishFailureDoesNotFailSend(t *testing.T) {
	client := newNotificationClient(t, &fakePublisher{err: errors.New("broker down")})

	_, err := client.SendNotification(context.Background(), &rpc.NotificationMessage{OrderID: "order-1", Status: "CREATED"})
	assert.NoError(t, err)
}

func TestSnapshotsStayBounded(t *testing.T) {
	srv := NewNotificationServer(&fakePublisher{}, logger.Nop())
	srv.snapshotLimit = 3
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_, err := srv.SendNotification(ctx, &rpc.NotificationMessage{
			OrderID: fmt.Sprintf("order-%d", i),
			Status:  "CREATED",
			Title:   "Order Created",
		})
		require.NoError(t, err)
	}
	_, err := srv.SendNotification(ctx, &rpc.NotificationMessage{OrderID: "order-999", Status: "DELIVERED", Title: "Delivered"})
	require.NoError(t, err)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Len(t, srv.last, 3)
	assert.Equal(t, []string{"order-997", "order-998", "order-999"}, srv.lastOrder)
	assert.NotContains(t, srv.last, "order-0")
	assert.Equal(t, "Delivered: ", srv.last["order-999"].Message)
}
