package service

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	"foodgateway/pkg/metrics"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
)

var errUnavailable = errors.New("rpc error: code = Unavailable desc = connection refused")

type fakeOrders struct {
	resp  *rpc.OrderResponse
	err   error
	got   *rpc.OrderRequest
	calls int
}

func (f *fakeOrders) CreateOrder(ctx context.Context, in *rpc.OrderRequest, opts ...grpc.CallOption) (*rpc.OrderResponse, error) {
	f.calls++
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakePayments struct {
	resp  *rpc.PaymentResponse
	err   error
	got   *rpc.PaymentRequest
	calls int
}

func (f *fakePayments) ProcessPayment(ctx context.Context, in *rpc.PaymentRequest, opts ...grpc.CallOption) (*rpc.PaymentResponse, error) {
	f.calls++
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeDrivers struct {
	resp  *rpc.AssignDriverResponse
	err   error
	got   *rpc.AssignDriverRequest
	calls int
}

func (f *fakeDrivers) AssignDriver(ctx context.Context, in *rpc.AssignDriverRequest, opts ...grpc.CallOption) (*rpc.AssignDriverResponse, error) {
	f.calls++
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeDrivers) GetDriverStatus(ctx context.Context, in *rpc.DriverStatusRequest, opts ...grpc.CallOption) (*rpc.DriverStatusResponse, error) {
	return nil, errors.New("not implemented")
}

type fakeStream struct {
	ctx    context.Context
	update *rpc.OrderUpdate
	err    error
	block  bool
}

func (s *fakeStream) Recv() (*rpc.OrderUpdate, error) {
	if s.block {
		<-s.ctx.Done()
		return nil, s.ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.update, nil
}

type fakeNotifications struct {
	mu        sync.Mutex
	sent      []*rpc.NotificationMessage
	sendErr   error
	update    *rpc.OrderUpdate
	recvErr   error
	streamErr error
	block     bool
}

func (f *fakeNotifications) SendNotification(ctx context.Context, in *rpc.NotificationMessage, opts ...grpc.CallOption) (*rpc.NotificationMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, in)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return in, nil
}

func (f *fakeNotifications) StreamOrderUpdates(ctx context.Context, in *rpc.SubscribeRequest, opts ...grpc.CallOption) (rpc.OrderUpdateStream, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return &fakeStream{ctx: ctx, update: f.update, err: f.recvErr, block: f.block}, nil
}

func (f *fakeNotifications) messages() []*rpc.NotificationMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*rpc.NotificationMessage(nil), f.sent...)
}

// recordingNotifier captures notifications synchronously.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (n *recordingNotifier) Notify(orderID, status, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, models.NotificationEvent{OrderID: orderID, Status: status, Title: title, Body: body})
}

func (n *recordingNotifier) statuses() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Status)
	}
	return out
}

func testMetrics() *metrics.SagaMetrics {
	return metrics.NewSagaMetrics(prometheus.NewRegistry())
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
