package backend

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/messaging"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
)

const (
	subscriberBuffer = 16
	// maxSnapshots caps the remembered last updates; the oldest order is
	// forgotten first.
	maxSnapshots = 4096
)

type subscriber struct {
	updates chan *rpc.OrderUpdate
}

// NotificationServer fans notifications out to the subscribers of an order
// and remembers the last update so late subscribers see it first.
type NotificationServer struct {
	publisher messaging.Publisher
	log       logger.ILogger
	now       func() time.Time

	mu            sync.Mutex
	subscribers   map[string]map[*subscriber]struct{}
	last          map[string]*rpc.OrderUpdate
	lastOrder     []string
	snapshotLimit int
}

func NewNotificationServer(publisher messaging.Publisher, log logger.ILogger) *NotificationServer {
	return &NotificationServer{
		publisher:     publisher,
		log:           log,
		now:           time.Now,
		subscribers:   make(map[string]map[*subscriber]struct{}),
		last:          make(map[string]*rpc.OrderUpdate),
		snapshotLimit: maxSnapshots,
	}
}

func (s *NotificationServer) StreamOrderUpdates(in *rpc.SubscribeRequest, stream rpc.OrderUpdateServerStream) error {
	orderID := in.OrderID
	s.log.Info("stream subscription", logger.String("user_id", in.UserID), logger.String("order_id", orderID))

	sub := &subscriber{updates: make(chan *rpc.OrderUpdate, subscriberBuffer)}
	snapshot := s.subscribe(orderID, sub)
	defer s.unsubscribe(orderID, sub)

	if snapshot == nil {
		snapshot = &rpc.OrderUpdate{
			OrderID:   orderID,
			Status:    models.UpdateSubscribed,
			Message:   "Subscription established",
			Timestamp: s.now().UnixMilli(),
		}
	}
	if err := stream.Send(snapshot); err != nil {
		return err
	}

	for {
		select {
		case <-stream.Context().Done():
			s.log.Info("stream closed", logger.String("order_id", orderID))
			return nil
		case update := <-sub.updates:
			if err := stream.Send(update); err != nil {
				return err
			}
		}
	}
}

func (s *NotificationServer) SendNotification(ctx context.Context, msg *rpc.NotificationMessage) (*rpc.NotificationMessage, error) {
	s.log.Info("notification received",
		logger.String("order_id", msg.OrderID),
		logger.String("status", msg.Status),
		logger.String("title", msg.Title))

	update := &rpc.OrderUpdate{
		OrderID:   msg.OrderID,
		Status:    models.UpdateNotification,
		Message:   msg.Title + ": " + msg.Body,
		Timestamp: s.now().UnixMilli(),
	}

	for _, sub := range s.record(update) {
		select {
		case sub.updates <- update:
		default:
			s.log.Warning("subscriber is not keeping up; update dropped", logger.String("order_id", msg.OrderID))
		}
	}

	s.mirror(ctx, msg)
	return msg, nil
}

// mirror copies the notification to the broker. Failures are logged only.
func (s *NotificationServer) mirror(ctx context.Context, msg *rpc.NotificationMessage) {
	payload, err := json.Marshal(models.NotificationEvent{
		OrderID:   msg.OrderID,
		Status:    msg.Status,
		Title:     msg.Title,
		Body:      msg.Body,
		Timestamp: time.UnixMilli(msg.Timestamp).UTC(),
	})
	if err != nil {
		s.log.Warning("failed to encode notification event", logger.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, msg.Status, payload); err != nil {
		s.log.Warning("failed to publish notification event", logger.String("order_id", msg.OrderID), logger.Error(err))
	}
}

func (s *NotificationServer) subscribe(orderID string, sub *subscriber) *rpc.OrderUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.subscribers[orderID]
	if !ok {
		set = make(map[*subscriber]struct{})
		s.subscribers[orderID] = set
	}
	set[sub] = struct{}{}
	return s.last[orderID]
}

func (s *NotificationServer) unsubscribe(orderID string, sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set, ok := s.subscribers[orderID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(s.subscribers, orderID)
		}
	}
}

func (s *NotificationServer) record(update *rpc.OrderUpdate) []*subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.last[update.OrderID]; !ok {
		s.lastOrder = append(s.lastOrder, update.OrderID)
		for len(s.lastOrder) > s.snapshotLimit {
			delete(s.last, s.lastOrder[0])
			s.lastOrder = s.lastOrder[1:]
		}
	}
	s.last[update.OrderID] = update

	subs := make([]*subscriber, 0, len(s.subscribers[update.OrderID]))
	for sub := range s.subscribers[update.OrderID] {
		subs = append(subs, sub)
	}
	return subs
}
