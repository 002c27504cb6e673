package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const NotificationServiceName = "notification.NotificationService"

const (
	notificationSendNotificationMethod     = "/" + NotificationServiceName + "/SendNotification"
	notificationStreamOrderUpdatesMethod   = "/" + NotificationServiceName + "/StreamOrderUpdates"
	notificationStreamOrderUpdatesStreamID = 0
)

type NotificationMessage struct {
	OrderID   string
	Status    string
	Title     string
	Body      string
	Timestamp int64
}

type SubscribeRequest struct {
	UserID  string
	OrderID string
}

type OrderUpdate struct {
	OrderID   string
	Status    string
	Message   string
	Timestamp int64
}

type NotificationServiceClient interface {
	SendNotification(ctx context.Context, in *NotificationMessage, opts ...grpc.CallOption) (*NotificationMessage, error)
	StreamOrderUpdates(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (OrderUpdateStream, error)
}

// OrderUpdateStream is the receiving side of a StreamOrderUpdates call.
type OrderUpdateStream interface {
	Recv() (*OrderUpdate, error)
}

type notificationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewNotificationServiceClient(cc grpc.ClientConnInterface) NotificationServiceClient {
	return &notificationServiceClient{cc: cc}
}

func (c *notificationServiceClient) SendNotification(ctx context.Context, in *NotificationMessage, opts ...grpc.CallOption) (*NotificationMessage, error) {
	out := new(NotificationMessage)
	if err := c.cc.Invoke(ctx, notificationSendNotificationMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notificationServiceClient) StreamOrderUpdates(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (OrderUpdateStream, error) {
	desc := &NotificationServiceDesc.Streams[notificationStreamOrderUpdatesStreamID]
	stream, err := c.cc.NewStream(ctx, desc, notificationStreamOrderUpdatesMethod, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &orderUpdateClientStream{stream}, nil
}

type orderUpdateClientStream struct {
	grpc.ClientStream
}

func (s *orderUpdateClientStream) Recv() (*OrderUpdate, error) {
	m := new(OrderUpdate)
	if err := s.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type NotificationServiceServer interface {
	SendNotification(ctx context.Context, in *NotificationMessage) (*NotificationMessage, error)
	StreamOrderUpdates(in *SubscribeRequest, stream OrderUpdateServerStream) error
}

// OrderUpdateServerStream is the sending side of a StreamOrderUpdates call.
type OrderUpdateServerStream interface {
	Send(*OrderUpdate) error
	Context() context.Context
}

type orderUpdateServerStream struct {
	grpc.ServerStream
}

func (s *orderUpdateServerStream) Send(m *OrderUpdate) error {
	return s.ServerStream.SendMsg(m)
}

func RegisterNotificationServiceServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&NotificationServiceDesc, srv)
}

func notificationSendNotificationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NotificationMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotificationServiceServer).SendNotification(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: notificationSendNotificationMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NotificationServiceServer).SendNotification(ctx, req.(*NotificationMessage))
	}
	return interceptor(ctx, in, info, handler)
}

func notificationStreamOrderUpdatesHandler(srv any, stream grpc.ServerStream) error {
	in := new(SubscribeRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(NotificationServiceServer).StreamOrderUpdates(in, &orderUpdateServerStream{stream})
}

var NotificationServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SendNotification", Handler: notificationSendNotificationHandler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamOrderUpdates",
			Handler:       notificationStreamOrderUpdatesHandler,
			ServerStreams: true,
		},
	},
	Metadata: "notification.proto",
}
