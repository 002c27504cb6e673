package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const PaymentServiceName = "payment.PaymentService"

const paymentProcessPaymentMethod = "/" + PaymentServiceName + "/ProcessPayment"

type PaymentRequest struct {
	OrderID       string
	UserID        string
	Amount        float64
	PaymentMethod string
}

type PaymentResponse struct {
	PaymentID string
	Status    string
	Message   string
}

type PaymentServiceClient interface {
	ProcessPayment(ctx context.Context, in *PaymentRequest, opts ...grpc.CallOption) (*PaymentResponse, error)
}

type paymentServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPaymentServiceClient(cc grpc.ClientConnInterface) PaymentServiceClient {
	return &paymentServiceClient{cc: cc}
}

func (c *paymentServiceClient) ProcessPayment(ctx context.Context, in *PaymentRequest, opts ...grpc.CallOption) (*PaymentResponse, error) {
	out := new(PaymentResponse)
	if err := c.cc.Invoke(ctx, paymentProcessPaymentMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type PaymentServiceServer interface {
	ProcessPayment(ctx context.Context, in *PaymentRequest) (*PaymentResponse, error)
}

func RegisterPaymentServiceServer(s grpc.ServiceRegistrar, srv PaymentServiceServer) {
	s.RegisterService(&PaymentServiceDesc, srv)
}

func paymentProcessPaymentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentServiceServer).ProcessPayment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: paymentProcessPaymentMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PaymentServiceServer).ProcessPayment(ctx, req.(*PaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var PaymentServiceDesc = grpc.ServiceDesc{
	ServiceName: PaymentServiceName,
	HandlerType: (*PaymentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ProcessPayment", Handler: paymentProcessPaymentHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "payment.proto",
}
