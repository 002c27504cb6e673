package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const DriverServiceName = "driver.DriverService"

const (
	driverAssignDriverMethod    = "/" + DriverServiceName + "/AssignDriver"
	driverGetDriverStatusMethod = "/" + DriverServiceName + "/GetDriverStatus"
)

type Location struct {
	Latitude  float64
	Longitude float64
}

type AssignDriverRequest struct {
	OrderID        string
	PickupLocation *Location
}

type AssignDriverResponse struct {
	DriverID             string
	DriverName           string
	Vehicle              string
	EstimatedTimeMinutes int32
	Status               string
}

type DriverStatusRequest struct {
	DriverID string
}

type Driver struct {
	DriverID        string
	Name            string
	Vehicle         string
	LicensePlate    string
	CurrentLocation *Location
	Available       bool
}

type DriverStatusResponse struct {
	Driver *Driver
}

type DriverServiceClient interface {
	AssignDriver(ctx context.Context, in *AssignDriverRequest, opts ...grpc.CallOption) (*AssignDriverResponse, error)
	GetDriverStatus(ctx context.Context, in *DriverStatusRequest, opts ...grpc.CallOption) (*DriverStatusResponse, error)
}

type driverServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDriverServiceClient(cc grpc.ClientConnInterface) DriverServiceClient {
	return &driverServiceClient{cc: cc}
}

func (c *driverServiceClient) AssignDriver(ctx context.Context, in *AssignDriverRequest, opts ...grpc.CallOption) (*AssignDriverResponse, error) {
	out := new(AssignDriverResponse)
	if err := c.cc.Invoke(ctx, driverAssignDriverMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *driverServiceClient) GetDriverStatus(ctx context.Context, in *DriverStatusRequest, opts ...grpc.CallOption) (*DriverStatusResponse, error) {
	out := new(DriverStatusResponse)
	if err := c.cc.Invoke(ctx, driverGetDriverStatusMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type DriverServiceServer interface {
	AssignDriver(ctx context.Context, in *AssignDriverRequest) (*AssignDriverResponse, error)
	GetDriverStatus(ctx context.Context, in *DriverStatusRequest) (*DriverStatusResponse, error)
}

func RegisterDriverServiceServer(s grpc.ServiceRegistrar, srv DriverServiceServer) {
	s.RegisterService(&DriverServiceDesc, srv)
}

func driverAssignDriverHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AssignDriverRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DriverServiceServer).AssignDriver(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: driverAssignDriverMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DriverServiceServer).AssignDriver(ctx, req.(*AssignDriverRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func driverGetDriverStatusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DriverStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DriverServiceServer).GetDriverStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: driverGetDriverStatusMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DriverServiceServer).GetDriverStatus(ctx, req.(*DriverStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var DriverServiceDesc = grpc.ServiceDesc{
	ServiceName: DriverServiceName,
	HandlerType: (*DriverServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AssignDriver", Handler: driverAssignDriverHandler},
		{MethodName: "GetDriverStatus", Handler: driverGetDriverStatusHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "driver.proto",
}
