package rpc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestCodecRegisteredAsProto(t *testing.T) {
	c := encoding.GetCodec("proto")
	require.NotNil(t, c)
	_, ok := c.(codec)
	assert.True(t, ok)
}

func TestCodecWireBytes(t *testing.T) {
	data, err := codec{}.Marshal(&OrderResponse{OrderID: "a", Status: "b"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x01, 'a', 0x12, 0x01, 'b'}, data)

	data, err = codec{}.Marshal(&OrderResponse{})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCodecDoubleIsFixed64(t *testing.T) {
	data, err := codec{}.Marshal(&PaymentRequest{Amount: 20})
	require.NoError(t, err)

	num, typ, n := protowire.ConsumeTag(data)
	require.Positive(t, n)
	assert.Equal(t, protowire.Number(3), num)
	assert.Equal(t, protowire.Fixed64Type, typ)
	v, m := protowire.ConsumeFixed64(data[n:])
	require.Positive(t, m)
	assert.Equal(t, 20.0, math.Float64frombits(v))
}

func TestCodecReadsProtobufRuntimeOutput(t *testing.T) {
	data, err := proto.Marshal(wrapperspb.String("order-1"))
	require.NoError(t, err)

	var out OrderResponse
	require.NoError(t, codec{}.Unmarshal(data, &out))
	assert.Equal(t, "order-1", out.OrderID)

	data, err = codec{}.Marshal(&DriverStatusRequest{DriverID: "driver-001"})
	require.NoError(t, err)
	var sv wrapperspb.StringValue
	require.NoError(t, proto.Unmarshal(data, &sv))
	assert.Equal(t, "driver-001", sv.GetValue())
}

func TestCodecSkipsUnknownFields(t *testing.T) {
	in := &OrderRequest{UserID: "customer-123", RestaurantID: "r-1", Items: []string{"pizza", ""}}
	data, err := codec{}.Marshal(in)
	require.NoError(t, err)

	data = protowire.AppendTag(data, 9, protowire.VarintType)
	data = protowire.AppendVarint(data, 42)
	data = protowire.AppendTag(data, 10, protowire.BytesType)
	data = protowire.AppendString(data, "future")
	// wrong wire type for a known field is ignored
	data = protowire.AppendTag(data, 1, protowire.VarintType)
	data = protowire.AppendVarint(data, 7)

	var out OrderRequest
	require.NoError(t, codec{}.Unmarshal(data, &out))
	assert.Equal(t, in, &out)
}

func TestCodecNestedAndNegative(t *testing.T) {
	in := &DriverStatusResponse{Driver: &Driver{
		DriverID:        "driver-002",
		Name:            "Maria",
		Vehicle:         "Bike",
		LicensePlate:    "XYZ-5678",
		CurrentLocation: &Location{Latitude: -23.56, Longitude: -46.65},
		Available:       true,
	}}
	data, err := codec{}.Marshal(in)
	require.NoError(t, err)
	var out DriverStatusResponse
	require.NoError(t, codec{}.Unmarshal(data, &out))
	assert.Equal(t, in, &out)

	resp := &AssignDriverResponse{DriverID: "d", EstimatedTimeMinutes: -1, Status: "ASSIGNED"}
	data, err = codec{}.Marshal(resp)
	require.NoError(t, err)
	var got AssignDriverResponse
	require.NoError(t, codec{}.Unmarshal(data, &got))
	assert.Equal(t, resp, &got)

	req := &AssignDriverRequest{OrderID: "o-1"}
	data, err = codec{}.Marshal(req)
	require.NoError(t, err)
	var gotReq AssignDriverRequest
	require.NoError(t, codec{}.Unmarshal(data, &gotReq))
	assert.Nil(t, gotReq.PickupLocation)
}

func TestCodecRejectsTruncatedInput(t *testing.T) {
	data, err := codec{}.Marshal(&OrderUpdate{OrderID: "order-1", Status: "DELIVERED", Timestamp: 1700000000})
	require.NoError(t, err)

	var out OrderUpdate
	assert.Error(t, codec{}.Unmarshal(data[:len(data)-3], &out))
}

func TestCodecFallsBackToProtobufRuntime(t *testing.T) {
	data, err := codec{}.Marshal(&healthpb.HealthCheckRequest{Service: OrderServiceName})
	require.NoError(t, err)

	var out healthpb.HealthCheckRequest
	require.NoError(t, codec{}.Unmarshal(data, &out))
	assert.Equal(t, OrderServiceName, out.GetService())
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	_, err := codec{}.Marshal(struct{ A int }{1})
	assert.Error(t, err)
	assert.Error(t, codec{}.Unmarshal(nil, new(int)))
}
