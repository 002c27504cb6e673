package channels_test

import (
	"context"
	"crypto/tls"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"foodgateway/backend"
	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
	"foodgateway/pkg/rpc"
)

func settings(dir string) channels.Settings {
	return channels.Settings{
		Order:        channels.Endpoint{Name: channels.OrderService, Address: "static://localhost:9090", CertsDir: dir},
		Payment:      channels.Endpoint{Name: channels.PaymentService, Address: "static://localhost:9091", CertsDir: dir},
		Driver:       channels.Endpoint{Name: channels.DriverService, Address: "static://localhost:9092", CertsDir: dir},
		Notification: channels.Endpoint{Name: channels.NotificationService, Address: "static://localhost:9093", CertsDir: dir},
	}
}

func TestOpenAllBackends(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir)

	r, err := channels.Open(settings(dir), logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, r.Order)
	assert.NotNil(t, r.Payment)
	assert.True(t, r.Driver.IsConnected())
	assert.True(t, r.Notification.IsConnected())
	assert.NoError(t, r.Close())
}

func TestOpenMandatoryAddressMissing(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir)

	s := settings(dir)
	s.Payment.Address = "  "

	_, err := channels.Open(s, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, channels.ErrAddressNotSet)
	assert.Contains(t, err.Error(), channels.PaymentService)
}

func TestOpenMandatoryCertificatesMissing(t *testing.T) {
	_, err := channels.Open(settings(t.TempDir()), logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, channels.ErrCertificatesNotFound)
	assert.Contains(t, err.Error(), channels.OrderService)
}

func TestOpenOptionalBackendsDegrade(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir)

	s := settings(dir)
	s.Driver.Address = ""
	s.Notification.CertsDir = t.TempDir()

	r, err := channels.Open(s, logger.Nop())
	require.NoError(t, err)
	defer r.Close()

	assert.NotNil(t, r.Order)
	assert.NotNil(t, r.Payment)
	assert.False(t, r.Driver.IsConnected())
	assert.False(t, r.Notification.IsConnected())
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "static://localhost:9090", want: "localhost:9090"},
		{in: "dns://order:50051", want: "order:50051"},
		{in: "payment:9091", want: "payment:9091"},
		{in: " static://driver:9092 ", want: "driver:9092"},
		{in: "dns:///order:50051", want: "order:50051"},
		{in: "dns://8.8.8.8/payment:9091", want: "payment:9091"},
		{in: "dns:///", wantErr: true},
		{in: "static://", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := channels.ParseTarget(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, channels.ErrAddressNotSet, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLinkMap(t *testing.T) {
	l := channels.Map(channels.Connected(2), func(v int) int { return v * 10 })
	v, ok := l.Get()
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	u := channels.Map(channels.Unconfigured[int](), func(v int) int { return v * 10 })
	_, ok = u.Get()
	assert.False(t, ok)
}

func startMTLSOrderServer(t *testing.T, dir string) string {
	t.Helper()

	srv, err := backend.NewServer(dir, channels.OrderService, logger.Nop())
	require.NoError(t, err)
	rpc.RegisterOrderServiceServer(srv, backend.NewOrderServer(logger.Nop()))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis.Addr().String()
}

func TestMutualTLSCall(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir)
	addr := startMTLSOrderServer(t, dir)

	s := settings(dir)
	s.Order.Address = "static://" + addr

	r, err := channels.Open(s, logger.Nop())
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := rpc.NewOrderServiceClient(r.Order).CreateOrder(ctx, &rpc.OrderRequest{
		UserID:       "customer-123",
		RestaurantID: "rest-1",
		Items:        []string{"Pizza"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CREATED", resp.Status)
	assert.NotEmpty(t, resp.OrderID)
}

func TestMutualTLSRejectsClientWithoutCertificate(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir)
	addr := startMTLSOrderServer(t, dir)

	clientCfg, err := channels.ClientTLS(dir, channels.OrderService)
	require.NoError(t, err)
	anonymous := &tls.Config{RootCAs: clientCfg.RootCAs, ServerName: channels.OrderService, MinVersion: tls.VersionTLS12}

	conn, err := grpc.NewClient("passthrough:///"+addr, grpc.WithTransportCredentials(credentials.NewTLS(anonymous)))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = rpc.NewOrderServiceClient(conn).CreateOrder(ctx, &rpc.OrderRequest{UserID: "customer-123"})
	assert.Error(t, err)
}

func TestServerTLSRequiresBundle(t *testing.T) {
	_, err := backend.NewServer(t.TempDir(), channels.OrderService, logger.Nop())
	assert.ErrorIs(t, err, channels.ErrCertificatesNotFound)
}
