// Package backend implements the order, payment, driver and notification
// gRPC services the gateway talks to.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"foodgateway/pkg/channels"
	"foodgateway/pkg/logger"
)

// NewServer builds a gRPC server that requires client certificates signed by
// the CA in certsDir and reports serviceName as SERVING on the health service.
func NewServer(certsDir, serviceName string, log logger.ILogger, opts ...grpc.ServerOption) (*grpc.Server, error) {
	tlsCfg, err := channels.ServerTLS(certsDir)
	if err != nil {
		return nil, err
	}

	opts = append([]grpc.ServerOption{
		grpc.Creds(credentials.NewTLS(tlsCfg)),
		grpc.ChainUnaryInterceptor(LoggingInterceptor(log)),
	}, opts...)
	srv := grpc.NewServer(opts...)

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, nil
}

func LoggingInterceptor(log logger.ILogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()
		resp, err := handler(ctx, req)
		fields := []logger.Field{
			logger.String("method", info.FullMethod),
			logger.String("code", status.Code(err).String()),
			logger.Duration("duration", time.Since(started)),
		}
		if err != nil {
			log.Warning("rpc failed", append(fields, logger.Error(err))...)
		} else {
			log.Debug("rpc handled", fields...)
		}
		return resp, err
	}
}

// Serve runs srv on addr until ctx is cancelled, then stops it gracefully.
// Streams still open after stopTimeout are closed forcibly.
func Serve(ctx context.Context, srv *grpc.Server, addr string, stopTimeout time.Duration, log logger.ILogger) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return serve(ctx, srv, lis, stopTimeout, log)
}

func serve(ctx context.Context, srv *grpc.Server, lis net.Listener, stopTimeout time.Duration, log logger.ILogger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("gRPC server listening with mTLS enabled", logger.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("stopping gRPC server")

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		timer := time.NewTimer(stopTimeout)
		defer timer.Stop()
		select {
		case <-stopped:
		case <-timer.C:
			log.Warning("graceful stop timed out, closing open streams", logger.Duration("timeout", stopTimeout))
			srv.Stop()
			<-stopped
		}
		return nil
	})
	return g.Wait()
}
