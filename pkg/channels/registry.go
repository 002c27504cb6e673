// Package channels owns the long-lived mTLS connections from the gateway to
// its backends.
package channels

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"foodgateway/pkg/logger"
)

// Logical peer names. The backend certificate must be issued for them.
const (
	OrderService        = "order-service"
	PaymentService      = "payment-service"
	DriverService       = "driver-service"
	NotificationService = "notification-service"
)

var ErrAddressNotSet = errors.New("address is not set")

var hostPortPattern = regexp.MustCompile(`^[^:]+:\d+$`)

type Endpoint struct {
	Name     string
	Address  string
	CertsDir string
}

type Settings struct {
	Order        Endpoint
	Payment      Endpoint
	Driver       Endpoint
	Notification Endpoint
}

// Registry holds one connection per backend. Connections are safe for
// concurrent use and are shared by all requests after Open returns.
type Registry struct {
	Order        *grpc.ClientConn
	Payment      *grpc.ClientConn
	Driver       Link[*grpc.ClientConn]
	Notification Link[*grpc.ClientConn]

	log logger.ILogger
}

// Open dials every configured backend. Order and payment are mandatory: any
// failure there is returned. Driver and notification degrade to Unconfigured
// when their address is blank or their connection cannot be built.
func Open(s Settings, log logger.ILogger, opts ...grpc.DialOption) (*Registry, error) {
	r := &Registry{log: log}

	var err error
	r.Order, err = dial(s.Order, log, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Order.Name, err)
	}

	r.Payment, err = dial(s.Payment, log, opts)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("%s: %w", s.Payment.Name, err)
	}

	r.Driver = dialOptional(s.Driver, log, opts)
	r.Notification = dialOptional(s.Notification, log, opts)

	return r, nil
}

func dialOptional(e Endpoint, log logger.ILogger, opts []grpc.DialOption) Link[*grpc.ClientConn] {
	if strings.TrimSpace(e.Address) == "" {
		log.Warning("backend address is not set; dependent features disabled", logger.String("service", e.Name))
		return Unconfigured[*grpc.ClientConn]()
	}

	conn, err := dial(e, log, opts)
	if err != nil {
		log.Error("failed to initialize backend channel; dependent features disabled",
			logger.String("service", e.Name), logger.Error(err))
		return Unconfigured[*grpc.ClientConn]()
	}
	return Connected(conn)
}

func dial(e Endpoint, log logger.ILogger, opts []grpc.DialOption) (*grpc.ClientConn, error) {
	target, err := ParseTarget(e.Address)
	if err != nil {
		return nil, err
	}
	if !hostPortPattern.MatchString(target) {
		log.Warning("backend address format may be invalid", logger.String("service", e.Name), logger.String("target", target))
	}

	tlsCfg, err := ClientTLS(e.CertsDir, e.Name)
	if err != nil {
		return nil, err
	}

	log.Info("connecting to backend with mTLS", logger.String("service", e.Name), logger.String("target", target))

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(credentials.NewTLS(tlsCfg))}, opts...)
	conn, err := grpc.NewClient("passthrough:///"+target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return conn, nil
}

// ParseTarget strips an optional scheme prefix such as "static://" from addr.
func ParseTarget(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if i := strings.Index(addr, "://"); i >= 0 {
		addr = addr[i+len("://"):]
		// scheme://[authority]/endpoint keeps only the endpoint
		if j := strings.Index(addr, "/"); j >= 0 {
			addr = addr[j+1:]
		}
	}
	if addr == "" {
		return "", ErrAddressNotSet
	}
	return addr, nil
}

// Close closes every live connection. A failing close is logged and does
// not stop the remaining ones.
func (r *Registry) Close() error {
	var errs error
	closeOne := func(name string, conn *grpc.ClientConn) {
		if conn == nil {
			return
		}
		if err := conn.Close(); err != nil {
			r.log.Warning("error shutting down backend channel", logger.String("service", name), logger.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		r.log.Info("backend channel shut down", logger.String("service", name))
	}

	closeOne(OrderService, r.Order)
	closeOne(PaymentService, r.Payment)
	if conn, ok := r.Driver.Get(); ok {
		closeOne(DriverService, conn)
	}
	if conn, ok := r.Notification.Get(); ok {
		closeOne(NotificationService, conn)
	}
	return errs
}
