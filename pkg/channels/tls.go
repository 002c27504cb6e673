package channels

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	CAFile         = "ca.crt"
	ClientCertFile = "client.crt"
	ClientKeyFile  = "client.key"
	ServerCertFile = "server.crt"
	ServerKeyFile  = "server.key"
)

var ErrCertificatesNotFound = errors.New("TLS certificates not found")

// ClientTLS loads the client side of the bundle in dir and pins the peer
// identity to serverName whatever host is dialed.
func ClientTLS(dir, serverName string) (*tls.Config, error) {
	pool, cert, err := loadBundle(dir, ClientCertFile, ClientKeyFile)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		ServerName:   serverName,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// ServerTLS loads the server side of the bundle in dir and requires every
// client to present a certificate signed by the same CA.
func ServerTLS(dir string) (*tls.Config, error) {
	pool, cert, err := loadBundle(dir, ServerCertFile, ServerKeyFile)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func loadBundle(dir, certName, keyName string) (*x509.CertPool, tls.Certificate, error) {
	caPath := filepath.Join(dir, CAFile)
	certPath := filepath.Join(dir, certName)
	keyPath := filepath.Join(dir, keyName)

	for _, p := range []string{caPath, certPath, keyPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, tls.Certificate{}, fmt.Errorf("%w in %s: %s", ErrCertificatesNotFound, dir, filepath.Base(p))
		}
	}

	caPEM, err := os.ReadFile(caPath)
	if err != nil {
		return nil, tls.Certificate{}, fmt.Errorf("read CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, tls.Certificate{}, fmt.Errorf("no certificates found in %s", caPath)
	}

	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, tls.Certificate{}, fmt.Errorf("load key pair: %w", err)
	}

	return pool, cert, nil
}
