package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "/certs", cfg.CertsDir)
	assert.Equal(t, "static://localhost:9090", cfg.OrderServiceAddress)
	assert.Equal(t, "static://localhost:9093", cfg.NotificationServiceAddress)
	assert.Equal(t, cfg.CertsDir, cfg.DriverServiceCertsDir)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.BackendCallTimeout)
	assert.Equal(t, "memory", cfg.LedgerDriver)
	assert.Equal(t, "memory", cfg.DriverStore)
}

func TestLoadBlankOptionalAddress(t *testing.T) {
	t.Setenv("DRIVER_SERVICE_ADDRESS", "")
	t.Setenv("NOTIFICATION_SERVICE_ADDRESS", "static://notify:7000")
	t.Setenv("CERTS_DIR", "/etc/gateway/certs")
	t.Setenv("NOTIFY_TIMEOUT", "750ms")

	cfg := Load()

	assert.Empty(t, cfg.DriverServiceAddress)
	assert.Equal(t, "static://notify:7000", cfg.NotificationServiceAddress)
	assert.Equal(t, "/etc/gateway/certs", cfg.NotificationServiceCertsDir)
	assert.Equal(t, 750*time.Millisecond, cfg.NotifyTimeout)
}
