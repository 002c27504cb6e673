package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	HTTPPort int

	CertsDir string

	OrderServiceAddress        string
	PaymentServiceAddress      string
	DriverServiceAddress       string
	NotificationServiceAddress string

	DriverServiceCertsDir       string
	NotificationServiceCertsDir string

	OrderServicePort        int
	PaymentServicePort      int
	DriverServicePort       int
	NotificationServicePort int

	BackendCallTimeout time.Duration
	NotifyQueueSize    int
	NotifyWorkers      int
	NotifyTimeout      time.Duration
	ShutdownTimeout    time.Duration

	LedgerDriver string
	DriverStore  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RabbitURL             string
	NotificationsExchange string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "gateway-api"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "info"))
	cfg.HTTPPort = cast.ToInt(getOrReturnDefault("HTTP_PORT", 8080))

	cfg.CertsDir = cast.ToString(getOrReturnDefault("CERTS_DIR", "/certs"))

	// Addresses may be set to an empty value on purpose: for the optional
	// backends that disables the dependent saga step.
	cfg.OrderServiceAddress = cast.ToString(lookupOrReturnDefault("ORDER_SERVICE_ADDRESS", "static://localhost:9090"))
	cfg.PaymentServiceAddress = cast.ToString(lookupOrReturnDefault("PAYMENT_SERVICE_ADDRESS", "static://localhost:9091"))
	cfg.DriverServiceAddress = cast.ToString(lookupOrReturnDefault("DRIVER_SERVICE_ADDRESS", "static://localhost:9092"))
	cfg.NotificationServiceAddress = cast.ToString(lookupOrReturnDefault("NOTIFICATION_SERVICE_ADDRESS", "static://localhost:9093"))

	cfg.DriverServiceCertsDir = cast.ToString(getOrReturnDefault("DRIVER_SERVICE_CERTS_DIR", cfg.CertsDir))
	cfg.NotificationServiceCertsDir = cast.ToString(getOrReturnDefault("NOTIFICATION_SERVICE_CERTS_DIR", cfg.CertsDir))

	cfg.OrderServicePort = cast.ToInt(getOrReturnDefault("ORDER_SERVICE_PORT", 9090))
	cfg.PaymentServicePort = cast.ToInt(getOrReturnDefault("PAYMENT_SERVICE_PORT", 9091))
	cfg.DriverServicePort = cast.ToInt(getOrReturnDefault("DRIVER_SERVICE_PORT", 9092))
	cfg.NotificationServicePort = cast.ToInt(getOrReturnDefault("NOTIFICATION_SERVICE_PORT", 9093))

	cfg.BackendCallTimeout = cast.ToDuration(getOrReturnDefault("BACKEND_CALL_TIMEOUT", "5s"))
	cfg.NotifyQueueSize = cast.ToInt(getOrReturnDefault("NOTIFY_QUEUE_SIZE", 256))
	cfg.NotifyWorkers = cast.ToInt(getOrReturnDefault("NOTIFY_WORKERS", 4))
	cfg.NotifyTimeout = cast.ToDuration(getOrReturnDefault("NOTIFY_TIMEOUT", "3s"))
	cfg.ShutdownTimeout = cast.ToDuration(getOrReturnDefault("SHUTDOWN_TIMEOUT", "10s"))

	cfg.LedgerDriver = cast.ToString(getOrReturnDefault("LEDGER_DRIVER", "memory"))
	cfg.DriverStore = cast.ToString(getOrReturnDefault("DRIVER_STORE", "memory"))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "postgres"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "payments"))

	cfg.RabbitURL = cast.ToString(getOrReturnDefault("RABBIT_URL", ""))
	cfg.NotificationsExchange = cast.ToString(getOrReturnDefault("NOTIFICATIONS_EXCHANGE", "notifications.events"))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func lookupOrReturnDefault(key string, defaultValue interface{}) interface{} {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
