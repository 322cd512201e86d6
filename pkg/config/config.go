// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	dydbstore "github.com/chris/tailorshop-ledger/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers.
const (
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Config holds runtime configuration shared by every binary.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"dynamodb"`

	LedgerTable      string `envconfig:"DYNAMODB_LEDGER_TABLE_NAME"`
	WorkersTable     string `envconfig:"DYNAMODB_WORKERS_TABLE_NAME"`
	OrdersTable      string `envconfig:"DYNAMODB_ORDERS_TABLE_NAME"`
	SettingsTable    string `envconfig:"DYNAMODB_SETTINGS_TABLE_NAME"`
	RatesTable       string `envconfig:"DYNAMODB_RATES_TABLE_NAME"`
	RequestsTable    string `envconfig:"DYNAMODB_REQUESTS_TABLE_NAME"`
	PayoutLocksTable string `envconfig:"DYNAMODB_PAYOUT_LOCKS_TABLE_NAME"`
	ConnectionsTable string `envconfig:"DYNAMODB_CONNECTIONS_TABLE_NAME"`

	SQSQueueURL     string `envconfig:"SQS_QUEUE_URL"`
	SQSDelaySeconds int32  `envconfig:"SQS_DELAY_SECONDS" default:"0"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	WebSocketEndpoint string `envconfig:"WEBSOCKET_API_ENDPOINT"`

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	StuckPayoutThreshold  time.Duration `envconfig:"STUCK_PAYOUT_THRESHOLD" default:"20m"`
	StaleRequestThreshold time.Duration `envconfig:"STALE_REQUEST_THRESHOLD" default:"72h"`
}

// Load reads a .env file when present and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if cfg.StorageDriver != DriverDynamoDB && cfg.StorageDriver != DriverMemory {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	return &cfg, nil
}

// Tables maps the configured table names onto the DynamoDB store.
func (c *Config) Tables() dydbstore.Tables {
	return dydbstore.Tables{
		Ledger:      c.LedgerTable,
		Workers:     c.WorkersTable,
		Orders:      c.OrdersTable,
		Settings:    c.SettingsTable,
		Rates:       c.RatesTable,
		Requests:    c.RequestsTable,
		PayoutLocks: c.PayoutLocksTable,
		Connections: c.ConnectionsTable,
	}
}

// RequireTables fails when any table name the DynamoDB driver needs is unset.
func (c *Config) RequireTables() error {
	if c.StorageDriver != DriverDynamoDB {
		return nil
	}
	t := c.Tables()
	for name, v := range map[string]string{
		"ledger":       t.Ledger,
		"workers":      t.Workers,
		"orders":       t.Orders,
		"settings":     t.Settings,
		"rates":        t.Rates,
		"requests":     t.Requests,
		"payout_locks": t.PayoutLocks,
		"connections":  t.Connections,
	} {
		if v == "" {
			return fmt.Errorf("DynamoDB %s table name is not set", name)
		}
	}
	return nil
}

// RequireQueue fails when the payout queue URL is unset.
func (c *Config) RequireQueue() error {
	if c.SQSQueueURL == "" {
		return errors.New("SQS_QUEUE_URL environment variable not set")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
