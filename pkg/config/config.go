package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// Config carries every process-scoped setting. It is built once at startup and
// passed down explicitly; nothing in the core reads the environment after that.
type Config struct {
	HTTPPort string

	Tables TableConfig
	Queue  QueueConfig

	Gateway GatewayConfig

	Withdrawal WithdrawalConfig
	Commission CommissionConfig

	// PlatformWalletID receives commissions and withdrawal fees.
	PlatformWalletID string
}

// TableConfig holds the DynamoDB table names.
type TableConfig struct {
	Wallets     string
	Ledger      string
	Charges     string
	Splits      string
	Withdrawals string
	Events      string
	Stats       string
}

// QueueConfig holds the SQS settlement queue settings.
type QueueConfig struct {
	URL string
}

// GatewayConfig holds the settlement provider client settings.
type GatewayConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// WithdrawalConfig holds the payout policy knobs.
type WithdrawalConfig struct {
	Fee            models.Cents
	MinAmount      models.Cents
	DailyCap       int
	StaleThreshold time.Duration
}

// CommissionConfig holds the commission policy knobs.
type CommissionConfig struct {
	Enabled   bool
	DefaultBP models.BasisPoints
}

// Load builds a Config from the environment. Missing table names are an error;
// policy knobs fall back to production defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort: envOr("HTTP_PORT", "8080"),
		Tables: TableConfig{
			Wallets:     os.Getenv("DYNAMODB_WALLETS_TABLE_NAME"),
			Ledger:      os.Getenv("DYNAMODB_LEDGER_TABLE_NAME"),
			Charges:     os.Getenv("DYNAMODB_CHARGES_TABLE_NAME"),
			Splits:      os.Getenv("DYNAMODB_SPLITS_TABLE_NAME"),
			Withdrawals: os.Getenv("DYNAMODB_WITHDRAWALS_TABLE_NAME"),
			Events:      os.Getenv("DYNAMODB_EVENTS_TABLE_NAME"),
			Stats:       os.Getenv("DYNAMODB_STATS_TABLE_NAME"),
		},
		Queue: QueueConfig{
			URL: os.Getenv("SQS_QUEUE_URL"),
		},
		Gateway: GatewayConfig{
			BaseURL: os.Getenv("GATEWAY_BASE_URL"),
			APIKey:  os.Getenv("GATEWAY_API_KEY"),
			Timeout: envDuration("GATEWAY_TIMEOUT", 15*time.Second),
		},
		Withdrawal: WithdrawalConfig{
			Fee:            models.Cents(envInt("WITHDRAWAL_FEE_CENTS", 150)),
			MinAmount:      models.Cents(envInt("WITHDRAWAL_MIN_CENTS", 500)),
			DailyCap:       int(envInt("WITHDRAWAL_DAILY_CAP", 1)),
			StaleThreshold: envDuration("WITHDRAWAL_STALE_THRESHOLD", 10*time.Minute),
		},
		Commission: CommissionConfig{
			Enabled:   envOr("COMMISSION_ENABLED", "true") == "true",
			DefaultBP: models.BasisPoints(envInt("COMMISSION_DEFAULT_BP", 2000)),
		},
		PlatformWalletID: models.WalletID(models.OwnerPlatform, envOr("PLATFORM_OWNER_ID", "rotafacil")),
	}

	tables := map[string]string{
		"DYNAMODB_WALLETS_TABLE_NAME":     cfg.Tables.Wallets,
		"DYNAMODB_LEDGER_TABLE_NAME":      cfg.Tables.Ledger,
		"DYNAMODB_CHARGES_TABLE_NAME":     cfg.Tables.Charges,
		"DYNAMODB_SPLITS_TABLE_NAME":      cfg.Tables.Splits,
		"DYNAMODB_WITHDRAWALS_TABLE_NAME": cfg.Tables.Withdrawals,
		"DYNAMODB_EVENTS_TABLE_NAME":      cfg.Tables.Events,
		"DYNAMODB_STATS_TABLE_NAME":       cfg.Tables.Stats,
	}
	for name, value := range tables {
		if value == "" {
			return nil, fmt.Errorf("environment variable %s is not set", name)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
