package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the CLI defaults. Command-line flags override these.
type Config struct {
	// BaseCurrency is the currency balances and settlements are computed in.
	BaseCurrency string

	// StrictShares enables per-expense share-sum validation.
	StrictShares bool
}

// Load reads configuration from the environment, with a .env file as an
// optional source (non-fatal if missing).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseCurrency: getEnvDefault("SETTLER_BASE_CURRENCY", "USD"),
	}

	if raw := os.Getenv("SETTLER_STRICT_SHARES"); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("SETTLER_STRICT_SHARES: %w", err)
		}
		cfg.StrictShares = strict
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
