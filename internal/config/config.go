package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken     string
	GoogleSheetID     string
	GoogleCredentials string // service account key, JSON string
	GeminiAPIKey      string

	// SerializeWrites takes a per-ledger lock across the scan-then-write
	// sequences of append and update, eliminating duplicate ids and
	// wrong-row mutations within this process. Disabling it restores the
	// historical unserialized behavior.
	SerializeWrites bool
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine: deployed environments set variables on the
	// process directly.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		GoogleSheetID:     os.Getenv("GOOGLE_SHEET_ID"),
		GoogleCredentials: os.Getenv("GOOGLE_CREDENTIALS"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		SerializeWrites:   true,
	}
	if v := os.Getenv("SERIALIZE_WRITES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SERIALIZE_WRITES value %q", v)
		}
		cfg.SerializeWrites = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first missing required variable.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN environment variable is not set")
	}
	if c.GoogleSheetID == "" {
		return errors.New("GOOGLE_SHEET_ID environment variable is not set")
	}
	if c.GoogleCredentials == "" {
		return errors.New("GOOGLE_CREDENTIALS environment variable is not set")
	}
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
