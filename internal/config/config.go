// Package config loads pennywise configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dvloznov/pennywise/internal/extract"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds everything the commands need at startup.
type Config struct {
	// GeminiAPIKey authenticates the completion capability. The genai client
	// also reads it from the environment on its own.
	GeminiAPIKey string

	// Model is the Gemini model name used for extraction.
	Model string

	// BaseCurrency is the default currency extracted amounts are expressed in.
	BaseCurrency string

	// Rates is the static conversion table, keyed "FROM:TO".
	Rates map[string]decimal.Decimal

	// ReportsBucket is the GCS bucket monthly report PDFs are uploaded to.
	// Empty disables uploads.
	ReportsBucket string

	// Port is the HTTP server port.
	Port string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; a malformed FX_RATES value is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:         getenvDefault("PENNYWISE_MODEL", extract.DefaultModel),
		BaseCurrency:  getenvDefault("BASE_CURRENCY", "USD"),
		ReportsBucket: os.Getenv("REPORTS_BUCKET"),
		Port:          getenvDefault("PORT", "8080"),
	}

	rates, err := parseRates(os.Getenv("FX_RATES"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Rates = rates

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseRates parses a conversion table of the form
// "USD:EUR=0.92,GBP:EUR=1.17".
func parseRates(s string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	if strings.TrimSpace(s) == "" {
		return rates, nil
	}

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		pair, value, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("FX_RATES entry %q: want PAIR=RATE", entry)
		}
		pair = strings.ToUpper(strings.TrimSpace(pair))
		if !strings.Contains(pair, ":") {
			return nil, fmt.Errorf("FX_RATES pair %q: want FROM:TO", pair)
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("FX_RATES rate for %q: %w", pair, err)
		}
		if rate.Sign() <= 0 {
			return nil, fmt.Errorf("FX_RATES rate for %q must be positive", pair)
		}
		rates[pair] = rate
	}

	return rates, nil
}
