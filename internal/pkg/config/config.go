package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPAddr        string
	SnapshotPath    string
	DatabaseURL     string
	CrawlWorkers    int64
	SourceTimeout   time.Duration
	WithholdingRate decimal.Decimal
}

// Load reads configuration from the environment, with a best-effort .env file.
// Invalid values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:        ":8080",
		SnapshotPath:    "data/rates.json",
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CrawlWorkers:    4,
		SourceTimeout:   20 * time.Second,
		WithholdingRate: decimal.NewFromFloat(17.5),
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTPAddr = ":" + v
	}
	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
	if v := os.Getenv("CRAWL_WORKERS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.CrawlWorkers = n
		}
	}
	if v := os.Getenv("SOURCE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SourceTimeout = d
		}
	}
	if v := os.Getenv("WITHHOLDING_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			cfg.WithholdingRate = d
		}
	}
	return cfg
}
