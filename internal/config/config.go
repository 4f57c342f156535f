// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the jobs pipeline binaries.
// Not every binary uses every field; DATABASE_URL is the only hard
// requirement because every entry point talks to the store.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // optional — dashboard caching is disabled when empty

	ReedAPIKey   string
	KeywordsFile string
	StagingDir   string

	AuditWorkers     int           // concurrent availability checks
	AuditTimeout     time.Duration // per-request timeout for one check
	AuditSweepBudget time.Duration // global deadline for a whole sweep

	GeocodeDelay time.Duration // minimum gap between geocoding requests

	ScrapeIntervalHours int // how often the cron pipeline cycle fires
	AuditIntervalHours  int // how often the cron audit sweep fires
}

// Load reads .env (best-effort) plus environment variables and returns a
// validated Config.
func Load() (*Config, error) {
	// A missing .env is normal in deployed environments.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg := &Config{
		Port:             envOr("PORT", "8080"),
		DatabaseURL:      dbURL,
		RedisURL:         os.Getenv("REDIS_URL"),
		ReedAPIKey:       os.Getenv("REED_API_KEY"),
		KeywordsFile:     envOr("KEYWORDS_FILE", "keywords.csv"),
		StagingDir:       envOr("STAGING_DIR", "."),
		AuditTimeout:     10 * time.Second,
		AuditSweepBudget: 30 * time.Minute,
		GeocodeDelay:     time.Second,
	}

	var err error
	if cfg.AuditWorkers, err = envPositiveInt("AUDIT_WORKERS", 16); err != nil {
		return nil, err
	}
	if cfg.ScrapeIntervalHours, err = envPositiveInt("SCRAPE_INTERVAL_HOURS", 24); err != nil {
		return nil, err
	}
	if cfg.AuditIntervalHours, err = envPositiveInt("AUDIT_INTERVAL_HOURS", 24); err != nil {
		return nil, err
	}

	if s := os.Getenv("AUDIT_SWEEP_BUDGET_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("AUDIT_SWEEP_BUDGET_MINUTES must be a positive integer, got %q", s)
		}
		cfg.AuditSweepBudget = time.Duration(v) * time.Minute
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envPositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, s)
	}
	return v, nil
}
