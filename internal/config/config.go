package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BackendURL   string        `yaml:"backend_url"`
	SessionToken string        `yaml:"session_token"`
	SessionDB    string        `yaml:"session_db"`
	HTTPAddr     string        `yaml:"http_addr"`
	LogLevel     string        `yaml:"log_level"`
	Env          string        `yaml:"env"` // dev|prod
	SentryDSN    string        `yaml:"sentry_dsn"`
	RefreshEvery time.Duration `yaml:"refresh_every"`
	ExportDir    string        `yaml:"export_dir"`
	Location     *time.Location
}

// Load builds the configuration in three layers: built-in defaults, then the
// optional YAML profile pointed to by CLUB_PROFILE, then environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		BackendURL:   "http://localhost:8000",
		SessionDB:    "data/session.db",
		HTTPAddr:     ":8080",
		LogLevel:     "info",
		Env:          "dev",
		RefreshEvery: 5 * time.Minute,
		ExportDir:    "data/reports",
	}

	if path := os.Getenv("CLUB_PROFILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is empty")
	}

	tz := getenv("TZ", "Europe/Rome")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}
	cfg.Location = loc
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.BackendURL = getenv("BACKEND_URL", cfg.BackendURL)
	cfg.SessionToken = getenv("SESSION_TOKEN", cfg.SessionToken)
	cfg.SessionDB = getenv("SESSION_DB", cfg.SessionDB)
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.Env = getenv("ENV", cfg.Env)
	cfg.SentryDSN = getenv("SENTRY_DSN", cfg.SentryDSN)
	cfg.ExportDir = getenv("EXPORT_DIR", cfg.ExportDir)
	if v := os.Getenv("REFRESH_EVERY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RefreshEvery = d
		} else if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshEvery = time.Duration(n) * time.Second
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
