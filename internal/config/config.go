package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config keeps runtime settings for the API server. It is built once by Load
// and handed to constructors; nothing reads the environment after startup.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr    string `env:"HTTP_ADDR"`
	Port        string `env:"PORT"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"tracker.db"`

	AccessSecret  string        `env:"JWT_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_EXPIRES_IN" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"168h"`
	Issuer        string        `env:"JWT_ISSUER" envDefault:"tracker"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`

	TelegramToken  string        `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64         `env:"TELEGRAM_CHAT_ID"`
	ReportInterval time.Duration `env:"REPORT_INTERVAL" envDefault:"24h"`
	ReportAt       string        `env:"REPORT_AT"`
}

// Load reads configuration from environment variables, picking up a local
// .env file outside production.
func Load() (Config, error) {
	if strings.TrimSpace(os.Getenv("APP_ENV")) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("[info] no .env file found, using process environment")
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	cfg.AccessSecret = strings.TrimSpace(cfg.AccessSecret)
	cfg.RefreshSecret = strings.TrimSpace(cfg.RefreshSecret)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.ReportAt = strings.TrimSpace(cfg.ReportAt)

	if cfg.HTTPAddr == "" {
		if port := strings.TrimSpace(cfg.Port); port != "" {
			cfg.HTTPAddr = ":" + port
		} else {
			cfg.HTTPAddr = ":3000"
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tracker.db"
	}
	cfg.BcryptCost = clampCost(cfg.BcryptCost)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the invariants the token layer relies on.
func (c Config) Validate() error {
	switch {
	case c.AccessSecret == "":
		return errors.New("JWT_SECRET is required")
	case c.RefreshSecret == "":
		return errors.New("JWT_REFRESH_SECRET is required")
	case c.AccessSecret == c.RefreshSecret:
		return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	case c.AccessTTL <= 0:
		return fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.AccessTTL)
	case c.RefreshTTL <= 0:
		return fmt.Errorf("JWT_REFRESH_EXPIRES_IN must be positive, got %s", c.RefreshTTL)
	}
	return nil
}

// ReportsEnabled reports whether the periodic digest should be delivered to Telegram.
func (c Config) ReportsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0 && c.ReportScheduled()
}

// ReportScheduled reports whether any report job should run. REPORT_AT
// takes precedence over REPORT_INTERVAL.
func (c Config) ReportScheduled() bool {
	return c.ReportAt != "" || c.ReportInterval > 0
}

func clampCost(cost int) int {
	switch {
	case cost < bcrypt.MinCost:
		return bcrypt.DefaultCost
	case cost > bcrypt.MaxCost:
		return bcrypt.MaxCost
	default:
		return cost
	}
}
