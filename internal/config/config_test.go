package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":3000")
	}
	if cfg.DatabaseURL != "tracker.db" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "tracker.db")
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 7*24*time.Hour {
		t.Errorf("RefreshTTL = %v, want 168h", cfg.RefreshTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.ReportsEnabled() {
		t.Error("ReportsEnabled() = true without a telegram token")
	}
}

func TestLoad_PortFallback(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("JWT_EXPIRES_IN", "5m")
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("REPORT_INTERVAL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AccessTTL != 5*time.Minute {
		t.Errorf("AccessTTL = %v, want 5m", cfg.AccessTTL)
	}
	if cfg.BcryptCost != 31 {
		t.Errorf("BcryptCost = %d, want clamped 31", cfg.BcryptCost)
	}
	if !cfg.ReportsEnabled() {
		t.Error("ReportsEnabled() = false with token, chat and interval set")
	}
}

func TestLoad_ReportAt(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REPORT_INTERVAL", "0s")
	t.Setenv("REPORT_AT", " 09:30 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ReportAt != "09:30" {
		t.Errorf("ReportAt = %q, want 09:30", cfg.ReportAt)
	}
	if !cfg.ReportScheduled() {
		t.Error("ReportScheduled() = false with REPORT_AT set")
	}
	if cfg.ReportsEnabled() {
		t.Error("ReportsEnabled() = true without telegram settings")
	}

	cfg.ReportAt = ""
	if cfg.ReportScheduled() {
		t.Error("ReportScheduled() = true with zero interval and no REPORT_AT")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing access secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "missing refresh secret", env: map[string]string{"JWT_REFRESH_SECRET": ""}},
		{name: "equal secrets", env: map[string]string{"JWT_REFRESH_SECRET": "access-secret"}},
		{name: "negative ttl", env: map[string]string{"JWT_EXPIRES_IN": "-1m"}},
		{name: "bad duration", env: map[string]string{"JWT_REFRESH_EXPIRES_IN": "7d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}
