package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mcpguard/guardkit/internal/report"
)

// TestNewConfig verifies the documented defaults. Changes to defaults must
// be intentional; this test fails when they drift.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default marker is the magic value class", func(t *testing.T) {
		t.Parallel()
		if len(cfg.Markers) != 1 || cfg.Markers[0] != report.DefaultMarker {
			t.Errorf("expected markers [%q], got %v", report.DefaultMarker, cfg.Markers)
		}
	})

	t.Run("default concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("history saving is on by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory true")
		}
	})

	t.Run("database lives in the XDG data directory", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
		if !strings.HasSuffix(cfg.DBDir, AppName) {
			t.Errorf("expected DBDir to end with %q, got %q", AppName, cfg.DBDir)
		}
	})

	t.Run("token defaults match the test environment fixture", func(t *testing.T) {
		t.Parallel()
		if cfg.Token.Secret != "mcp-guard-test-secret-key-32-chars!!" {
			t.Errorf("unexpected token secret: %q", cfg.Token.Secret)
		}
		if cfg.Token.Subject != "jwt-user-123" {
			t.Errorf("unexpected token subject: %q", cfg.Token.Subject)
		}
		if cfg.Token.Scope != "read:files" {
			t.Errorf("unexpected token scope: %q", cfg.Token.Scope)
		}
		if cfg.Token.Issuer != "https://test.mcp-guard.io" {
			t.Errorf("unexpected token issuer: %q", cfg.Token.Issuer)
		}
		if cfg.Token.Audience != "mcp-guard" {
			t.Errorf("unexpected token audience: %q", cfg.Token.Audience)
		}
		if cfg.Token.TTL != time.Hour {
			t.Errorf("expected token TTL 1h, got %v", cfg.Token.TTL)
		}
	})
}

// TestConfigValidate verifies each validation rule and its sentinel error.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "valid defaults pass",
			modify:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "empty marker list",
			modify:  func(c *Config) { c.Markers = nil },
			wantErr: ErrNoMarkers,
		},
		{
			name:    "empty marker string",
			modify:  func(c *Config) { c.Markers = []string{""} },
			wantErr: ErrEmptyMarker,
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "negative concurrency",
			modify:  func(c *Config) { c.Concurrency = -1 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "empty token secret",
			modify:  func(c *Config) { c.Token.Secret = "" },
			wantErr: ErrEmptyTokenSecret,
		},
		{
			name:    "negative token TTL",
			modify:  func(c *Config) { c.Token.TTL = -time.Minute },
			wantErr: ErrInvalidTokenTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
