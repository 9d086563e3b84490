package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/mcpguard/guardkit/internal/report"
	"github.com/mcpguard/guardkit/internal/token"
)

// Default configuration values. The token defaults mirror the fixture the
// mcp-guard test environment has always used, so existing harnesses keep
// working without a config file.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "guardkit"

	// DefaultConcurrency is the number of reports cleaned in parallel in
	// batch mode. Report files are small, so a low limit is enough to hide
	// I/O latency without racing dozens of file handles.
	DefaultConcurrency = 4

	// DefaultTokenSecret is the shared HMAC secret for fixture tokens.
	// This is a published test credential, not a production secret.
	DefaultTokenSecret = "mcp-guard-test-secret-key-32-chars!!"

	// DefaultTokenSubject is the "sub" claim of fixture tokens.
	DefaultTokenSubject = "jwt-user-123"

	// DefaultTokenScope is the "scope" claim of fixture tokens.
	DefaultTokenScope = "read:files"

	// DefaultTokenIssuer is the "iss" claim of fixture tokens.
	DefaultTokenIssuer = "https://test.mcp-guard.io"

	// DefaultTokenAudience is the "aud" claim of fixture tokens.
	DefaultTokenAudience = "mcp-guard"

	// DefaultTokenTTL is how long fixture tokens stay valid.
	DefaultTokenTTL = time.Hour
)

// Config holds all configuration options for guardkit. It is populated from
// defaults, then the optional config file, then CLI flags, and passed through
// the application by value rather than global state.
type Config struct {
	// Markers are the substrings that flag a report block for removal.
	// A block containing any marker is dropped.
	Markers []string

	// SummaryFile, when set, is where the markdown clean-run digest is
	// written after a clean command.
	SummaryFile string

	// OutputDir enables batch mode: each input report is written to this
	// directory under its own base name.
	OutputDir string

	// Concurrency caps parallel file cleans in batch mode.
	Concurrency int

	// Verbose enables slog.LevelDebug output. When false, only warnings
	// and errors are logged.
	Verbose bool

	// ConfigFilePath is an explicit config file path. If empty, the tool
	// searches for .guardkit in the current directory and then in the
	// user's home directory.
	ConfigFilePath string

	// DBDir is the directory holding the history database. Defaults to the
	// XDG data directory (~/.local/share/guardkit on Linux).
	DBDir string

	// SaveHistory controls whether clean runs are recorded in the history
	// database.
	SaveHistory bool

	// Token holds the claim values and secret for fixture token generation.
	Token token.Config
}

// NewConfig creates a Config with default values. Non-zero defaults live
// here rather than scattered at points of use, so this constructor doubles
// as their documentation.
func NewConfig() *Config {
	return &Config{
		Markers:     []string{report.DefaultMarker},
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
		SaveHistory: true,
		Token: token.Config{
			Secret:   DefaultTokenSecret,
			Subject:  DefaultTokenSubject,
			Scope:    DefaultTokenScope,
			Issuer:   DefaultTokenIssuer,
			Audience: DefaultTokenAudience,
			TTL:      DefaultTokenTTL,
		},
	}
}

// XDGDataDir returns the XDG data directory for guardkit.
// On Linux: ~/.local/share/guardkit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for guardkit.
// On Linux: ~/.config/guardkit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after flag parsing, before any file I/O.
func (c *Config) Validate() error {
	if len(c.Markers) == 0 {
		return ErrNoMarkers
	}
	for _, m := range c.Markers {
		if m == "" {
			return ErrEmptyMarker
		}
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Token.Secret == "" {
		return ErrEmptyTokenSecret
	}

	if c.Token.TTL < 0 {
		return ErrInvalidTokenTTL
	}

	return nil
}
