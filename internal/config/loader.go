package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".guardkit"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration. Every field is optional; unset
// fields leave the corresponding Config value untouched.
type File struct {
	// Markers replaces the default marker list when non-empty.
	Markers []string `yaml:"markers"`

	// Token overrides individual fixture token settings.
	Token TokenFile `yaml:"token"`
}

// TokenFile holds token fixture overrides from the config file.
type TokenFile struct {
	Secret   string `yaml:"secret"`
	Subject  string `yaml:"subject"`
	Scope    string `yaml:"scope"`
	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`

	// TTLSeconds is the token lifetime in seconds. Zero keeps the default.
	TTLSeconds int `yaml:"ttl_seconds"`
}

// LoadConfigFile loads the configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound so callers can
// decide whether a missing file is fatal (explicit path) or ignorable
// (discovery).
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file in order:
//  1. the explicit configPath, when given
//  2. .guardkit in the current directory
//  3. .guardkit in the user's home directory
//
// Returns the path of the first file found, or an empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Apply copies the file's set fields onto cfg. Unset (zero) fields keep
// the existing values, so defaults and flags survive a sparse file.
func (f *File) Apply(cfg *Config) {
	if len(f.Markers) > 0 {
		cfg.Markers = f.Markers
	}

	if f.Token.Secret != "" {
		cfg.Token.Secret = f.Token.Secret
	}
	if f.Token.Subject != "" {
		cfg.Token.Subject = f.Token.Subject
	}
	if f.Token.Scope != "" {
		cfg.Token.Scope = f.Token.Scope
	}
	if f.Token.Issuer != "" {
		cfg.Token.Issuer = f.Token.Issuer
	}
	if f.Token.Audience != "" {
		cfg.Token.Audience = f.Token.Audience
	}
	if f.Token.TTLSeconds != 0 {
		cfg.Token.TTL = time.Duration(f.Token.TTLSeconds) * time.Second
	}
}
