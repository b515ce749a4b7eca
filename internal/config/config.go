// Package config loads the YAML configuration shared by the server and the
// terminal client. A missing file is created with defaults on first run so a
// fresh install can be edited rather than authored from scratch.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientConfig configures the terminal client.
type ClientConfig struct {
	// ServerURL is the base URL of the RPC server.
	ServerURL string `yaml:"server_url"`

	// Token is the session token obtained from login. Stored here because
	// the config file is the client's only persistent state; the file is
	// written with 0600 for that reason.
	Token string `yaml:"token,omitempty"`

	// RefreshCron, if non-empty, schedules periodic background refetches of
	// the collection (e.g. "*/5 * * * *").
	RefreshCron string `yaml:"refresh,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the RPC server's listen address.
	Listen string `yaml:"listen"`

	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`

	// PublicBaseURL is the prefix of public booking links
	// ({base}/{profile-slug}/{event-slug}).
	PublicBaseURL string `yaml:"public_base_url"`

	// JWTSecret signs session tokens. Must be set to a strong random value
	// in production; the generated default is only a placeholder.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTL is the session token lifetime (Go duration string).
	TokenTTL string `yaml:"token_ttl"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Client ClientConfig `yaml:"client"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:        "127.0.0.1:8080",
		DBPath:        "./data/schedulist.db",
		PublicBaseURL: "http://localhost:8080",
		JWTSecret:     "change-me",
		TokenTTL:      "24h",
		LogLevel:      "info",
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = def.PublicBaseURL
	}
	if c.JWTSecret == "" {
		c.JWTSecret = def.JWTSecret
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		c.TokenTTL = def.TokenTTL
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Client.ServerURL == "" {
		c.Client.ServerURL = def.Client.ServerURL
	}

	// Env overrides for container use.
	if v := os.Getenv("SCHEDULIST_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("SCHEDULIST_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SCHEDULIST_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
}

// TokenDuration returns the parsed session token lifetime. Normalize
// guarantees the value parses.
func (c *Config) TokenDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Load reads the config at path, creating it with defaults on first run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.Normalize()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to write initial config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the config with 0600 permissions; it holds the JWT secret and
// the client's session token.
func Save(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
