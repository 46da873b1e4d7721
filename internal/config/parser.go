// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when the config file leaves fields unset
const (
	defaultPort              = 8080
	defaultShutdownTimeout   = 10 * time.Second
	defaultDatabasePath      = "data/codemetry.db"
	defaultRequestTimeout    = 30 * time.Second
	defaultRequestsPerSecond = 5
	defaultTokenTTL          = 24 * time.Hour
)

// Load reads and parses a configuration file from the given path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path) //#nosec G304 -- Path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	cfg, err := LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromReader parses configuration from an io.Reader, applies defaults
// and environment overrides, and validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied and environment
// overrides in effect. Used when no config file is given.
func Default() (*Config, error) {
	var cfg Config
	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.GitHub.RequestTimeout == 0 {
		c.GitHub.RequestTimeout = defaultRequestTimeout
	}
	if c.GitHub.RequestsPerSecond == 0 {
		c.GitHub.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = defaultTokenTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// applyEnvOverrides lets secrets stay out of the config file.
func (c *Config) applyEnvOverrides() {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		c.GitHub.Token = token
	}
	if secret := os.Getenv("CODEMETRY_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
	if path := os.Getenv("CODEMETRY_DB_PATH"); path != "" {
		c.Database.Path = path
	}
}
