package config

import (
	"time"

	"github.com/codemetry/codemetry/internal/logging"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	GitHub   GitHubConfig   `yaml:"github"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      logging.Config `yaml:"log"`
}

// ServerConfig defines the HTTP server settings
type ServerConfig struct {
	Port            int           `yaml:"port"`             // Default: 8080
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // Default: 10s
}

// DatabaseConfig defines the sqlite database settings
type DatabaseConfig struct {
	Path string `yaml:"path"` // Database file path (:memory: for in-memory)
}

// GitHubConfig defines how the source provider is reached
type GitHubConfig struct {
	// Token authenticates API requests. Overridable via GITHUB_TOKEN.
	Token string `yaml:"token"`
	// RequestTimeout bounds every outbound provider call. Default: 30s.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// RequestsPerSecond throttles outbound calls. Default: 5, 0 disables.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// AuthConfig defines token issuance settings
type AuthConfig struct {
	// JWTSecret signs API tokens. Overridable via CODEMETRY_JWT_SECRET.
	JWTSecret string `yaml:"jwt_secret"`
	// TokenTTL is the validity window of issued tokens. Default: 24h.
	TokenTTL time.Duration `yaml:"token_ttl"`
}
