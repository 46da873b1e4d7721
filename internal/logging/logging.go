// Package logging provides logging configuration types and utilities.
//
// It centralizes logger construction so every component receives the same
// formatter and level handling, and defines the standard field names used
// across the application. It is a leaf dependency to avoid import cycles.
package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Standard structured field names used across components.
//
// Keeping these as constants prevents drift between packages logging the
// same entity under different keys.
const (
	FieldComponent = "component"
	FieldProjectID = "project_id"
	FieldUserID    = "user_id"
	FieldPath      = "path"
	FieldSHA       = "sha"
	FieldURL       = "url"
	FieldEvent     = "event"
	FieldStatus    = "status"
)

// Config holds logging configuration.
//
// This configuration is passed via dependency injection throughout the
// application to avoid global state and enable better testing isolation.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // "text" or "json"
}

// NewLogger builds a logrus logger from the configuration.
//
// An unknown level or format is an error rather than a silent fallback so
// configuration typos surface at startup.
func NewLogger(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()

	level := cfg.Level
	if level == "" {
		level = "info"
	}

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(parsed)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q: expected text or json", cfg.Format)
	}

	return logger, nil
}

// WithComponent returns an entry scoped to a named component.
func WithComponent(logger *logrus.Logger, component string) *logrus.Entry {
	return logger.WithField(FieldComponent, component)
}
