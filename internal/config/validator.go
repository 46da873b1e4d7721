package config

import (
	"fmt"

	appErrors "github.com/codemetry/codemetry/internal/errors"
)

// Validate checks the configuration for semantic errors.
//
// Defaults must already be applied; Validate does not fill gaps, it only
// rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.Server.Port)
	}

	if c.Database.Path == "" {
		return appErrors.EmptyFieldError("database.path")
	}

	if c.GitHub.RequestTimeout < 0 {
		return appErrors.InvalidFieldError("github.request_timeout", c.GitHub.RequestTimeout.String())
	}

	if c.GitHub.RequestsPerSecond < 0 {
		return appErrors.InvalidFieldError("github.requests_per_second",
			fmt.Sprintf("%v", c.GitHub.RequestsPerSecond))
	}

	if c.Auth.TokenTTL <= 0 {
		return appErrors.InvalidFieldError("auth.token_ttl", c.Auth.TokenTTL.String())
	}

	return nil
}
