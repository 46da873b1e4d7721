// Package errors defines common error types and utilities used throughout the application
package errors

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Provider errors
	ErrProviderUnavailable = errors.New("source provider unavailable")

	// Sync errors
	ErrSyncInProgress       = errors.New("synchronization already in progress for project")
	ErrRootDirectoryMissing = errors.New("project has no imported root directory")
	ErrRootDirectoryExists  = errors.New("project already has an imported root directory")

	// Webhook errors
	ErrDuplicateWebhook    = errors.New("webhook already connected to project")
	ErrWebhookNotConnected = errors.New("no webhook connected to project")
	ErrUnknownWebhookEvent = errors.New("unsupported webhook event")

	// Decoder errors
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")

	// Entity errors
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")

	// Test errors (only used in tests)
	ErrTest = errors.New("test error")
)

// RequestFailedError is returned when the source provider answers with a
// non-2xx status. The response body is kept for diagnostics.
type RequestFailedError struct {
	Status int
	Body   string
}

// Error implements the error interface
func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("provider request failed: status %d: %s", e.Status, e.Body)
}

// AnalysisError is returned by an analysis adapter when it cannot produce
// a result for a file. It is non-fatal to a synchronization run.
type AnalysisError struct {
	Analyzer string
	Path     string
	Err      error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s analysis failed for %s: %v", e.Analyzer, e.Path, e.Err)
}

// Unwrap returns the underlying cause
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Error utility functions for standardized error creation and context wrapping

// WrapWithContext wraps an error with operation context using consistent formatting.
// This replaces manual fmt.Errorf("failed to %s: %w", operation, err) patterns.
func WrapWithContext(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// Error templates for static error definitions
var (
	errEmptyFieldTemplate    = errors.New("field cannot be empty")
	errRequiredFieldTemplate = errors.New("field is required")
	errInvalidFieldTemplate  = errors.New("invalid field")
)

// EmptyFieldError creates a standardized empty field validation error.
func EmptyFieldError(field string) error {
	return fmt.Errorf("%w: %s", errEmptyFieldTemplate, field)
}

// RequiredFieldError creates a standardized required field error.
func RequiredFieldError(field string) error {
	return fmt.Errorf("%w: %s", errRequiredFieldTemplate, field)
}

// InvalidFieldError creates a standardized invalid field error.
func InvalidFieldError(field, value string) error {
	return fmt.Errorf("%w: %s: %s", errInvalidFieldTemplate, field, value)
}
