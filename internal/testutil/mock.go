// Package testutil provides shared testing utilities for mock handling.
package testutil

import (
	"fmt"

	"github.com/stretchr/testify/mock"
)

// HandleTwoValueReturn handles the common pattern for methods returning (result, error).
// It includes fallback handling for incorrectly configured mocks.
func HandleTwoValueReturn[T any](args mock.Arguments) (T, error) {
	var zero T

	// Check if we have enough arguments to avoid panic
	if len(args) < 2 {
		// Fallback for incorrectly configured mocks
		if len(args) == 1 {
			if err, ok := args.Get(0).(error); ok {
				return zero, err
			}
		}
		// Return an error instead of nil,nil to avoid nil pointer dereference
		return zero, fmt.Errorf("mock not properly configured: expected 2 return values, got %d", len(args)) //nolint:err113 // defensive error for test mock
	}

	if args.Get(0) == nil {
		return zero, args.Error(1)
	}

	result, ok := args.Get(0).(T)
	if !ok {
		return zero, fmt.Errorf("mock result is not of expected type") //nolint:err113 // defensive error for test mock
	}

	return result, args.Error(1)
}
