package providers

import "errors"

var (
	// ErrInvalidName is returned when the provider name is missing.
	ErrInvalidName = errors.New("providers: name is required")

	// ErrNotFound is returned when a provider id does not exist.
	ErrNotFound = errors.New("providers: provider not found")
)
