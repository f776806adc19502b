package availability

import "errors"

var (
	// ErrProviderNotFound is returned when the provider id is unknown.
	ErrProviderNotFound = errors.New("availability: provider not found")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("availability: date must be YYYY-MM-DD")

	// ErrInvalidClock is returned when a template time is not "HH:MM".
	ErrInvalidClock = errors.New("availability: time must be HH:MM")

	// ErrInvalidDayOfWeek is returned when a weekday index is outside 0-6.
	ErrInvalidDayOfWeek = errors.New("availability: day of week must be 0-6")
)
