package appointments

import "errors"

var (
	// ErrSlotTaken is returned when the requested instant is not in the
	// freshly computed free set, or when the unique slot constraint fires
	// on insert after a lost race.
	ErrSlotTaken = errors.New("appointments: slot no longer available")

	// ErrNotFound is returned when the appointment id does not exist.
	ErrNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidStatus is returned for status transitions outside the
	// Scheduled/Completed/Canceled set.
	ErrInvalidStatus = errors.New("appointments: invalid status")

	// Validation errors; surfaced before any store access.
	ErrMissingProvider = errors.New("appointments: providerId is required")
	ErrMissingPatient  = errors.New("appointments: patientId is required")
	ErrMissingReason   = errors.New("appointments: reason is required")
	ErrInvalidDate     = errors.New("appointments: date must be YYYY-MM-DD")
	ErrInvalidTime     = errors.New("appointments: time must be HH:MM")
)

// IsValidationError reports whether err is a malformed-request error rather
// than a state conflict or store failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingProvider) ||
		errors.Is(err, ErrMissingPatient) ||
		errors.Is(err, ErrMissingReason) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidStatus)
}
