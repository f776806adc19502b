package notes

import "errors"

var (
	// ErrMissingAppointment is returned when appointmentId is blank.
	ErrMissingAppointment = errors.New("notes: appointmentId is required")

	// ErrMissingBody is returned when the note body is blank.
	ErrMissingBody = errors.New("notes: body is required")

	// ErrNotFound is returned when a note id does not exist.
	ErrNotFound = errors.New("notes: note not found")
)
