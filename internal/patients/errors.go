package patients

import "errors"

var (
	// ErrMissingName is returned when first or last name is blank.
	ErrMissingName = errors.New("patients: first and last name are required")

	// ErrInvalidDateOfBirth is returned when dateOfBirth is not YYYY-MM-DD.
	ErrInvalidDateOfBirth = errors.New("patients: dateOfBirth must be YYYY-MM-DD")

	// ErrNotFound is returned when a patient id does not exist.
	ErrNotFound = errors.New("patients: patient not found")
)
