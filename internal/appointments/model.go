// Package appointments owns the appointment records and the booking flow,
// including the write-time slot validation that closes the gap between a
// client viewing availability and submitting a booking.
package appointments

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCanceled  Status = "Canceled"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Appointment occupies the exact instant Date+Time on the provider's
// calendar. Date is a calendar date with no time component; Time is "HH:MM"
// UTC wall clock.
type Appointment struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patientId"`
	VisitProvider string    `json:"visitProvider"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Time          string    `json:"time"` // HH:MM
	Reason        string    `json:"reason"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateRequest is the booking payload.
type CreateRequest struct {
	ProviderID string `json:"providerId"`
	PatientID  string `json:"patientId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Reason     string `json:"reason"`
}

// Validate checks required fields and formats. It runs before any store
// access so malformed requests never cost a round-trip.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.ProviderID) == "" {
		return ErrMissingProvider
	}
	if strings.TrimSpace(r.PatientID) == "" {
		return ErrMissingPatient
	}
	if strings.TrimSpace(r.Reason) == "" {
		return ErrMissingReason
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return ErrInvalidTime
	}
	return nil
}
