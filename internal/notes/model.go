// Package notes stores clinical visit notes. A note belongs to an
// appointment; the transcription pipeline fills in the summary after the
// visit audio is processed.
package notes

import (
	"strings"
	"time"
)

// Note is a clinical note attached to an appointment.
type Note struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	AuthorID      string    `json:"authorId"`
	Body          string    `json:"body"`
	Summary       string    `json:"summary,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateRequest is the payload for writing a note.
type CreateRequest struct {
	AppointmentID string `json:"appointmentId"`
	AuthorID      string `json:"authorId"`
	Body          string `json:"body"`
}

// Validate checks required fields.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.AppointmentID) == "" {
		return ErrMissingAppointment
	}
	if strings.TrimSpace(r.Body) == "" {
		return ErrMissingBody
	}
	return nil
}
