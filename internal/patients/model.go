// Package patients manages the patient registry used by scheduling and
// clinical documentation.
package patients

import (
	"strings"
	"time"
)

// Patient is a person on the practice panel.
type Patient struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth string    `json:"dateOfBirth"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Allergies   []string  `json:"allergies"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateRequest is the payload for registering a patient.
type CreateRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	DateOfBirth string   `json:"dateOfBirth"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Allergies   []string `json:"allergies"`
}

// Validate checks required fields. Date of birth, when present, must be
// YYYY-MM-DD.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return ErrMissingName
	}
	if r.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", r.DateOfBirth); err != nil {
			return ErrInvalidDateOfBirth
		}
	}
	return nil
}
