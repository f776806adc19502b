// Package providers manages the clinician directory and each provider's
// weekly availability template.
package providers

import (
	"strings"
	"time"
)

// Provider is a clinician whose calendar appointments occupy.
type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRequest is the payload for registering a provider.
type CreateRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Email     string `json:"email"`
}

// Validate checks required fields.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
