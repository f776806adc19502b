package notes

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for note storage.
type Repository interface {
	Create(ctx context.Context, req *CreateRequest) (*Note, error)
	GetByID(ctx context.Context, id string) (*Note, error)
	ListForAppointment(ctx context.Context, appointmentID string) ([]Note, error)
	SetSummary(ctx context.Context, id, summary string) error
}

// ExistenceChecker adapts a Repository to the existence check the summary
// pipeline performs before enqueueing a job.
type ExistenceChecker struct {
	Repo Repository
}

// Exists reports whether the note id is known.
func (c ExistenceChecker) Exists(ctx context.Context, id string) (bool, error) {
	_, err := c.Repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InMemoryRepository is a map-backed Repository for tests and local
// development.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]Note
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]Note)}
}

// Create stores a new note.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateRequest) (*Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := Note{
		ID:            uuid.NewString(),
		AppointmentID: req.AppointmentID,
		AuthorID:      req.AuthorID,
		Body:          req.Body,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.mu.Lock()
	r.rows[note.ID] = note
	r.mu.Unlock()

	return &note, nil
}

// GetByID returns the note or ErrNotFound.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &note, nil
}

// ListForAppointment returns notes for an appointment, oldest first.
func (r *InMemoryRepository) ListForAppointment(ctx context.Context, appointmentID string) ([]Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Note{}
	for _, note := range r.rows {
		if note.AppointmentID == appointmentID {
			out = append(out, note)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.Before(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// SetSummary records the generated visit summary on a note.
func (r *InMemoryRepository) SetSummary(ctx context.Context, id, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	note.Summary = summary
	note.UpdatedAt = time.Now().UTC()
	r.rows[id] = note
	return nil
}
