package providers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for provider storage.
type Repository interface {
	Create(ctx context.Context, req *CreateRequest) (*Provider, error)
	GetByID(ctx context.Context, id string) (*Provider, error)
	List(ctx context.Context) ([]Provider, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// InMemoryRepository is a map-backed Repository for tests and local
// development.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]Provider
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]Provider)}
}

// Create registers a provider.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateRequest) (*Provider, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider := Provider{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Specialty: req.Specialty,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.rows[provider.ID] = provider
	r.mu.Unlock()

	return &provider, nil
}

// GetByID returns the provider or ErrNotFound.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &provider, nil
}

// List returns all providers ordered by name.
func (r *InMemoryRepository) List(ctx context.Context) ([]Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, 0, len(r.rows))
	for _, provider := range r.rows {
		out = append(out, provider)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Exists reports whether the provider id is known.
func (r *InMemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rows[id]
	return ok, nil
}
