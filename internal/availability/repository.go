package availability

import (
	"context"
	"sync"
	"time"
)

// TemplateRepository stores weekly availability rows.
type TemplateRepository interface {
	// GetForDay returns the template for (providerID, dayOfWeek), or nil
	// when the provider has no row for that weekday.
	GetForDay(ctx context.Context, providerID string, dayOfWeek int) (*WeeklyAvailability, error)

	// ListForProvider returns every weekday row the provider has, ordered
	// by day of week.
	ListForProvider(ctx context.Context, providerID string) ([]WeeklyAvailability, error)

	// Upsert creates or replaces the row keyed on (providerID, dayOfWeek).
	Upsert(ctx context.Context, tmpl *WeeklyAvailability) error
}

// InMemoryTemplateRepository is a map-backed TemplateRepository for tests
// and local development.
type InMemoryTemplateRepository struct {
	mu   sync.RWMutex
	rows map[string]map[int]WeeklyAvailability
}

// NewInMemoryTemplateRepository creates an empty in-memory repository.
func NewInMemoryTemplateRepository() *InMemoryTemplateRepository {
	return &InMemoryTemplateRepository{
		rows: make(map[string]map[int]WeeklyAvailability),
	}
}

// GetForDay returns the stored row or nil.
func (r *InMemoryTemplateRepository) GetForDay(ctx context.Context, providerID string, dayOfWeek int) (*WeeklyAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	days, ok := r.rows[providerID]
	if !ok {
		return nil, nil
	}
	row, ok := days[dayOfWeek]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// ListForProvider returns the provider's rows ordered Monday first.
func (r *InMemoryTemplateRepository) ListForProvider(ctx context.Context, providerID string) ([]WeeklyAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []WeeklyAvailability{}
	for day := 0; day <= 6; day++ {
		if row, ok := r.rows[providerID][day]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// Upsert replaces the row for (providerID, dayOfWeek).
func (r *InMemoryTemplateRepository) Upsert(ctx context.Context, tmpl *WeeklyAvailability) error {
	if err := validateTemplate(tmpl); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rows[tmpl.ProviderID] == nil {
		r.rows[tmpl.ProviderID] = make(map[int]WeeklyAvailability)
	}
	stored := *tmpl
	stored.UpdatedAt = time.Now().UTC()
	r.rows[tmpl.ProviderID][tmpl.DayOfWeek] = stored
	return nil
}

func validateTemplate(tmpl *WeeklyAvailability) error {
	if tmpl.DayOfWeek < 0 || tmpl.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	anchor := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if _, err := parseClock(anchor, tmpl.StartTime); err != nil {
		return err
	}
	if _, err := parseClock(anchor, tmpl.EndTime); err != nil {
		return err
	}
	return nil
}
