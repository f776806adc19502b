package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harborhealth/ehr-platform/internal/availability"
)

// Repository defines appointment persistence.
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	ListForProviderDate(ctx context.Context, providerID, date string) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// InMemoryRepository stores appointments in a map for tests and local
// development. It enforces the same (provider, date, time) uniqueness the
// Postgres schema does.
type InMemoryRepository struct {
	mu    sync.RWMutex
	rows  map[string]Appointment
	slots map[string]string // provider/date/time -> appointment id
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		rows:  make(map[string]Appointment),
		slots: make(map[string]string),
	}
}

func slotKey(providerID, date, clock string) string {
	return providerID + "/" + date + "/" + clock
}

// Create inserts the appointment, rejecting duplicate slots.
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(appt.VisitProvider, appt.Date, appt.Time)
	if _, taken := r.slots[key]; taken {
		return ErrSlotTaken
	}
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now().UTC()
	}
	r.rows[appt.ID] = *appt
	r.slots[key] = appt.ID
	return nil
}

// GetByID returns the appointment or ErrNotFound.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &appt, nil
}

// ListForProviderDate returns the provider's appointments on a date ordered
// by time. Canceled rows are included; they still occupy their slot.
func (r *InMemoryRepository) ListForProviderDate(ctx context.Context, providerID, date string) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Appointment{}
	for _, appt := range r.rows {
		if appt.VisitProvider == providerID && appt.Date == date {
			out = append(out, appt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// UpdateStatus transitions the appointment's lifecycle state.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	appt.Status = status
	r.rows[id] = appt
	return nil
}

// DayReader adapts a Repository to the availability package's
// AppointmentReader, feeding booked times into the slot generator.
type DayReader struct {
	repo Repository
}

// NewDayReader wraps the repository for slot computation.
func NewDayReader(repo Repository) *DayReader {
	return &DayReader{repo: repo}
}

// ListForProviderDate returns the day's appointments as slot-generator input.
func (d *DayReader) ListForProviderDate(ctx context.Context, providerID, date string) ([]availability.DayAppointment, error) {
	appts, err := d.repo.ListForProviderDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	out := make([]availability.DayAppointment, 0, len(appts))
	for _, appt := range appts {
		out = append(out, availability.DayAppointment{
			ID:        appt.ID,
			PatientID: appt.PatientID,
			Time:      appt.Time,
			Status:    string(appt.Status),
		})
	}
	return out, nil
}
