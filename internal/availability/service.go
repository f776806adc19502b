package availability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harborhealth/ehr-platform/internal/observability/metrics"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

var tracer = otel.Tracer("ehr.internal.availability")

// ProviderDirectory answers whether a provider id exists. Implemented by the
// providers repository.
type ProviderDirectory interface {
	Exists(ctx context.Context, providerID string) (bool, error)
}

// AppointmentReader lists a provider's appointments on one calendar date.
// Implemented by the appointments repository. Canceled rows are included:
// a canceled appointment keeps its slot until the row is deleted.
type AppointmentReader interface {
	ListForProviderDate(ctx context.Context, providerID, date string) ([]DayAppointment, error)
}

// Service resolves the day template and computes the free slot set. Every
// query recomputes from current store state; nothing is cached.
type Service struct {
	templates    TemplateRepository
	providers    ProviderDirectory
	appointments AppointmentReader
	slotDuration time.Duration
	metrics      *metrics.SchedulingMetrics
	logger       *logging.Logger
}

// NewService wires the slot computation service.
func NewService(templates TemplateRepository, providers ProviderDirectory, appointments AppointmentReader, slotDuration time.Duration, m *metrics.SchedulingMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}
	return &Service{
		templates:    templates,
		providers:    providers,
		appointments: appointments,
		slotDuration: slotDuration,
		metrics:      m,
		logger:       logger,
	}
}

// SlotDuration reports the configured granularity.
func (s *Service) SlotDuration() time.Duration {
	return s.slotDuration
}

// QuerySlots computes the ordered free instants for a provider on a date,
// along with the day's existing appointments.
func (s *Service) QuerySlots(ctx context.Context, providerID, date string) (*SlotsResult, error) {
	ctx, span := tracer.Start(ctx, "availability.QuerySlots")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider_id", providerID),
		attribute.String("date", date),
	)

	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	ok, err := s.providers.Exists(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("availability: check provider: %w", err)
	}
	if !ok {
		return nil, ErrProviderNotFound
	}

	tmpl, err := s.templates.GetForDay(ctx, providerID, DayOfWeek(day))
	if err != nil {
		return nil, err
	}

	booked, err := s.appointments.ListForProviderDate(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("availability: list appointments: %w", err)
	}

	slots, err := GenerateSlots(day, tmpl, booked, s.slotDuration)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSlotQuery(len(slots))
	s.logger.Debug("slot query computed",
		"provider_id", providerID,
		"date", date,
		"slots", len(slots),
		"appointments", len(booked),
	)

	return &SlotsResult{Slots: slots, Appointments: booked}, nil
}

// IsFree reports whether the exact instant date+time is currently in the
// provider's free slot set. The booking flow calls this at write time so a
// stale client slot list cannot create a double booking.
func (s *Service) IsFree(ctx context.Context, providerID, date, clock string) (bool, error) {
	result, err := s.QuerySlots(ctx, providerID, date)
	if err != nil {
		return false, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	want, err := parseClock(day, clock)
	if err != nil {
		return false, err
	}
	for _, slot := range result.Slots {
		if slot.Equal(want) {
			return true, nil
		}
	}
	return false, nil
}
