package appointments

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/harborhealth/ehr-platform/internal/availability"
	"github.com/harborhealth/ehr-platform/internal/observability/metrics"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

var tracer = otel.Tracer("ehr.internal.appointments")

// PatientDirectory answers whether a patient id exists. Implemented by the
// patients repository.
type PatientDirectory interface {
	Exists(ctx context.Context, patientID string) (bool, error)
}

// ConfirmationSender delivers booking confirmations. Delivery is best
// effort: a notification failure never rolls back the booking.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, appt *Appointment) error
}

// Service gates appointment creation on slot availability.
type Service struct {
	repo     Repository
	slots    *availability.Service
	patients PatientDirectory
	notify   ConfirmationSender
	metrics  *metrics.SchedulingMetrics
	logger   *logging.Logger
}

// NewService wires the booking service. notify may be nil when confirmations
// are not configured; patients may be nil when no patient registry is wired.
func NewService(repo Repository, slots *availability.Service, patients PatientDirectory, notify ConfirmationSender, m *metrics.SchedulingMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		slots:    slots,
		patients: patients,
		notify:   notify,
		metrics:  m,
		logger:   logger,
	}
}

// Create validates the request, re-derives the provider's free slot set at
// this moment, and inserts the appointment only if the proposed instant is
// still free. The check-then-insert pair is not atomic under concurrency;
// the unique (provider, date, time) constraint in the schema is the real
// guarantee and also maps to ErrSlotTaken.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (appt *Appointment, err error) {
	ctx, span := tracer.Start(ctx, "appointments.Create", trace.WithAttributes(
		attribute.String("provider_id", req.ProviderID),
		attribute.String("date", req.Date),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
	}()

	if err := req.Validate(); err != nil {
		s.metrics.ObserveBooking("validation_error")
		return nil, err
	}

	if s.patients != nil {
		ok, err := s.patients.Exists(ctx, req.PatientID)
		if err != nil {
			s.metrics.ObserveBooking("store_error")
			return nil, fmt.Errorf("appointments: check patient: %w", err)
		}
		if !ok {
			s.metrics.ObserveBooking("not_found")
			return nil, fmt.Errorf("%w: patient %s", ErrNotFound, req.PatientID)
		}
	}

	// Never trust a client-supplied slot list; recompute now.
	free, err := s.slots.IsFree(ctx, req.ProviderID, req.Date, req.Time)
	if err != nil {
		s.metrics.ObserveBooking(outcomeForError(err))
		return nil, err
	}
	if !free {
		s.metrics.ObserveBooking("conflict")
		return nil, ErrSlotTaken
	}

	appt = &Appointment{
		PatientID:     req.PatientID,
		VisitProvider: req.ProviderID,
		Date:          req.Date,
		Time:          req.Time,
		Reason:        req.Reason,
		Status:        StatusScheduled,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		s.metrics.ObserveBooking(outcomeForError(err))
		return nil, err
	}

	s.metrics.ObserveBooking("created")
	s.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"provider_id", appt.VisitProvider,
		"date", appt.Date,
		"time", appt.Time,
	)

	if s.notify != nil {
		if err := s.notify.SendBookingConfirmation(ctx, appt); err != nil {
			s.logger.Error("booking confirmation failed", "error", err, "appointment_id", appt.ID)
		}
	}

	return appt, nil
}

// Get loads one appointment.
func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus transitions an appointment's lifecycle state. Canceling does not
// free the slot for rebooking; that is deliberate pending product
// clarification on the reschedule path.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func outcomeForError(err error) string {
	switch {
	case err == nil:
		return "created"
	case IsValidationError(err):
		return "validation_error"
	case errors.Is(err, ErrSlotTaken):
		return "conflict"
	case errors.Is(err, ErrNotFound), errors.Is(err, availability.ErrProviderNotFound):
		return "not_found"
	case errors.Is(err, availability.ErrInvalidDate), errors.Is(err, availability.ErrInvalidClock):
		return "validation_error"
	default:
		return "store_error"
	}
}
