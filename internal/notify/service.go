package notify

import (
	"context"
	"fmt"

	"github.com/harborhealth/ehr-platform/internal/appointments"
	"github.com/harborhealth/ehr-platform/internal/patients"
	"github.com/harborhealth/ehr-platform/internal/practice"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// PatientLookup resolves the patient a confirmation is addressed to.
type PatientLookup interface {
	Get(ctx context.Context, id string) (*patients.Patient, error)
}

// SettingsSource provides the practice notification preferences.
type SettingsSource interface {
	Get(ctx context.Context, practiceID string) (*practice.Settings, error)
}

// BookingConfirmer emails patients after an appointment is created. It
// satisfies the confirmation-sender hook on the appointments service.
type BookingConfirmer struct {
	sender     EmailSender
	patients   PatientLookup
	settings   SettingsSource
	practiceID string
	logger     *logging.Logger
}

// NewBookingConfirmer wires the confirmation service. settings may be nil;
// confirmations are then always sent.
func NewBookingConfirmer(sender EmailSender, patientLookup PatientLookup, settings SettingsSource, practiceID string, logger *logging.Logger) *BookingConfirmer {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingConfirmer{
		sender:     sender,
		patients:   patientLookup,
		settings:   settings,
		practiceID: practiceID,
		logger:     logger,
	}
}

// SendBookingConfirmation emails the patient their appointment details.
func (c *BookingConfirmer) SendBookingConfirmation(ctx context.Context, appt *appointments.Appointment) error {
	if c.settings != nil {
		settings, err := c.settings.Get(ctx, c.practiceID)
		if err != nil {
			return fmt.Errorf("notify: load settings: %w", err)
		}
		if !settings.Notifications.EmailEnabled || !settings.Notifications.NotifyOnBooking {
			c.logger.Info("booking confirmations disabled", "appointment_id", appt.ID)
			return nil
		}
	}

	patient, err := c.patients.Get(ctx, appt.PatientID)
	if err != nil {
		return fmt.Errorf("notify: load patient: %w", err)
	}
	if patient.Email == "" {
		c.logger.Info("patient has no email, skipping confirmation", "patient_id", patient.ID)
		return nil
	}

	name := patient.FirstName + " " + patient.LastName
	msg := EmailMessage{
		To:      patient.Email,
		ToName:  name,
		Subject: "Your appointment is confirmed",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour appointment on %s at %s is confirmed.\n\nIf you need to reschedule, call the office.\n",
			patient.FirstName, appt.Date, appt.Time),
	}
	if err := c.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: booking confirmation: %w", err)
	}
	return nil
}
