package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/harborhealth/ehr-platform/internal/availability"
)

// uniqueViolation is the Postgres error code raised by the
// (visit_provider, date, time) unique constraint.
const uniqueViolation = "23505"

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	db availability.DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db availability.DB) *PostgresRepository {
	if db == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row. A unique-constraint violation on the slot key is
// the storage layer's final word on double booking and surfaces as
// ErrSlotTaken, same as the application-level check.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	query := `
		INSERT INTO appointments (id, patient_id, visit_provider, date, time, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		appt.ID,
		appt.PatientID,
		appt.VisitProvider,
		appt.Date,
		appt.Time,
		appt.Reason,
		string(appt.Status),
	).Scan(&appt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("appointments: insert: %w", err)
	}
	return nil
}

// GetByID returns the appointment or ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query := `
		SELECT id, patient_id, visit_provider, to_char(date, 'YYYY-MM-DD'), time, reason, status, created_at
		FROM appointments
		WHERE id = $1
	`
	var appt Appointment
	var status string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&appt.ID, &appt.PatientID, &appt.VisitProvider, &appt.Date, &appt.Time, &appt.Reason, &status, &appt.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: load: %w", err)
	}
	appt.Status = Status(status)
	return &appt, nil
}

// ListForProviderDate returns the provider's appointments on one calendar
// date ordered by time, canceled rows included.
func (r *PostgresRepository) ListForProviderDate(ctx context.Context, providerID, date string) ([]Appointment, error) {
	query := `
		SELECT id, patient_id, visit_provider, to_char(date, 'YYYY-MM-DD'), time, reason, status, created_at
		FROM appointments
		WHERE visit_provider = $1 AND date = $2
		ORDER BY time
	`
	rows, err := r.db.Query(ctx, query, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("appointments: list for day: %w", err)
	}
	defer rows.Close()

	out := []Appointment{}
	for rows.Next() {
		var appt Appointment
		var status string
		if err := rows.Scan(&appt.ID, &appt.PatientID, &appt.VisitProvider, &appt.Date, &appt.Time, &appt.Reason, &status, &appt.CreatedAt); err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		appt.Status = Status(status)
		out = append(out, appt)
	}
	return out, rows.Err()
}

// UpdateStatus transitions the lifecycle state of an existing row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	query := `
		UPDATE appointments
		SET status = $2, updated_at = $3
		WHERE id = $1
	`
	ct, err := r.db.Exec(ctx, query, id, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("appointments: update status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
