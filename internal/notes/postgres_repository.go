package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harborhealth/ehr-platform/internal/availability"
)

// PostgresRepository stores notes in the relational database.
type PostgresRepository struct {
	db availability.DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(pool availability.DB) *PostgresRepository {
	if pool == nil {
		panic("notes: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// Create stores a new note.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateRequest) (*Note, error) {
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
	query := `
		INSERT INTO notes (id, appointment_id, author_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	if _, err := r.db.Exec(ctx, query, note.ID, note.AppointmentID, note.AuthorID, note.Body, now); err != nil {
		return nil, fmt.Errorf("notes: insert: %w", err)
	}
	return &note, nil
}

// GetByID returns the note or ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Note, error) {
	query := `
		SELECT id, appointment_id, author_id, body, COALESCE(summary, ''), created_at, updated_at
		FROM notes
		WHERE id = $1
	`
	var note Note
	err := r.db.QueryRow(ctx, query, id).Scan(
		&note.ID, &note.AppointmentID, &note.AuthorID, &note.Body, &note.Summary, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("notes: load: %w", err)
	}
	return &note, nil
}

// ListForAppointment returns notes for an appointment, oldest first.
func (r *PostgresRepository) ListForAppointment(ctx context.Context, appointmentID string) ([]Note, error) {
	query := `
		SELECT id, appointment_id, author_id, body, COALESCE(summary, ''), created_at, updated_at
		FROM notes
		WHERE appointment_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("notes: list: %w", err)
	}
	defer rows.Close()

	out := []Note{}
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.AppointmentID, &note.AuthorID, &note.Body, &note.Summary, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("notes: scan: %w", err)
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

// SetSummary records the generated visit summary on a note.
func (r *PostgresRepository) SetSummary(ctx context.Context, id, summary string) error {
	tag, err := r.db.Exec(ctx, `UPDATE notes SET summary = $2, updated_at = $3 WHERE id = $1`, id, summary, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("notes: set summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
