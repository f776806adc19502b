package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresTemplateRepository stores weekly availability rows in Postgres.
type PostgresTemplateRepository struct {
	db DB
}

// NewPostgresTemplateRepository initializes a repo backed by a pgx pool.
func NewPostgresTemplateRepository(db DB) *PostgresTemplateRepository {
	if db == nil {
		panic("availability: pgx pool required")
	}
	return &PostgresTemplateRepository{db: db}
}

// GetForDay returns the row for (providerID, dayOfWeek), or nil when absent.
func (r *PostgresTemplateRepository) GetForDay(ctx context.Context, providerID string, dayOfWeek int) (*WeeklyAvailability, error) {
	query := `
		SELECT provider_id, day_of_week, start_time, end_time, is_available, updated_at
		FROM weekly_availability
		WHERE provider_id = $1 AND day_of_week = $2
	`
	var row WeeklyAvailability
	err := r.db.QueryRow(ctx, query, providerID, dayOfWeek).Scan(
		&row.ProviderID, &row.DayOfWeek, &row.StartTime, &row.EndTime, &row.IsAvailable, &row.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("availability: load template: %w", err)
	}
	return &row, nil
}

// ListForProvider returns the provider's rows ordered by weekday.
func (r *PostgresTemplateRepository) ListForProvider(ctx context.Context, providerID string) ([]WeeklyAvailability, error) {
	query := `
		SELECT provider_id, day_of_week, start_time, end_time, is_available, updated_at
		FROM weekly_availability
		WHERE provider_id = $1
		ORDER BY day_of_week
	`
	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("availability: list templates: %w", err)
	}
	defer rows.Close()

	out := []WeeklyAvailability{}
	for rows.Next() {
		var row WeeklyAvailability
		if err := rows.Scan(&row.ProviderID, &row.DayOfWeek, &row.StartTime, &row.EndTime, &row.IsAvailable, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("availability: scan template: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Upsert creates or replaces the row keyed on (provider_id, day_of_week).
func (r *PostgresTemplateRepository) Upsert(ctx context.Context, tmpl *WeeklyAvailability) error {
	if err := validateTemplate(tmpl); err != nil {
		return err
	}
	query := `
		INSERT INTO weekly_availability (provider_id, day_of_week, start_time, end_time, is_available, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (provider_id, day_of_week)
		DO UPDATE SET start_time = EXCLUDED.start_time,
		              end_time = EXCLUDED.end_time,
		              is_available = EXCLUDED.is_available,
		              updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, tmpl.ProviderID, tmpl.DayOfWeek, tmpl.StartTime, tmpl.EndTime, tmpl.IsAvailable); err != nil {
		return fmt.Errorf("availability: upsert template: %w", err)
	}
	return nil
}
