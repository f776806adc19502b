package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores providers in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("providers: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// Create inserts a new provider row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateRequest) (*Provider, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider := Provider{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Specialty: req.Specialty,
		Email:     req.Email,
	}
	query := `
		INSERT INTO providers (id, name, specialty, email)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, query, provider.ID, provider.Name, provider.Specialty, provider.Email).Scan(&provider.CreatedAt); err != nil {
		return nil, fmt.Errorf("providers: insert: %w", err)
	}
	return &provider, nil
}

// GetByID returns the provider or ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Provider, error) {
	query := `
		SELECT id, name, specialty, email, created_at
		FROM providers
		WHERE id = $1
	`
	var provider Provider
	err := r.db.QueryRow(ctx, query, id).Scan(&provider.ID, &provider.Name, &provider.Specialty, &provider.Email, &provider.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("providers: load: %w", err)
	}
	return &provider, nil
}

// List returns all providers ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]Provider, error) {
	query := `
		SELECT id, name, specialty, email, created_at
		FROM providers
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("providers: list: %w", err)
	}
	defer rows.Close()

	out := []Provider{}
	for rows.Next() {
		var provider Provider
		if err := rows.Scan(&provider.ID, &provider.Name, &provider.Specialty, &provider.Email, &provider.CreatedAt); err != nil {
			return nil, fmt.Errorf("providers: scan: %w", err)
		}
		out = append(out, provider)
	}
	return out, rows.Err()
}

// Exists reports whether the provider id is known.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM providers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("providers: exists: %w", err)
	}
	return exists, nil
}
