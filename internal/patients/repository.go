package patients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository stores patients in the relational database.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository backed by the given database handle.
func NewRepository(db *sql.DB) *Repository {
	if db == nil {
		panic("patients: database handle required")
	}
	return &Repository{db: db}
}

// Create registers a new patient.
func (r *Repository) Create(ctx context.Context, req *CreateRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := Patient{
		ID:          uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Phone:       req.Phone,
		Email:       req.Email,
		Allergies:   req.Allergies,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (id, first_name, last_name, date_of_birth, phone, email, allergies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Phone, p.Email, pq.Array(p.Allergies), now)
	if err != nil {
		return nil, fmt.Errorf("patients: insert: %w", err)
	}
	return &p, nil
}

// Get returns the patient or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*Patient, error) {
	var p Patient
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth, phone, email, allergies, created_at, updated_at
		FROM patients WHERE id = $1`, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Phone, &p.Email,
		pq.Array(&p.Allergies), &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patients: load: %w", err)
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	return &p, nil
}

// List returns all patients, most recently updated first.
func (r *Repository) List(ctx context.Context) ([]Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth, phone, email, allergies, created_at, updated_at
		FROM patients ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("patients: list: %w", err)
	}
	defer rows.Close()

	out := []Patient{}
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Phone, &p.Email,
			pq.Array(&p.Allergies), &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("patients: scan: %w", err)
		}
		if p.Allergies == nil {
			p.Allergies = []string{}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update overwrites contact details and allergies for a patient.
func (r *Repository) Update(ctx context.Context, id string, req *CreateRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	allergies := req.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET first_name = $2, last_name = $3, date_of_birth = $4, phone = $5, email = $6, allergies = $7, updated_at = $8
		WHERE id = $1`,
		id, req.FirstName, req.LastName, req.DateOfBirth, req.Phone, req.Email, pq.Array(allergies), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("patients: update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("patients: update: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Exists reports whether the patient id is known.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("patients: exists: %w", err)
	}
	return exists, nil
}
