package notes

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("INSERT INTO notes").
		WithArgs(pgxmock.AnyArg(), "appt-1", "prov-1", "Visit note body.", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	note, err := repo.Create(context.Background(), &CreateRequest{
		AppointmentID: "appt-1",
		AuthorID:      "prov-1",
		Body:          "Visit note body.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.ID == "" || note.AppointmentID != "appt-1" {
		t.Fatalf("unexpected note: %#v", note)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepositorySetSummaryMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE notes SET summary").
		WithArgs("missing", "summary", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.SetSummary(context.Background(), "missing", "summary"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
