package availability

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresTemplateRepositoryGetForDay(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresTemplateRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"provider_id", "day_of_week", "start_time", "end_time", "is_available", "updated_at"}).
		AddRow("prov-1", 0, "09:00", "17:00", true, now)
	mock.ExpectQuery("SELECT provider_id").WithArgs("prov-1", 0).WillReturnRows(rows)

	tmpl, err := repo.GetForDay(context.Background(), "prov-1", 0)
	if err != nil {
		t.Fatalf("get for day: %v", err)
	}
	if tmpl == nil || tmpl.StartTime != "09:00" || !tmpl.IsAvailable {
		t.Fatalf("unexpected template: %#v", tmpl)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresTemplateRepositoryGetForDayMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresTemplateRepository(mock)

	empty := pgxmock.NewRows([]string{"provider_id", "day_of_week", "start_time", "end_time", "is_available", "updated_at"})
	mock.ExpectQuery("SELECT provider_id").WithArgs("prov-1", 3).WillReturnRows(empty)

	tmpl, err := repo.GetForDay(context.Background(), "prov-1", 3)
	if err != nil {
		t.Fatalf("get for day: %v", err)
	}
	if tmpl != nil {
		t.Fatalf("expected nil template for missing row, got %#v", tmpl)
	}
}

func TestPostgresTemplateRepositoryUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresTemplateRepository(mock)

	mock.ExpectExec("INSERT INTO weekly_availability").
		WithArgs("prov-1", 0, "09:00", "17:00", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), &WeeklyAvailability{
		ProviderID: "prov-1", DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresTemplateRepositoryUpsertRejectsBadRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresTemplateRepository(mock)

	// Validation failures never reach the database.
	err = repo.Upsert(context.Background(), &WeeklyAvailability{
		ProviderID: "prov-1", DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database access: %v", err)
	}
}
