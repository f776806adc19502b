package notes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryCreateAndSummary(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	note, err := repo.Create(ctx, &CreateRequest{
		AppointmentID: "appt-1",
		AuthorID:      "prov-1",
		Body:          "Patient reports intermittent headaches, onset two weeks ago.",
	})
	require.NoError(t, err)
	assert.Empty(t, note.Summary)

	require.NoError(t, repo.SetSummary(ctx, note.ID, "Headache workup; follow up in two weeks."))

	got, err := repo.GetByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Headache workup; follow up in two weeks.", got.Summary)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestInMemoryRepositoryValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &CreateRequest{AuthorID: "prov-1", Body: "note"})
	assert.ErrorIs(t, err, ErrMissingAppointment)

	_, err = repo.Create(ctx, &CreateRequest{AppointmentID: "appt-1", Body: "   "})
	assert.ErrorIs(t, err, ErrMissingBody)
}

func TestInMemoryRepositorySetSummaryMissing(t *testing.T) {
	repo := NewInMemoryRepository()

	err := repo.SetSummary(context.Background(), "missing", "summary")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryRepositoryListForAppointment(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for _, body := range []string{"first entry", "second entry"} {
		_, err := repo.Create(ctx, &CreateRequest{AppointmentID: "appt-1", AuthorID: "prov-1", Body: body})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &CreateRequest{AppointmentID: "appt-2", AuthorID: "prov-1", Body: "other visit"})
	require.NoError(t, err)

	list, err := repo.ListForAppointment(ctx, "appt-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
