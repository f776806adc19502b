package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/ehr-platform/internal/availability"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

func newTestRouter(t *testing.T) (*InMemoryRepository, *availability.InMemoryTemplateRepository, http.Handler) {
	t.Helper()

	repo := NewInMemoryRepository()
	templates := availability.NewInMemoryTemplateRepository()
	h := NewHandler(repo, templates, logging.New("error"))

	router := chi.NewRouter()
	router.Post("/providers", h.Create)
	router.Get("/providers", h.List)
	router.Get("/providers/{providerID}", h.Get)
	router.Get("/providers/{providerID}/availability", h.ListAvailability)
	router.Put("/providers/{providerID}/availability", h.UpsertAvailability)

	return repo, templates, router
}

func TestCreateProviderEndpoint(t *testing.T) {
	_, _, router := newTestRouter(t)

	body := `{"name": "Dr. Amaya Ortiz", "specialty": "Family Medicine", "email": "aortiz@harborhealth.example"}`
	req := httptest.NewRequest(http.MethodPost, "/providers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var provider Provider
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&provider))
	assert.NotEmpty(t, provider.ID)
	assert.Equal(t, "Dr. Amaya Ortiz", provider.Name)
	assert.Equal(t, "Family Medicine", provider.Specialty)
}

func TestCreateProviderRequiresName(t *testing.T) {
	_, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/providers", strings.NewReader(`{"name": "  "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProviderNotFound(t *testing.T) {
	_, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProvidersOrdering(t *testing.T) {
	repo, _, router := newTestRouter(t)

	for _, name := range []string{"Dr. Zhou", "Dr. Abbott"} {
		_, err := repo.Create(context.Background(), &CreateRequest{Name: name})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Providers []Provider `json:"providers"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Providers, 2)
	assert.Equal(t, "Dr. Abbott", resp.Providers[0].Name)
	assert.Equal(t, "Dr. Zhou", resp.Providers[1].Name)
}

func TestUpsertAvailabilityEndpoint(t *testing.T) {
	repo, templates, router := newTestRouter(t)

	provider, err := repo.Create(context.Background(), &CreateRequest{Name: "Dr. Abbott"})
	require.NoError(t, err)

	body := `{"dayOfWeek": 0, "startTime": "09:00", "endTime": "17:00", "isAvailable": true}`
	req := httptest.NewRequest(http.MethodPut, "/providers/"+provider.ID+"/availability", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	tmpl, err := templates.GetForDay(context.Background(), provider.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, tmpl)
	assert.Equal(t, "09:00", tmpl.StartTime)
	assert.Equal(t, "17:00", tmpl.EndTime)
	assert.True(t, tmpl.IsAvailable)
}

func TestUpsertAvailabilityReplacesExistingDay(t *testing.T) {
	repo, templates, router := newTestRouter(t)

	provider, err := repo.Create(context.Background(), &CreateRequest{Name: "Dr. Abbott"})
	require.NoError(t, err)

	for _, body := range []string{
		`{"dayOfWeek": 2, "startTime": "09:00", "endTime": "17:00", "isAvailable": true}`,
		`{"dayOfWeek": 2, "startTime": "10:00", "endTime": "14:00", "isAvailable": true}`,
	} {
		req := httptest.NewRequest(http.MethodPut, "/providers/"+provider.ID+"/availability", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rows, err := templates.ListForProvider(context.Background(), provider.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "10:00", rows[0].StartTime)
	assert.Equal(t, "14:00", rows[0].EndTime)
}

func TestUpsertAvailabilityRejectsBadTemplate(t *testing.T) {
	repo, _, router := newTestRouter(t)

	provider, err := repo.Create(context.Background(), &CreateRequest{Name: "Dr. Abbott"})
	require.NoError(t, err)

	cases := map[string]string{
		"day out of range": `{"dayOfWeek": 7, "startTime": "09:00", "endTime": "17:00", "isAvailable": true}`,
		"bad clock":        `{"dayOfWeek": 1, "startTime": "9am", "endTime": "17:00", "isAvailable": true}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/providers/"+provider.ID+"/availability", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAvailabilityForUnknownProvider(t *testing.T) {
	_, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers/missing/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
