package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/ehr-platform/internal/appointments"
	"github.com/harborhealth/ehr-platform/internal/availability"
	"github.com/harborhealth/ehr-platform/internal/providers"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

const staffSecret = "router-test-secret"

type allowAllPatients struct{}

func (allowAllPatients) Exists(ctx context.Context, id string) (bool, error) { return true, nil }

func newTestServer(t *testing.T) (http.Handler, *providers.InMemoryRepository, *availability.InMemoryTemplateRepository) {
	t.Helper()

	logger := logging.New("error")

	providerRepo := providers.NewInMemoryRepository()
	templates := availability.NewInMemoryTemplateRepository()
	apptRepo := appointments.NewInMemoryRepository()

	slotSvc := availability.NewService(templates, providerRepo, appointments.NewDayReader(apptRepo), 0, nil, logger)
	apptSvc := appointments.NewService(apptRepo, slotSvc, allowAllPatients{}, nil, nil, logger)

	handler := New(&Config{
		Logger:              logger,
		AvailabilityHandler: availability.NewHandler(slotSvc, logger),
		AppointmentsHandler: appointments.NewHandler(apptSvc, logger),
		ProvidersHandler:    providers.NewHandler(providerRepo, templates, logger),
		StaffAuthSecret:     staffSecret,
	})
	return handler, providerRepo, templates
}

func staffToken(t *testing.T) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "staff-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(staffSecret))
	require.NoError(t, err)
	return signed
}

func TestHealthEndpoint(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestSlotQueryIsPublic(t *testing.T) {
	handler, providerRepo, templates := newTestServer(t)
	ctx := context.Background()

	provider, err := providerRepo.Create(ctx, &providers.CreateRequest{Name: "Dr. Abbott"})
	require.NoError(t, err)
	require.NoError(t, templates.Upsert(ctx, &availability.WeeklyAvailability{
		ProviderID:  provider.ID,
		DayOfWeek:   0,
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: true,
	}))

	// 2025-03-10 is a Monday.
	req := httptest.NewRequest(http.MethodGet, "/providers/"+provider.ID+"/slots?date=2025-03-10", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Slots, 6)
	assert.Equal(t, "2025-03-10T09:00:00Z", resp.Slots[0])
}

func TestStaffRoutesRequireToken(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/providers", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaffRoutesRejectWithoutConfiguredSecret(t *testing.T) {
	logger := logging.New("error")
	providerRepo := providers.NewInMemoryRepository()
	templates := availability.NewInMemoryTemplateRepository()

	handler := New(&Config{
		Logger:           logger,
		ProvidersHandler: providers.NewHandler(providerRepo, templates, logger),
		StaffAuthSecret:  "",
	})

	// No secret means staff routes stay closed, not open.
	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingThroughRouter(t *testing.T) {
	handler, providerRepo, templates := newTestServer(t)
	ctx := context.Background()

	provider, err := providerRepo.Create(ctx, &providers.CreateRequest{Name: "Dr. Abbott"})
	require.NoError(t, err)
	require.NoError(t, templates.Upsert(ctx, &availability.WeeklyAvailability{
		ProviderID:  provider.ID,
		DayOfWeek:   0,
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: true,
	}))

	body := `{"providerId": "` + provider.ID + `", "patientId": "pat-1", "date": "2025-03-10", "time": "09:30", "reason": "follow-up"}`

	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The same slot books exactly once.
	req = httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
