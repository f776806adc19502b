package appointments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newHandlerFixture(t *testing.T) (*bookingFixture, http.Handler) {
	t.Helper()
	f := newBookingFixture(t)
	h := NewHandler(f.service, nil)

	r := chi.NewRouter()
	r.Post("/appointments", h.Create)
	r.Get("/appointments/{appointmentID}", h.Get)
	r.Patch("/appointments/{appointmentID}/status", h.SetStatus)
	return f, r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	_, router := newHandlerFixture(t)

	w := postJSON(t, router, "/appointments", validRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var appt Appointment
	if err := json.NewDecoder(w.Body).Decode(&appt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if appt.Status != StatusScheduled {
		t.Errorf("expected Scheduled, got %s", appt.Status)
	}
}

func TestCreateAppointmentConflictIsDistinct(t *testing.T) {
	_, router := newHandlerFixture(t)

	if w := postJSON(t, router, "/appointments", validRequest()); w.Code != http.StatusCreated {
		t.Fatalf("first booking: %d", w.Code)
	}

	w := postJSON(t, router, "/appointments", validRequest())
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "slot_conflict" {
		t.Errorf("expected slot_conflict code, got %s", resp.Code)
	}
}

func TestCreateAppointmentValidationIsDistinct(t *testing.T) {
	_, router := newHandlerFixture(t)

	req := validRequest()
	req.Reason = ""
	w := postJSON(t, router, "/appointments", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "validation_error" {
		t.Errorf("expected validation_error code, got %s", resp.Code)
	}
}

func TestCreateAppointmentUnknownProviderIsDistinct(t *testing.T) {
	_, router := newHandlerFixture(t)

	req := validRequest()
	req.ProviderID = "prov-ghost"
	w := postJSON(t, router, "/appointments", req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetAppointmentEndpoint(t *testing.T) {
	_, router := newHandlerFixture(t)

	w := postJSON(t, router, "/appointments", validRequest())
	var created Appointment
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/appointments/"+created.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/appointments/missing", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestSetStatusEndpoint(t *testing.T) {
	_, router := newHandlerFixture(t)

	w := postJSON(t, router, "/appointments", validRequest())
	var created Appointment
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	body, _ := json.Marshal(statusRequest{Status: StatusCanceled})
	req := httptest.NewRequest(http.MethodPatch, "/appointments/"+created.ID+"/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated Appointment
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != StatusCanceled {
		t.Errorf("expected Canceled, got %s", updated.Status)
	}

	body, _ = json.Marshal(statusRequest{Status: Status("Ghosted")})
	req = httptest.NewRequest(http.MethodPatch, "/appointments/"+created.ID+"/status", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", rec.Code)
	}
}
