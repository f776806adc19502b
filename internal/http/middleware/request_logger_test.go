package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

func TestRequestLoggerEchoesRequestID(t *testing.T) {
	mw := RequestLogger(logging.New("error"))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("expected request id echoed, got %q", got)
	}
}

func TestRequestLoggerGeneratesRequestID(t *testing.T) {
	mw := RequestLogger(logging.New("error"))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id on the response")
	}
}

func TestRequestLoggerSkipsHealthProbes(t *testing.T) {
	mw := RequestLogger(logging.New("error"))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != "" {
		t.Error("health probes should bypass request id handling")
	}
}
