package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborhealth/ehr-platform/internal/availability"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// Handler handles HTTP requests for appointments.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the appointments HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Create handles POST /appointments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "validation_error")
		return
	}

	appt, err := h.service.Create(r.Context(), &req)
	switch {
	case err == nil:
	case IsValidationError(err), errors.Is(err, availability.ErrInvalidDate), errors.Is(err, availability.ErrInvalidClock):
		writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	case errors.Is(err, ErrSlotTaken):
		// A 409 tells the client to re-query slots and pick again; the
		// server never retries on its own.
		writeError(w, http.StatusConflict, "slot no longer available", "slot_conflict")
		return
	case errors.Is(err, ErrNotFound), errors.Is(err, availability.ErrProviderNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "not_found")
		return
	default:
		h.logger.Error("booking failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create appointment", "store_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(appt); err != nil {
		h.logger.Error("failed to encode appointment", "error", err)
	}
}

// Get handles GET /appointments/{appointmentID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	appt, err := h.service.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "appointment not found", "not_found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load appointment", "error", err, "appointment_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load appointment", "store_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(appt); err != nil {
		h.logger.Error("failed to encode appointment", "error", err)
	}
}

type statusRequest struct {
	Status Status `json:"status"`
}

// SetStatus handles PATCH /appointments/{appointmentID}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "validation_error")
		return
	}

	appt, err := h.service.SetStatus(r.Context(), id, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment not found", "not_found")
		return
	default:
		h.logger.Error("status update failed", "error", err, "appointment_id", id)
		writeError(w, http.StatusInternalServerError, "failed to update appointment", "store_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(appt); err != nil {
		h.logger.Error("failed to encode appointment", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Code: code})
}
