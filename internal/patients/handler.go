package patients

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// Handler handles HTTP requests for the patient registry.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

// NewHandler creates the patients HTTP handler.
func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /patients.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.repo.Create(r.Context(), &req)
	if errors.Is(err, ErrMissingName) || errors.Is(err, ErrInvalidDateOfBirth) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("failed to create patient", "error", err)
		http.Error(w, "failed to create patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(patient)
}

// List handles GET /patients.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list patients", "error", err)
		http.Error(w, "failed to list patients", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]Patient{"patients": patients})
}

// Get handles GET /patients/{patientID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")

	patient, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load patient", "error", err, "patient_id", id)
		http.Error(w, "failed to load patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(patient)
}

// Update handles PUT /patients/{patientID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.repo.Update(r.Context(), id, &req)
	switch {
	case errors.Is(err, ErrMissingName) || errors.Is(err, ErrInvalidDateOfBirth):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrNotFound):
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("failed to update patient", "error", err, "patient_id", id)
		http.Error(w, "failed to update patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(patient)
}
