package notes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// Handler handles HTTP requests for clinical notes.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates the notes HTTP handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /notes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	note, err := h.repo.Create(r.Context(), &req)
	if errors.Is(err, ErrMissingAppointment) || errors.Is(err, ErrMissingBody) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("failed to create note", "error", err)
		http.Error(w, "failed to create note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(note)
}

// Get handles GET /notes/{noteID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "noteID")

	note, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load note", "error", err, "note_id", id)
		http.Error(w, "failed to load note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(note)
}

// ListForAppointment handles GET /appointments/{appointmentID}/notes.
func (h *Handler) ListForAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")

	list, err := h.repo.ListForAppointment(r.Context(), appointmentID)
	if err != nil {
		h.logger.Error("failed to list notes", "error", err, "appointment_id", appointmentID)
		http.Error(w, "failed to list notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]Note{"notes": list})
}
