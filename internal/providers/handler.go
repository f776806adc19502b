package providers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborhealth/ehr-platform/internal/availability"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// Handler handles HTTP requests for providers and their weekly availability
// templates.
type Handler struct {
	repo      Repository
	templates availability.TemplateRepository
	logger    *logging.Logger
}

// NewHandler creates the providers HTTP handler.
func NewHandler(repo Repository, templates availability.TemplateRepository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, templates: templates, logger: logger}
}

// Create handles POST /providers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	provider, err := h.repo.Create(r.Context(), &req)
	if errors.Is(err, ErrInvalidName) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("failed to create provider", "error", err)
		http.Error(w, "failed to create provider", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(provider)
}

// List handles GET /providers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list providers", "error", err)
		http.Error(w, "failed to list providers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]Provider{"providers": providers})
}

// Get handles GET /providers/{providerID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "providerID")

	provider, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "provider not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load provider", "error", err, "provider_id", id)
		http.Error(w, "failed to load provider", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(provider)
}

// ListAvailability handles GET /providers/{providerID}/availability.
func (h *Handler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "providerID")

	if ok, err := h.repo.Exists(r.Context(), id); err != nil {
		h.logger.Error("provider lookup failed", "error", err, "provider_id", id)
		http.Error(w, "failed to load availability", http.StatusInternalServerError)
		return
	} else if !ok {
		http.Error(w, "provider not found", http.StatusNotFound)
		return
	}

	rows, err := h.templates.ListForProvider(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list availability", "error", err, "provider_id", id)
		http.Error(w, "failed to load availability", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]availability.WeeklyAvailability{"availability": rows})
}

type upsertAvailabilityRequest struct {
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// UpsertAvailability handles PUT /providers/{providerID}/availability. The
// row is keyed on (provider, dayOfWeek); posting the same weekday twice
// updates in place.
func (h *Handler) UpsertAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "providerID")

	if ok, err := h.repo.Exists(r.Context(), id); err != nil {
		h.logger.Error("provider lookup failed", "error", err, "provider_id", id)
		http.Error(w, "failed to save availability", http.StatusInternalServerError)
		return
	} else if !ok {
		http.Error(w, "provider not found", http.StatusNotFound)
		return
	}

	var req upsertAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tmpl := &availability.WeeklyAvailability{
		ProviderID:  id,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	}
	err := h.templates.Upsert(r.Context(), tmpl)
	if errors.Is(err, availability.ErrInvalidDayOfWeek) || errors.Is(err, availability.ErrInvalidClock) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("failed to upsert availability", "error", err, "provider_id", id)
		http.Error(w, "failed to save availability", http.StatusInternalServerError)
		return
	}

	h.logger.Info("availability template saved", "provider_id", id, "day_of_week", req.DayOfWeek)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tmpl)
}
