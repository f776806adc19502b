package practice

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// Handler handles HTTP requests for practice settings.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates the practice settings handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// GetSettings handles GET /practices/{practiceID}/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	practiceID := chi.URLParam(r, "practiceID")

	settings, err := h.store.Get(r.Context(), practiceID)
	if err != nil {
		h.logger.Error("failed to load practice settings", "error", err, "practice_id", practiceID)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(settings)
}

// PutSettings handles PUT /practices/{practiceID}/settings.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	practiceID := chi.URLParam(r, "practiceID")

	var settings Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	settings.PracticeID = practiceID

	if err := settings.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Set(r.Context(), &settings); err != nil {
		h.logger.Error("failed to save practice settings", "error", err, "practice_id", practiceID)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	h.logger.Info("practice settings saved", "practice_id", practiceID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&settings)
}
