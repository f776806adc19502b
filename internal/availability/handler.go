package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// Handler serves the slot query endpoint.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the availability HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// SlotsResponse is the wire shape for GET /providers/{providerID}/slots.
type SlotsResponse struct {
	ProviderID   string           `json:"providerId"`
	Date         string           `json:"date"`
	Slots        []string         `json:"slots"`
	Appointments []DayAppointment `json:"appointments"`
}

// GetSlots handles GET /providers/{providerID}/slots?date=YYYY-MM-DD.
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date query parameter is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.QuerySlots(r.Context(), providerID, date)
	switch {
	case errors.Is(err, ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrProviderNotFound):
		http.Error(w, "provider not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("slot query failed", "error", err, "provider_id", providerID, "date", date)
		http.Error(w, "failed to compute availability", http.StatusInternalServerError)
		return
	}

	resp := SlotsResponse{
		ProviderID:   providerID,
		Date:         date,
		Slots:        formatSlots(result.Slots),
		Appointments: result.Appointments,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode slots response", "error", err)
	}
}

func formatSlots(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.UTC().Format(time.RFC3339))
	}
	return out
}
