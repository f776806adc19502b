package transcribe

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// maxTranscriptBytes bounds dictation uploads.
const maxTranscriptBytes = 1 << 20

// Handler exposes the summary pipeline over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the transcription HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type enqueueResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// Summarize handles POST /notes/{noteID}/summarize. The request body is the
// raw visit transcript; the response carries the job ID to poll.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")

	transcript, err := io.ReadAll(io.LimitReader(r.Body, maxTranscriptBytes))
	if err != nil {
		http.Error(w, "failed to read transcript", http.StatusBadRequest)
		return
	}
	if len(transcript) == 0 {
		http.Error(w, "transcript is required", http.StatusBadRequest)
		return
	}

	key, err := h.service.UploadTranscript(r.Context(), noteID, transcript)
	if err != nil {
		h.logger.Error("transcript upload failed", "error", err, "note_id", noteID)
		http.Error(w, "failed to store transcript", http.StatusInternalServerError)
		return
	}

	jobID, err := h.service.Enqueue(r.Context(), noteID, key)
	if errors.Is(err, ErrNoteNotFound) {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to enqueue summary job", "error", err, "note_id", noteID)
		http.Error(w, "failed to enqueue summary job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(enqueueResponse{JobID: jobID, Status: string(JobStatusPending)})
}

// JobStatus handles GET /summaries/{jobID}.
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.service.Status(r.Context(), jobID)
	if errors.Is(err, ErrJobNotFound) {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load job", "error", err, "job_id", jobID)
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(job)
}
