// Package router assembles the HTTP surface of the EHR API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harborhealth/ehr-platform/internal/appointments"
	"github.com/harborhealth/ehr-platform/internal/availability"
	httpmiddleware "github.com/harborhealth/ehr-platform/internal/http/middleware"
	"github.com/harborhealth/ehr-platform/internal/notes"
	"github.com/harborhealth/ehr-platform/internal/patients"
	"github.com/harborhealth/ehr-platform/internal/practice"
	"github.com/harborhealth/ehr-platform/internal/providers"
	"github.com/harborhealth/ehr-platform/internal/transcribe"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger *logging.Logger

	AvailabilityHandler *availability.Handler
	AppointmentsHandler *appointments.Handler
	ProvidersHandler    *providers.Handler
	PatientsHandler     *patients.Handler
	NotesHandler        *notes.Handler
	TranscribeHandler   *transcribe.Handler
	PracticeHandler     *practice.Handler

	MetricsHandler http.Handler

	StaffAuthSecret    string
	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	// Public endpoints: health, metrics, and the patient-facing slot query.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.AvailabilityHandler != nil {
			public.Get("/providers/{providerID}/slots", cfg.AvailabilityHandler.GetSlots)
		}
		if cfg.AppointmentsHandler != nil {
			public.Post("/appointments", cfg.AppointmentsHandler.Create)
		}
	})

	// Staff endpoints: schedule management and clinical records.
	r.Group(func(staff chi.Router) {
		// Always installed: with no secret configured the middleware
		// rejects everything rather than serving staff routes open.
		staff.Use(httpmiddleware.StaffJWT(cfg.StaffAuthSecret))

		if cfg.ProvidersHandler != nil {
			staff.Route("/providers", func(r chi.Router) {
				r.Post("/", cfg.ProvidersHandler.Create)
				r.Get("/", cfg.ProvidersHandler.List)
				r.Route("/{providerID}", func(r chi.Router) {
					r.Get("/", cfg.ProvidersHandler.Get)
					r.Get("/availability", cfg.ProvidersHandler.ListAvailability)
					r.Put("/availability", cfg.ProvidersHandler.UpsertAvailability)
				})
			})
		}

		if cfg.PatientsHandler != nil {
			staff.Route("/patients", func(r chi.Router) {
				r.Post("/", cfg.PatientsHandler.Create)
				r.Get("/", cfg.PatientsHandler.List)
				r.Get("/{patientID}", cfg.PatientsHandler.Get)
				r.Put("/{patientID}", cfg.PatientsHandler.Update)
			})
		}

		if cfg.AppointmentsHandler != nil {
			staff.Route("/appointments/{appointmentID}", func(r chi.Router) {
				r.Get("/", cfg.AppointmentsHandler.Get)
				r.Patch("/status", cfg.AppointmentsHandler.SetStatus)
				if cfg.NotesHandler != nil {
					r.Get("/notes", cfg.NotesHandler.ListForAppointment)
				}
			})
		}

		if cfg.NotesHandler != nil {
			staff.Route("/notes", func(r chi.Router) {
				r.Post("/", cfg.NotesHandler.Create)
				r.Get("/{noteID}", cfg.NotesHandler.Get)
				if cfg.TranscribeHandler != nil {
					r.Post("/{noteID}/summarize", cfg.TranscribeHandler.Summarize)
				}
			})
		}
		if cfg.TranscribeHandler != nil {
			staff.Get("/summaries/{jobID}", cfg.TranscribeHandler.JobStatus)
		}

		if cfg.PracticeHandler != nil {
			staff.Route("/practices/{practiceID}/settings", func(r chi.Router) {
				r.Get("/", cfg.PracticeHandler.GetSettings)
				r.Put("/", cfg.PracticeHandler.PutSettings)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
