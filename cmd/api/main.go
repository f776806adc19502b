package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/harborhealth/ehr-platform/cmd/mainconfig"
	"github.com/harborhealth/ehr-platform/internal/api/router"
	"github.com/harborhealth/ehr-platform/internal/appointments"
	"github.com/harborhealth/ehr-platform/internal/availability"
	appconfig "github.com/harborhealth/ehr-platform/internal/config"
	"github.com/harborhealth/ehr-platform/internal/notes"
	"github.com/harborhealth/ehr-platform/internal/notify"
	"github.com/harborhealth/ehr-platform/internal/observability/metrics"
	"github.com/harborhealth/ehr-platform/internal/patients"
	"github.com/harborhealth/ehr-platform/internal/practice"
	"github.com/harborhealth/ehr-platform/internal/providers"
	"github.com/harborhealth/ehr-platform/internal/transcribe"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting ehr-platform API server", "env", cfg.Env, "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	schedMetrics := metrics.NewSchedulingMetrics(registry)

	// Storage. Without DATABASE_URL everything runs on in-memory stores,
	// which is enough for local development against the full HTTP surface.
	var (
		templateRepo availability.TemplateRepository
		providerRepo providers.Repository
		apptRepo     appointments.Repository
		noteRepo     notes.Repository
		patientRepo  *patients.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		sqlDB := stdlib.OpenDBFromPool(pool)
		defer func() { _ = sqlDB.Close() }()

		templateRepo = availability.NewPostgresTemplateRepository(pool)
		providerRepo = providers.NewPostgresRepository(pool)
		apptRepo = appointments.NewPostgresRepository(pool)
		noteRepo = notes.NewPostgresRepository(pool)
		patientRepo = patients.NewRepository(sqlDB)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		templateRepo = availability.NewInMemoryTemplateRepository()
		providerRepo = providers.NewInMemoryRepository()
		apptRepo = appointments.NewInMemoryRepository()
		noteRepo = notes.NewInMemoryRepository()
	}

	// Practice settings live in Redis; without it the settings surface is
	// disabled and defaults apply.
	var settingsStore *practice.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		settingsStore = practice.NewStore(redis.NewClient(opts))
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Booking confirmations.
	var confirmer appointments.ConfirmationSender
	if patientRepo != nil {
		var sender notify.EmailSender
		switch {
		case cfg.EmailProvider != "ses" && cfg.SendGridAPIKey != "":
			sender = notify.NewSendGridSender(notify.SendGridConfig{
				APIKey:    cfg.SendGridAPIKey,
				FromEmail: cfg.SendGridFromEmail,
				FromName:  cfg.SendGridFromName,
			}, logger)
		case cfg.SESFromEmail != "":
			sender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
				FromEmail: cfg.SESFromEmail,
			}, logger)
		default:
			sender = notify.NewStubEmailSender(logger)
		}
		var settingsSource notify.SettingsSource
		if settingsStore != nil {
			settingsSource = settingsStore
		}
		confirmer = notify.NewBookingConfirmer(sender, patientRepo, settingsSource, cfg.PracticeID, logger)
	}

	// Scheduling services.
	slotSvc := availability.NewService(templateRepo, providerRepo, appointments.NewDayReader(apptRepo), cfg.SlotDuration(), schedMetrics, logger)
	var patientDir appointments.PatientDirectory
	if patientRepo != nil {
		patientDir = patientRepo
	}
	apptSvc := appointments.NewService(apptRepo, slotSvc, patientDir, confirmer, schedMetrics, logger)

	// Summary pipeline. With USE_MEMORY_QUEUE the workers run inline in this
	// process; otherwise the transcribe-worker binary drains SQS.
	transcribeSvc, worker := buildTranscribe(ctx, cfg, awsCfg, noteRepo, schedMetrics, logger)
	if worker != nil {
		worker.Start(ctx)
		defer worker.Wait()
	}

	routerCfg := &router.Config{
		Logger:              logger,
		AvailabilityHandler: availability.NewHandler(slotSvc, logger),
		AppointmentsHandler: appointments.NewHandler(apptSvc, logger),
		ProvidersHandler:    providers.NewHandler(providerRepo, templateRepo, logger),
		NotesHandler:        notes.NewHandler(noteRepo, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		StaffAuthSecret:     cfg.StaffJWTSecret,
		CORSAllowedOrigins:  splitOrigins(cfg.CORSAllowedOrigins),
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	}
	if patientRepo != nil {
		routerCfg.PatientsHandler = patients.NewHandler(patientRepo, logger)
	}
	if transcribeSvc != nil {
		routerCfg.TranscribeHandler = transcribe.NewHandler(transcribeSvc, logger)
	}
	if settingsStore != nil {
		routerCfg.PracticeHandler = practice.NewHandler(settingsStore, logger)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func buildTranscribe(ctx context.Context, cfg *appconfig.Config, awsCfg aws.Config, noteRepo notes.Repository, m *metrics.SchedulingMetrics, logger *logging.Logger) (*transcribe.Service, *transcribe.Worker) {
	summarizer := buildSummarizer(ctx, cfg, awsCfg, logger)

	if cfg.UseMemoryQueue {
		queue := transcribe.NewMemoryQueue(128)
		jobs := transcribe.NewMemoryJobStore()
		transcripts := transcribe.NewMemoryTranscriptStore()
		svc := transcribe.NewService(queue, jobs, transcripts, notes.ExistenceChecker{Repo: noteRepo}, logger)
		worker := transcribe.NewWorker(queue, jobs, transcripts, summarizer, noteRepo, m, logger, cfg.WorkerCount)
		return svc, worker
	}

	if cfg.TranscriptionQueueURL == "" || cfg.VisitAudioBucket == "" {
		logger.Warn("transcription pipeline disabled",
			"queue_url_set", cfg.TranscriptionQueueURL != "",
			"bucket_set", cfg.VisitAudioBucket != "",
		)
		return nil, nil
	}

	queue := transcribe.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.TranscriptionQueueURL)
	jobs := transcribe.NewJobStore(dynamodb.NewFromConfig(awsCfg), cfg.TranscriptionJobsTable, logger)
	transcripts := transcribe.NewAudioStore(s3.NewFromConfig(awsCfg), cfg.VisitAudioBucket, logger)
	svc := transcribe.NewService(queue, jobs, transcripts, notes.ExistenceChecker{Repo: noteRepo}, logger)
	return svc, nil
}

func buildSummarizer(ctx context.Context, cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) transcribe.Summarizer {
	if cfg.GeminiAPIKey != "" {
		gemini, err := transcribe.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to build gemini summarizer, falling back to bedrock", "error", err)
		} else {
			return gemini
		}
	}
	return transcribe.NewBedrockSummarizer(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
