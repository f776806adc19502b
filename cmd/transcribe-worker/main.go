package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/harborhealth/ehr-platform/cmd/mainconfig"
	appconfig "github.com/harborhealth/ehr-platform/internal/config"
	"github.com/harborhealth/ehr-platform/internal/notes"
	"github.com/harborhealth/ehr-platform/internal/transcribe"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// The worker binary drains the summary queue, generates visit summaries,
// and writes them onto notes. It shares queue, job table, and bucket
// configuration with the API process.
func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting transcription worker", "env", cfg.Env)

	if cfg.UseMemoryQueue {
		logger.Error("worker cannot run with USE_MEMORY_QUEUE=true; the API process runs inline workers instead")
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" || cfg.TranscriptionQueueURL == "" || cfg.VisitAudioBucket == "" {
		logger.Error("DATABASE_URL, TRANSCRIPTION_QUEUE_URL, and VISIT_AUDIO_BUCKET are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	queue := transcribe.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.TranscriptionQueueURL)
	jobs := transcribe.NewJobStore(dynamodb.NewFromConfig(awsCfg), cfg.TranscriptionJobsTable, logger)
	transcripts := transcribe.NewAudioStore(s3.NewFromConfig(awsCfg), cfg.VisitAudioBucket, logger)
	noteRepo := notes.NewPostgresRepository(pool)

	var summarizer transcribe.Summarizer
	if cfg.GeminiAPIKey != "" {
		summarizer, err = transcribe.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to build gemini summarizer", "error", err)
			os.Exit(1)
		}
	} else {
		summarizer = transcribe.NewBedrockSummarizer(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
	}

	worker := transcribe.NewWorker(queue, jobs, transcripts, summarizer, noteRepo, nil, logger, cfg.WorkerCount)
	worker.Start(ctx)

	<-ctx.Done()
	logger.Info("shutting down worker")
	worker.Wait()
	logger.Info("worker stopped")
}
