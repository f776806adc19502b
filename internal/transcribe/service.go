package transcribe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

var tracer = otel.Tracer("ehr.internal.transcribe")

// NoteChecker verifies the note a summary is requested for exists.
type NoteChecker interface {
	Exists(ctx context.Context, noteID string) (bool, error)
}

// Service accepts summarization requests and parks them on the queue for
// the worker pool.
type Service struct {
	queue       queueClient
	jobs        JobRecorder
	transcripts TranscriptStore
	notes       NoteChecker
	logger      *logging.Logger
}

// NewService wires the enqueue-side of the pipeline.
func NewService(queue queueClient, jobs JobRecorder, transcripts TranscriptStore, notes NoteChecker, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		queue:       queue,
		jobs:        jobs,
		transcripts: transcripts,
		notes:       notes,
		logger:      logger,
	}
}

// UploadTranscript stores a dictated transcript and returns its storage key.
func (s *Service) UploadTranscript(ctx context.Context, noteID string, transcript []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe.UploadTranscript")
	defer span.End()
	span.SetAttributes(attribute.String("note.id", noteID))

	key := fmt.Sprintf("transcripts/%s/%s.txt", noteID, uuid.NewString())
	if err := s.transcripts.Put(ctx, key, transcript); err != nil {
		return "", err
	}
	return key, nil
}

// Enqueue records a pending job and hands it to the worker pool. Returns the
// job ID callers poll for completion.
func (s *Service) Enqueue(ctx context.Context, noteID, audioKey string) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe.Enqueue")
	defer span.End()
	span.SetAttributes(attribute.String("note.id", noteID))

	if s.notes != nil {
		ok, err := s.notes.Exists(ctx, noteID)
		if err != nil {
			return "", fmt.Errorf("transcribe: check note: %w", err)
		}
		if !ok {
			return "", fmt.Errorf("note %s: %w", noteID, ErrNoteNotFound)
		}
	}

	jobID := uuid.NewString()
	job := &JobRecord{JobID: jobID, NoteID: noteID, AudioKey: audioKey}
	if err := s.jobs.PutPending(ctx, job); err != nil {
		return "", err
	}

	payload, err := json.Marshal(jobPayload{JobID: jobID, NoteID: noteID, AudioKey: audioKey})
	if err != nil {
		return "", fmt.Errorf("transcribe: marshal payload: %w", err)
	}
	if err := s.queue.Send(ctx, string(payload)); err != nil {
		return "", err
	}

	s.logger.Info("summary job enqueued", "job_id", jobID, "note_id", noteID)
	return jobID, nil
}

// Status returns the job record for polling clients.
func (s *Service) Status(ctx context.Context, jobID string) (*JobRecord, error) {
	return s.jobs.GetJob(ctx, jobID)
}
