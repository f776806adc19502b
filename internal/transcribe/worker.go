package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/harborhealth/ehr-platform/internal/observability/metrics"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

const (
	defaultWorkers     = 2
	receiveWaitSeconds = 2
	receiveBatchSize   = 5
	receiveErrorPause  = time.Second
)

// SummaryWriter lands the generated summary on the visit note.
type SummaryWriter interface {
	SetSummary(ctx context.Context, noteID, summary string) error
}

// Worker drains the summary queue: it loads the transcript, runs the
// summarizer, writes the result onto the note, and updates the job record.
type Worker struct {
	queue       queueClient
	jobs        JobUpdater
	transcripts TranscriptStore
	summarizer  Summarizer
	notes       SummaryWriter
	metrics     *metrics.SchedulingMetrics
	logger      *logging.Logger

	workers int
	wg      sync.WaitGroup
}

// NewWorker wires the consume-side of the pipeline. workers <= 0 falls back
// to the default pool size.
func NewWorker(queue queueClient, jobs JobUpdater, transcripts TranscriptStore, summarizer Summarizer, notes SummaryWriter, m *metrics.SchedulingMetrics, logger *logging.Logger, workers int) *Worker {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Worker{
		queue:       queue,
		jobs:        jobs,
		transcripts: transcripts,
		summarizer:  summarizer,
		notes:       notes,
		metrics:     m,
		logger:      logger,
		workers:     workers,
	}
}

// Start launches the worker pool. Workers run until ctx is canceled.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.loop(ctx, id)
		}(i)
	}
}

// Wait blocks until every worker has drained and exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context, id int) {
	w.logger.Info("summary worker started", "worker", id)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("summary worker stopping", "worker", id)
			return
		default:
		}

		messages, err := w.queue.Receive(ctx, receiveBatchSize, receiveWaitSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("queue receive failed", "error", err, "worker", id)
			select {
			case <-ctx.Done():
				return
			case <-time.After(receiveErrorPause):
			}
			continue
		}

		for _, msg := range messages {
			w.handle(ctx, msg)
		}
	}
}

func (w *Worker) handle(ctx context.Context, msg queueMessage) {
	var payload jobPayload
	if err := json.Unmarshal([]byte(msg.Body), &payload); err != nil {
		w.logger.Error("dropping malformed job payload", "error", err, "message_id", msg.ID)
		_ = w.queue.Delete(ctx, msg.ReceiptHandle)
		return
	}

	if err := w.process(ctx, payload); err != nil {
		w.logger.Error("summary job failed", "error", err, "job_id", payload.JobID, "note_id", payload.NoteID)
		if markErr := w.jobs.MarkFailed(ctx, payload.JobID, err.Error()); markErr != nil {
			w.logger.Error("failed to record job failure", "error", markErr, "job_id", payload.JobID)
		}
		w.metrics.ObserveSummary("failed")
	} else {
		w.metrics.ObserveSummary("completed")
	}

	// The job record already carries the outcome; the message never needs a
	// redelivery.
	if err := w.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		w.logger.Error("failed to delete queue message", "error", err, "message_id", msg.ID)
	}
}

func (w *Worker) process(ctx context.Context, payload jobPayload) error {
	transcript, err := w.transcripts.Get(ctx, payload.AudioKey)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}

	summary, err := w.summarizer.Summarize(ctx, string(transcript))
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if err := w.notes.SetSummary(ctx, payload.NoteID, summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := w.jobs.MarkCompleted(ctx, payload.JobID, summary); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	w.logger.Info("summary job completed", "job_id", payload.JobID, "note_id", payload.NoteID)
	return nil
}
