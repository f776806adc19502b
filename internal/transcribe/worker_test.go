package transcribe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/ehr-platform/internal/notes"
	"github.com/harborhealth/ehr-platform/pkg/logging"
)

type fakeSummarizer struct {
	err error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "Summary: " + strings.Split(transcript, "\n")[0], nil
}

type pipelineFixture struct {
	service *Service
	worker  *Worker
	jobs    *MemoryJobStore
	notes   *notes.InMemoryRepository
}

func newPipeline(t *testing.T, summarizer Summarizer) *pipelineFixture {
	t.Helper()

	queue := NewMemoryQueue(16)
	jobs := NewMemoryJobStore()
	transcripts := NewMemoryTranscriptStore()
	noteRepo := notes.NewInMemoryRepository()
	logger := logging.New("error")

	service := NewService(queue, jobs, transcripts, notes.ExistenceChecker{Repo: noteRepo}, logger)
	worker := NewWorker(queue, jobs, transcripts, summarizer, noteRepo, nil, logger, 1)

	return &pipelineFixture{service: service, worker: worker, jobs: jobs, notes: noteRepo}
}

func waitForStatus(t *testing.T, jobs *MemoryJobStore, jobID string, want JobStatus) *JobRecord {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := jobs.GetJob(context.Background(), jobID)
		require.NoError(t, err)
		if job.Status == want {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", jobID, want)
	return nil
}

func TestPipelineWritesSummaryOntoNote(t *testing.T) {
	f := newPipeline(t, &fakeSummarizer{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	note, err := f.notes.Create(ctx, &notes.CreateRequest{
		AppointmentID: "appt-1",
		AuthorID:      "prov-1",
		Body:          "Visit note.",
	})
	require.NoError(t, err)

	key, err := f.service.UploadTranscript(ctx, note.ID, []byte("Patient reports mild chest tightness on exertion.\nDenies fever."))
	require.NoError(t, err)

	jobID, err := f.service.Enqueue(ctx, note.ID, key)
	require.NoError(t, err)

	f.worker.Start(ctx)
	job := waitForStatus(t, f.jobs, jobID, JobStatusCompleted)
	cancel()
	f.worker.Wait()

	assert.Contains(t, job.Summary, "chest tightness")

	got, err := f.notes.GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Summary, got.Summary)
}

func TestPipelineMarksJobFailed(t *testing.T) {
	f := newPipeline(t, &fakeSummarizer{err: errors.New("model unavailable")})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	note, err := f.notes.Create(ctx, &notes.CreateRequest{
		AppointmentID: "appt-1",
		AuthorID:      "prov-1",
		Body:          "Visit note.",
	})
	require.NoError(t, err)

	key, err := f.service.UploadTranscript(ctx, note.ID, []byte("transcript"))
	require.NoError(t, err)

	jobID, err := f.service.Enqueue(ctx, note.ID, key)
	require.NoError(t, err)

	f.worker.Start(ctx)
	job := waitForStatus(t, f.jobs, jobID, JobStatusFailed)
	cancel()
	f.worker.Wait()

	assert.Contains(t, job.ErrorMessage, "model unavailable")

	got, err := f.notes.GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Summary)
}

func TestEnqueueRejectsUnknownNote(t *testing.T) {
	f := newPipeline(t, &fakeSummarizer{})

	_, err := f.service.Enqueue(context.Background(), "missing", "transcripts/missing.txt")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestMemoryQueueRoundTrip(t *testing.T) {
	queue := NewMemoryQueue(4)
	ctx := context.Background()

	require.NoError(t, queue.Send(ctx, "one"))
	require.NoError(t, queue.Send(ctx, "two"))

	messages, err := queue.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Body)
	assert.Equal(t, "two", messages[1].Body)
}

func TestMemoryQueueReceiveTimesOut(t *testing.T) {
	queue := NewMemoryQueue(4)

	start := time.Now()
	messages, err := queue.Receive(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Nil(t, messages)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}
