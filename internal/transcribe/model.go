// Package transcribe runs the asynchronous visit-summary pipeline. Dictation
// clients upload a visit transcript to object storage, the API enqueues a
// summarization job, and a worker generates the clinical summary and writes
// it onto the visit note.
package transcribe

import (
	"errors"
	"time"
)

// JobStatus is the lifecycle state of a summarization job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// ErrJobNotFound indicates the requested job ID does not exist.
var ErrJobNotFound = errors.New("transcribe: job not found")

// ErrNoteNotFound indicates a summary was requested for an unknown note.
var ErrNoteNotFound = errors.New("transcribe: note not found")

// jobTTL bounds how long completed job records stay queryable.
const jobTTL = 24 * time.Hour

// JobRecord is the persisted state of a summarization request.
type JobRecord struct {
	JobID        string    `dynamodbav:"jobId" json:"jobId"`
	Status       JobStatus `dynamodbav:"status" json:"status"`
	NoteID       string    `dynamodbav:"noteId" json:"noteId"`
	AudioKey     string    `dynamodbav:"audioKey" json:"audioKey"`
	Summary      string    `dynamodbav:"summary,omitempty" json:"summary,omitempty"`
	ErrorMessage string    `dynamodbav:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt    string    `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    string    `dynamodbav:"updatedAt" json:"updatedAt"`
	ExpiresAt    int64     `dynamodbav:"expiresAt,omitempty" json:"-"`
}

// jobPayload is the queue message body.
type jobPayload struct {
	JobID    string `json:"jobId"`
	NoteID   string `json:"noteId"`
	AudioKey string `json:"audioKey"`
}
