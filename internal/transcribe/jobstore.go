package transcribe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// JobRecorder covers the API-side job operations.
type JobRecorder interface {
	PutPending(ctx context.Context, job *JobRecord) error
	GetJob(ctx context.Context, jobID string) (*JobRecord, error)
}

// JobUpdater covers the worker-side job operations.
type JobUpdater interface {
	MarkCompleted(ctx context.Context, jobID, summary string) error
	MarkFailed(ctx context.Context, jobID, errMsg string) error
}

// JobStore persists job records to DynamoDB.
type JobStore struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

var _ JobRecorder = (*JobStore)(nil)
var _ JobUpdater = (*JobStore)(nil)

// NewJobStore builds a store backed by the provided DynamoDB client.
func NewJobStore(client dynamoAPI, tableName string, logger *logging.Logger) *JobStore {
	if client == nil {
		panic("transcribe: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("transcribe: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &JobStore{client: client, tableName: tableName, logger: logger}
}

// PutPending inserts a new pending job record.
func (s *JobStore) PutPending(ctx context.Context, job *JobRecord) error {
	if job == nil {
		return errors.New("transcribe: job cannot be nil")
	}
	now := time.Now().UTC()
	job.Status = JobStatusPending
	job.CreatedAt = now.Format(time.RFC3339Nano)
	job.UpdatedAt = job.CreatedAt
	if job.ExpiresAt == 0 {
		job.ExpiresAt = now.Add(jobTTL).Unix()
	}

	item, err := attributevalue.MarshalMap(job)
	if err != nil {
		return fmt.Errorf("transcribe: marshal job: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(jobId)"),
	})
	if err != nil {
		return fmt.Errorf("transcribe: persist job: %w", err)
	}
	return nil
}

// MarkCompleted records the generated summary on the job.
func (s *JobStore) MarkCompleted(ctx context.Context, jobID, summary string) error {
	if jobID == "" {
		return errors.New("transcribe: jobID required")
	}
	return s.updateJob(ctx, jobID,
		map[string]types.AttributeValue{
			":status":  &types.AttributeValueMemberS{Value: string(JobStatusCompleted)},
			":summary": &types.AttributeValueMemberS{Value: summary},
			":error":   &types.AttributeValueMemberS{Value: ""},
			":updated": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		map[string]string{
			"#status":  "status",
			"#summary": "summary",
			"#error":   "errorMessage",
			"#updated": "updatedAt",
		},
		"SET #status = :status, #summary = :summary, #error = :error, #updated = :updated",
	)
}

// MarkFailed moves the job to the failed state.
func (s *JobStore) MarkFailed(ctx context.Context, jobID, errMsg string) error {
	if jobID == "" {
		return errors.New("transcribe: jobID required")
	}
	return s.updateJob(ctx, jobID,
		map[string]types.AttributeValue{
			":status":  &types.AttributeValueMemberS{Value: string(JobStatusFailed)},
			":error":   &types.AttributeValueMemberS{Value: errMsg},
			":updated": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		map[string]string{
			"#status":  "status",
			"#error":   "errorMessage",
			"#updated": "updatedAt",
		},
		"SET #status = :status, #error = :error, #updated = :updated",
	)
}

// GetJob fetches a job by ID.
func (s *JobStore) GetJob(ctx context.Context, jobID string) (*JobRecord, error) {
	if jobID == "" {
		return nil, errors.New("transcribe: jobID required")
	}
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"jobId": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe: fetch job: %w", err)
	}
	if out.Item == nil {
		return nil, ErrJobNotFound
	}

	var job JobRecord
	if err := attributevalue.UnmarshalMap(out.Item, &job); err != nil {
		return nil, fmt.Errorf("transcribe: decode job: %w", err)
	}
	return &job, nil
}

func (s *JobStore) updateJob(ctx context.Context, jobID string, values map[string]types.AttributeValue, names map[string]string, expression string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"jobId": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression:          aws.String(expression),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("transcribe: update job %s: %w", jobID, err)
	}
	return nil
}

// MemoryJobStore keeps job records in memory. Used with the memory queue in
// development and tests.
type MemoryJobStore struct {
	mu   sync.RWMutex
	rows map[string]JobRecord
}

var _ JobRecorder = (*MemoryJobStore)(nil)
var _ JobUpdater = (*MemoryJobStore)(nil)

// NewMemoryJobStore creates an empty in-memory job store.
func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{rows: make(map[string]JobRecord)}
}

func (s *MemoryJobStore) PutPending(ctx context.Context, job *JobRecord) error {
	if job == nil {
		return errors.New("transcribe: job cannot be nil")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	job.Status = JobStatusPending
	job.CreatedAt = now
	job.UpdatedAt = now

	s.mu.Lock()
	s.rows[job.JobID] = *job
	s.mu.Unlock()
	return nil
}

func (s *MemoryJobStore) GetJob(ctx context.Context, jobID string) (*JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.rows[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

func (s *MemoryJobStore) MarkCompleted(ctx context.Context, jobID, summary string) error {
	return s.update(jobID, func(job *JobRecord) {
		job.Status = JobStatusCompleted
		job.Summary = summary
		job.ErrorMessage = ""
	})
}

func (s *MemoryJobStore) MarkFailed(ctx context.Context, jobID, errMsg string) error {
	return s.update(jobID, func(job *JobRecord) {
		job.Status = JobStatusFailed
		job.ErrorMessage = errMsg
	})
}

func (s *MemoryJobStore) update(jobID string, apply func(*JobRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.rows[jobID]
	if !ok {
		return ErrJobNotFound
	}
	apply(&job)
	job.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	s.rows[jobID] = job
	return nil
}
