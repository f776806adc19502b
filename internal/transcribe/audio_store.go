package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/harborhealth/ehr-platform/pkg/logging"
)

// S3API is the subset of the S3 client used by AudioStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// TranscriptStore reads and writes visit transcripts keyed by audio key.
type TranscriptStore interface {
	Put(ctx context.Context, key string, transcript []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// AudioStore keeps dictated visit transcripts in S3. Keys are written by the
// dictation upload path and consumed by the summary worker.
type AudioStore struct {
	bucket   string
	s3Client S3API
	logger   *logging.Logger
}

var _ TranscriptStore = (*AudioStore)(nil)

// NewAudioStore creates an AudioStore.
func NewAudioStore(s3Client S3API, bucket string, logger *logging.Logger) *AudioStore {
	if s3Client == nil {
		panic("transcribe: s3 client cannot be nil")
	}
	if bucket == "" {
		panic("transcribe: bucket cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AudioStore{bucket: bucket, s3Client: s3Client, logger: logger}
}

// Put uploads a transcript.
func (s *AudioStore) Put(ctx context.Context, key string, transcript []byte) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(transcript),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("transcribe: s3 put %s: %w", key, err)
	}
	s.logger.Info("transcript stored", "key", key, "bytes", len(transcript))
	return nil
}

// Get downloads a transcript.
func (s *AudioStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe: s3 get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("transcribe: s3 read %s: %w", key, err)
	}
	return data, nil
}

// MemoryTranscriptStore is a map-backed TranscriptStore for development and
// tests.
type MemoryTranscriptStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryTranscriptStore creates an empty in-memory transcript store.
func NewMemoryTranscriptStore() *MemoryTranscriptStore {
	return &MemoryTranscriptStore{data: make(map[string][]byte)}
}

func (s *MemoryTranscriptStore) Put(ctx context.Context, key string, transcript []byte) error {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), transcript...)
	s.mu.Unlock()
	return nil
}

func (s *MemoryTranscriptStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("transcribe: transcript %s not found", key)
	}
	return append([]byte(nil), data...), nil
}
