// Package jobs defines the asynchronous extraction job model and the queue
// abstractions the API uses to run extractions in the background.
package jobs

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/pennywise/internal/domain"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
	// JobStatusRetrying indicates the job failed and is being retried.
	JobStatusRetrying JobStatus = "retrying"
)

// ExtractionJob represents one queued message extraction. The job carries
// its own reference date and base currency so results do not depend on when
// a worker happens to pick it up.
type ExtractionJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Message is the free-text message to extract from.
	Message string `json:"message"`

	// ReferenceDate anchors relative-date resolution.
	ReferenceDate civil.Date `json:"reference_date"`

	// BaseCurrency anchors currency normalization.
	BaseCurrency string `json:"base_currency"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// Result holds the extraction outcome once the job completed.
	Result *domain.ExtractionResult `json:"result,omitempty"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// RetryCount is the number of times this job has been retried.
	RetryCount int `json:"retry_count"`

	// MaxRetries is the maximum number of retries allowed.
	MaxRetries int `json:"max_retries"`
}

// Publisher defines the interface for publishing jobs to a queue.
// This abstraction allows for different queue implementations.
type Publisher interface {
	// PublishExtraction publishes a message extraction job.
	PublishExtraction(ctx context.Context, job *ExtractionJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. It should return an error if the job failed
// and should be retried.
type JobHandler func(ctx context.Context, job *ExtractionJob) error

// JobStore defines the interface for storing and retrieving job status.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *ExtractionJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*ExtractionJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*ExtractionJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}
