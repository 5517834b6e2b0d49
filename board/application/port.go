package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

type Repository interface {
	// Create creates a new application
	Create(ctx context.Context, application *Application) error

	// Update updates an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// GetWithDetails retrieves an application with applicant and job details
	GetWithDetails(ctx context.Context, id kernel.ApplicationID) (*ApplicationWithDetails, error)

	// ListByJobID retrieves applications for a specific job
	ListByJobID(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ListAllByJobID retrieves every application for a job, unpaginated, for batch analysis
	ListAllByJobID(ctx context.Context, jobID kernel.JobID) ([]Application, error)

	// ListByApplicantID retrieves applications submitted by a user
	ListByApplicantID(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ExistsByJobAndApplicant checks for a duplicate application
	ExistsByJobAndApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error)

	// CountByJobID counts applications for a specific job
	CountByJobID(ctx context.Context, jobID kernel.JobID) (int64, error)

	// UpdateResume updates the stored resume reference and clears analysis state
	UpdateResume(ctx context.Context, id kernel.ApplicationID, key, filename string) error

	// SaveAnalysis stores an analysis outcome
	SaveAnalysis(ctx context.Context, id kernel.ApplicationID, score float64, data json.RawMessage, at time.Time) error
}

// AnalysisQueue carries analysis work to background workers.
type AnalysisQueue interface {
	// Enqueue adds an analysis job to the queue
	Enqueue(ctx context.Context, job *AnalysisJob) error

	// Dequeue gets a job from the queue, blocking up to timeout; returns nil
	// bytes when no job is available
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job for later processing (for retries)
	EnqueueDelayed(ctx context.Context, job *AnalysisJob, delay time.Duration) error

	// MoveDelayedToReady moves due delayed jobs to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}

// AnalysisJob is the queue payload for one asynchronous analysis.
type AnalysisJob struct {
	ApplicationID kernel.ApplicationID `json:"application_id"`
	Attempts      int                  `json:"attempts"`
	EnqueuedAt    time.Time            `json:"enqueued_at"`
}
