package job

import (
	"context"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// ListFilter narrows public job listings.
type ListFilter struct {
	Type     JobType
	Location string
	Search   string
}

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// Update updates an existing job
	Update(ctx context.Context, id kernel.JobID, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Delete deletes a job by ID
	Delete(ctx context.Context, id kernel.JobID) error

	// ListActive retrieves active jobs with optional filters
	ListActive(ctx context.Context, filter ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListByPoster retrieves jobs posted by a user
	ListByPoster(ctx context.Context, posterID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// Exists checks if a job exists by ID
	Exists(ctx context.Context, id kernel.JobID) (bool, error)
}
