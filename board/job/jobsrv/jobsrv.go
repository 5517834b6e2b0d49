package jobsrv

import (
	"context"

	"github.com/Ejeanjules/capstone-project/board/job"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

// ApplicationCounter reports how many applications a job has received. The
// application domain provides the implementation.
type ApplicationCounter interface {
	CountByJobID(ctx context.Context, jobID kernel.JobID) (int64, error)
}

// Service implements job management use cases
type Service struct {
	repo     job.Repository
	appCount ApplicationCounter
}

// NewService creates a new job service
func NewService(repo job.Repository, appCount ApplicationCounter) *Service {
	return &Service{
		repo:     repo,
		appCount: appCount,
	}
}

// CreateJob validates and stores a new posting
func (s *Service) CreateJob(ctx context.Context, userID kernel.UserID, req job.CreateJobRequest) (*job.Job, error) {
	entity := req.ToEntity(userID)
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	logx.Infof("job %s created by user %s", entity.ID, userID)
	return entity, nil
}

// GetJob retrieves a job together with its applicant headroom
func (s *Service) GetJob(ctx context.Context, id kernel.JobID) (*job.JobResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.appCount.CountByJobID(ctx, id)
	if err != nil {
		return nil, err
	}

	return job.NewJobResponse(entity, count), nil
}

// UpdateJob applies a partial update; only the owner may update
func (s *Service) UpdateJob(ctx context.Context, userID kernel.UserID, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.IsOwnedBy(userID) {
		return nil, job.ErrNotJobOwner().WithDetail("job_id", id)
	}

	req.ApplyTo(entity)
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// DeleteJob removes a posting; only the owner may delete
func (s *Service) DeleteJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !entity.IsOwnedBy(userID) {
		return job.ErrNotJobOwner().WithDetail("job_id", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logx.Infof("job %s deleted by user %s", id, userID)
	return nil
}

// DeactivateJob closes a posting for new applications
func (s *Service) DeactivateJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) (*job.Job, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.IsOwnedBy(userID) {
		return nil, job.ErrNotJobOwner().WithDetail("job_id", id)
	}

	if err := entity.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// ListPublicJobs lists active jobs with filters
func (s *Service) ListPublicJobs(ctx context.Context, filter job.ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return s.repo.ListActive(ctx, filter, pagination.Normalize())
}

// ListMyJobs lists the current user's postings
func (s *Service) ListMyJobs(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return s.repo.ListByPoster(ctx, userID, pagination.Normalize())
}
