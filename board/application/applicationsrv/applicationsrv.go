package applicationsrv

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/board/job"
	"github.com/Ejeanjules/capstone-project/internal/analysis"
	"github.com/Ejeanjules/capstone-project/internal/extract"
	"github.com/Ejeanjules/capstone-project/pkg/fsx"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

// maxResumeSize caps resume uploads at 10 MB.
const maxResumeSize = 10 << 20

// ApplicationEvent carries what a notification about an application needs.
type ApplicationEvent struct {
	RecipientID   kernel.UserID
	SenderID      kernel.UserID
	JobID         kernel.JobID
	ApplicationID kernel.ApplicationID
	JobTitle      string
	JobCompany    string
	ApplicantName string
	Status        application.Status
}

// Notifier publishes in-app notifications. Implementations must not block
// the request path for long.
type Notifier interface {
	NotifyApplicationReceived(ctx context.Context, event ApplicationEvent) error
	NotifyStatusChanged(ctx context.Context, event ApplicationEvent) error
}

// Service implements application business logic
type Service struct {
	repo     application.Repository
	jobs     job.Repository
	files    fsx.FileSystem
	queue    application.AnalysisQueue
	analyzer *analysis.Analyzer
	notifier Notifier
}

// NewService creates a new application service
func NewService(
	repo application.Repository,
	jobs job.Repository,
	files fsx.FileSystem,
	queue application.AnalysisQueue,
	analyzer *analysis.Analyzer,
	notifier Notifier,
) *Service {
	return &Service{
		repo:     repo,
		jobs:     jobs,
		files:    files,
		queue:    queue,
		analyzer: analyzer,
		notifier: notifier,
	}
}

// CountByJobID exposes the applicant count for the job domain.
func (s *Service) CountByJobID(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return s.repo.CountByJobID(ctx, jobID)
}

// Apply submits an application to a job, optionally with a resume upload.
// A successfully stored resume is queued for analysis in the background.
func (s *Service) Apply(ctx context.Context, applicantID kernel.UserID, applicantName kernel.Username, jobID kernel.JobID, req application.ApplyRequest) (*application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if j.IsOwnedBy(applicantID) {
		return nil, application.ErrCannotApplyOwnJob()
	}

	count, err := s.repo.CountByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.IsAcceptingApplications(count) {
		return nil, application.ErrJobNotAccepting()
	}

	exists, err := s.repo.ExistsByJobAndApplicant(ctx, jobID, applicantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, application.ErrApplicationAlreadyExists()
	}

	now := time.Now()
	app := &application.Application{
		ID:          kernel.GenerateApplicationID(),
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      application.StatusPending,
		Message:     strings.TrimSpace(req.Message),
		AppliedAt:   now,
		UpdatedAt:   now,
	}

	if len(req.ResumeData) > 0 {
		if err := validateResumeUpload(req.ResumeFilename, len(req.ResumeData)); err != nil {
			return nil, err
		}

		key := s.resumeKey(applicantID, jobID, req.ResumeFilename)
		if err := s.files.WriteFile(ctx, key, req.ResumeData); err != nil {
			return nil, application.ErrStorageError(err)
		}
		app.AttachResume(key, req.ResumeFilename)
	}

	if err := s.repo.Create(ctx, app); err != nil {
		if app.HasResume() {
			if delErr := s.files.DeleteFile(ctx, app.ResumeKey); delErr != nil {
				logx.Warnf("orphaned resume %s after failed application create: %v", app.ResumeKey, delErr)
			}
		}
		return nil, err
	}

	if app.HasResume() {
		s.enqueueAnalysis(ctx, app.ID)
	}

	event := ApplicationEvent{
		RecipientID:   j.PostedBy,
		SenderID:      applicantID,
		JobID:         j.ID,
		ApplicationID: app.ID,
		JobTitle:      j.Title,
		JobCompany:    j.Company,
		ApplicantName: applicantName.String(),
	}
	s.notifyAsync(func(ctx context.Context) error {
		return s.notifier.NotifyApplicationReceived(ctx, event)
	})

	return app, nil
}

// MyApplications lists the caller's applications
func (s *Service) MyApplications(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return s.repo.ListByApplicantID(ctx, applicantID, pagination.Normalize())
}

// JobApplications lists applications for a job the caller posted
func (s *Service) JobApplications(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.IsOwnedBy(userID) {
		return nil, application.ErrInsufficientPermissions()
	}

	return s.repo.ListByJobID(ctx, jobID, pagination.Normalize())
}

// GetApplication returns one application with details, visible to the
// applicant and the job owner
func (s *Service) GetApplication(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID) (*application.ApplicationWithDetails, error) {
	details, err := s.repo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, userID, &details.Application); err != nil {
		return nil, err
	}

	return details, nil
}

// UpdateStatus moves an application through review, notifying the applicant
func (s *Service) UpdateStatus(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !j.IsOwnedBy(userID) {
		return nil, application.ErrInsufficientPermissions()
	}

	if err := app.UpdateStatus(req.Status); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, app); err != nil {
		return nil, err
	}

	event := ApplicationEvent{
		RecipientID:   app.ApplicantID,
		SenderID:      userID,
		JobID:         j.ID,
		ApplicationID: app.ID,
		JobTitle:      j.Title,
		JobCompany:    j.Company,
		Status:        app.Status,
	}
	s.notifyAsync(func(ctx context.Context) error {
		return s.notifier.NotifyStatusChanged(ctx, event)
	})

	return app, nil
}

// UploadResume attaches or replaces the resume on the caller's application.
// Replacing invalidates any stored analysis and queues a fresh one.
func (s *Service) UploadResume(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID, filename string, data []byte) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != userID {
		return nil, application.ErrInsufficientPermissions()
	}

	if err := validateResumeUpload(filename, len(data)); err != nil {
		return nil, err
	}

	key := s.resumeKey(userID, app.JobID, filename)
	if err := s.files.WriteFile(ctx, key, data); err != nil {
		return nil, application.ErrStorageError(err)
	}

	oldKey := app.ResumeKey
	if err := s.repo.UpdateResume(ctx, id, key, filename); err != nil {
		return nil, err
	}
	app.AttachResume(key, filename)

	if oldKey != "" && oldKey != key {
		if err := s.files.DeleteFile(ctx, oldKey); err != nil {
			logx.Warnf("could not delete replaced resume %s: %v", oldKey, err)
		}
	}

	s.enqueueAnalysis(ctx, app.ID)

	return app, nil
}

// DownloadResume streams the stored resume, visible to the applicant and the
// job owner
func (s *Service) DownloadResume(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID) (io.ReadCloser, string, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if err := s.authorize(ctx, userID, app); err != nil {
		return nil, "", err
	}

	if !app.HasResume() {
		return nil, "", application.ErrResumeNotFound()
	}

	stream, err := s.files.ReadFileStream(ctx, app.ResumeKey)
	if err != nil {
		return nil, "", application.ErrStorageError(err)
	}

	return stream, app.ResumeFilename, nil
}

// authorize permits the applicant and the job owner
func (s *Service) authorize(ctx context.Context, userID kernel.UserID, app *application.Application) error {
	if app.ApplicantID == userID {
		return nil
	}

	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if !j.IsOwnedBy(userID) {
		return application.ErrInsufficientPermissions()
	}

	return nil
}

// resumeKey builds a per-applicant storage key that never collides across
// re-uploads
func (s *Service) resumeKey(applicantID kernel.UserID, jobID kernel.JobID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s_%s%s", jobID, uuid.NewString(), ext)
	return s.files.Join("resumes", string(applicantID), name)
}

// enqueueAnalysis queues a background analysis, logging but not failing the
// caller when the queue is unavailable
func (s *Service) enqueueAnalysis(ctx context.Context, id kernel.ApplicationID) {
	analysisJob := &application.AnalysisJob{
		ApplicationID: id,
		Attempts:      0,
		EnqueuedAt:    time.Now(),
	}
	if err := s.queue.Enqueue(ctx, analysisJob); err != nil {
		logx.Errorf("could not enqueue analysis for application %s: %v", id, err)
	}
}

// notifyAsync delivers a notification off the request path
func (s *Service) notifyAsync(fn func(ctx context.Context) error) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			logx.Warnf("notification delivery failed: %v", err)
		}
	}()
}

func validateResumeUpload(filename string, size int) error {
	if size > maxResumeSize {
		return application.ErrFileSizeTooLarge().WithDetail("max_bytes", maxResumeSize)
	}
	if extract.DetectFormat(filename) == extract.FormatUnknown {
		return application.ErrInvalidFileType().WithDetail("filename", filename)
	}
	return nil
}
