package applicationsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/board/job"
	"github.com/Ejeanjules/capstone-project/internal/analysis"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

const (
	// maxConcurrentAnalyses bounds the fan-out when analyzing a whole job's
	// applications in one request.
	maxConcurrentAnalyses = 4

	// maxAnalysisAttempts is how many times a queued analysis is retried
	// before being dropped.
	maxAnalysisAttempts = 3

	analysisRetryDelay = 30 * time.Second
)

// AnalyzeApplication runs the match engine synchronously for one application
// and persists the outcome. Only the job owner may trigger it.
func (s *Service) AnalyzeApplication(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID) (*application.AnalysisResponse, error) {
	details, err := s.repo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	j, err := s.jobs.GetByID(ctx, details.JobID)
	if err != nil {
		return nil, err
	}
	if !j.IsOwnedBy(userID) {
		return nil, application.ErrInsufficientPermissions()
	}

	result, err := s.analyzeAndPersist(ctx, details, j)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, application.ErrAnalysisFailed().WithDetail("reason", result.Error)
	}

	return &application.AnalysisResponse{
		ApplicationID: id,
		Score:         result.Score,
		Analysis:      result.Analysis,
		AnalyzedAt:    time.Now(),
	}, nil
}

// AnalyzeJobApplications analyzes every application of a job and returns the
// entries ranked by score, highest first. Successful analyses are persisted;
// a failing entry carries its error and ranks at the bottom.
func (s *Service) AnalyzeJobApplications(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) ([]application.RankedEntry, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.IsOwnedBy(userID) {
		return nil, application.ErrInsufficientPermissions()
	}

	apps, err := s.repo.ListAllByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	entries := make([]application.RankedEntry, len(apps))
	sem := make(chan struct{}, maxConcurrentAnalyses)
	var wg sync.WaitGroup

	for i := range apps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			entries[i] = s.analyzeOne(ctx, apps[i].ID, j)
		}(i)
	}
	wg.Wait()

	sortRanked(entries)
	return entries, nil
}

// BulkAnalyzeResumes scores uploaded resume files against a job without
// creating applications. Nothing is persisted.
func (s *Service) BulkAnalyzeResumes(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, files []analysis.UploadedFile) ([]application.RankedEntry, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.IsOwnedBy(userID) {
		return nil, application.ErrInsufficientPermissions()
	}

	entries := make([]application.RankedEntry, len(files))
	sem := make(chan struct{}, maxConcurrentAnalyses)
	var wg sync.WaitGroup

	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			entries[i] = application.RankedEntry{
				Filename: files[i].Name(),
				Analysis: s.analyzer.AnalyzeFile(files[i], jobFields(j)),
			}
		}(i)
	}
	wg.Wait()

	sortRanked(entries)
	return entries, nil
}

// GetAnalysis returns the stored analysis for an application
func (s *Service) GetAnalysis(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID) (*application.AnalysisResponse, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, userID, app); err != nil {
		return nil, err
	}

	if !app.AnalysisDone || app.AnalysisScore == nil || app.AnalysisAt == nil {
		return nil, application.ErrAnalysisNotFound()
	}

	var stored analysis.Analysis
	if err := json.Unmarshal(app.AnalysisData, &stored); err != nil {
		return nil, fmt.Errorf("corrupt stored analysis for application %s: %w", id, err)
	}

	return &application.AnalysisResponse{
		ApplicationID: id,
		Score:         *app.AnalysisScore,
		Analysis:      &stored,
		AnalyzedAt:    *app.AnalysisAt,
	}, nil
}

// ProcessAnalysisJob handles one queue payload. Transient failures are
// re-queued with backoff up to maxAnalysisAttempts.
func (s *Service) ProcessAnalysisJob(ctx context.Context, payload []byte) error {
	var queued application.AnalysisJob
	if err := json.Unmarshal(payload, &queued); err != nil {
		return fmt.Errorf("unmarshal analysis job: %w", err)
	}

	details, err := s.repo.GetWithDetails(ctx, queued.ApplicationID)
	if err != nil {
		// The application may have been withdrawn since enqueueing.
		return fmt.Errorf("load application %s: %w", queued.ApplicationID, err)
	}

	j, err := s.jobs.GetByID(ctx, details.JobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", details.JobID, err)
	}

	if _, err := s.analyzeAndPersist(ctx, details, j); err != nil {
		queued.Attempts++
		if queued.Attempts < maxAnalysisAttempts {
			delay := analysisRetryDelay * time.Duration(queued.Attempts)
			if qErr := s.queue.EnqueueDelayed(ctx, &queued, delay); qErr != nil {
				logx.Errorf("could not re-queue analysis for application %s: %v", queued.ApplicationID, qErr)
			}
			return fmt.Errorf("analysis attempt %d for application %s: %w", queued.Attempts, queued.ApplicationID, err)
		}
		return fmt.Errorf("analysis for application %s gave up after %d attempts: %w", queued.ApplicationID, queued.Attempts, err)
	}

	return nil
}

// analyzeOne produces a ranked entry for one application, persisting on
// success. Engine-level failures land in the entry, not in an error.
func (s *Service) analyzeOne(ctx context.Context, id kernel.ApplicationID, j *job.Job) application.RankedEntry {
	details, err := s.repo.GetWithDetails(ctx, id)
	if err != nil {
		return application.RankedEntry{
			ApplicationID: string(id),
			Analysis:      analysis.Result{Error: fmt.Sprintf("Could not load application: %v", err)},
		}
	}

	entry := application.RankedEntry{
		ApplicationID:  string(id),
		Filename:       details.ResumeFilename,
		ApplicantName:  details.ApplicantName,
		ApplicantEmail: string(details.ApplicantEmail),
	}
	appliedAt := details.AppliedAt
	entry.AppliedAt = &appliedAt

	result, err := s.analyzeAndPersist(ctx, details, j)
	if err != nil {
		entry.Analysis = analysis.Result{Error: err.Error()}
		return entry
	}

	entry.Analysis = result
	return entry
}

// analyzeAndPersist runs the engine on a loaded application and stores the
// outcome when it succeeds. An engine error Result is returned without error
// and without persisting.
func (s *Service) analyzeAndPersist(ctx context.Context, details *application.ApplicationWithDetails, j *job.Job) (analysis.Result, error) {
	input := analysis.ApplicationInput{
		ApplicationID:  string(details.ID),
		ApplicantName:  details.ApplicantName,
		ApplicantEmail: string(details.ApplicantEmail),
		AppliedAt:      details.AppliedAt,
		ResumeFilename: details.ResumeFilename,
		Job:            jobFields(j),
	}

	if details.HasResume() {
		data, err := s.files.ReadFile(ctx, details.ResumeKey)
		if err != nil {
			return analysis.Result{}, application.ErrStorageError(err)
		}
		input.ResumeData = data
	}

	result := s.analyzer.Analyze(input)
	if !result.OK() {
		return result, nil
	}

	data, err := json.Marshal(result.Analysis)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("marshal analysis for application %s: %w", details.ID, err)
	}

	if err := s.repo.SaveAnalysis(ctx, details.ID, result.Score, data, time.Now()); err != nil {
		return analysis.Result{}, err
	}

	return result, nil
}

// sortRanked orders entries by score descending; error entries score 0 and
// sink to the bottom. Ties keep input order.
func sortRanked(entries []application.RankedEntry) {
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Analysis.Score > entries[b].Analysis.Score
	})
}

func jobFields(j *job.Job) analysis.JobFields {
	return analysis.JobFields{
		Description:        j.Description,
		Requirements:       j.Requirements,
		RequiredSkills:     j.RequiredSkills,
		RequiredEducation:  j.RequiredEducation,
		RequiredSoftSkills: j.RequiredSoftSkills,
		MinExperienceYears: j.MinExperienceYears,
	}
}
