package applicationsrv

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/board/job"
	"github.com/Ejeanjules/capstone-project/internal/analysis"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// ============================================================================
// In-memory fakes
// ============================================================================

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[kernel.ApplicationID]*application.Application
	// name/email shown in joined reads, keyed by applicant
	names map[kernel.UserID]string
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:  make(map[kernel.ApplicationID]*application.Application),
		names: make(map[kernel.UserID]string),
	}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *application.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return application.ErrApplicationAlreadyExists()
		}
	}
	clone := *app
	f.apps[app.ID] = &clone
	return nil
}

func (f *fakeApplicationRepo) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.apps[id]; !ok {
		return application.ErrApplicationNotFound()
	}
	clone := *app
	f.apps[id] = &clone
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationRepo) GetWithDetails(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationWithDetails, error) {
	app, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	name := f.names[app.ApplicantID]
	f.mu.Unlock()
	if name == "" {
		name = "Unknown"
	}
	return &application.ApplicationWithDetails{
		Application:    *app,
		ApplicantName:  name,
		ApplicantEmail: kernel.Email(name + "@example.com"),
		JobTitle:       "Backend Developer",
		JobCompany:     "Acme",
	}, nil
}

func (f *fakeApplicationRepo) ListByJobID(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	all, _ := f.ListAllByJobID(ctx, jobID)
	return kernel.NewPaginated(all, pagination, len(all)), nil
}

func (f *fakeApplicationRepo) ListAllByJobID(ctx context.Context, jobID kernel.JobID) ([]application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []application.Application
	for _, app := range f.apps {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByApplicantID(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []application.Application
	for _, app := range f.apps {
		if app.ApplicantID == applicantID {
			out = append(out, *app)
		}
	}
	return kernel.NewPaginated(out, pagination, len(out)), nil
}

func (f *fakeApplicationRepo) ExistsByJobAndApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, app := range f.apps {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) CountByJobID(ctx context.Context, jobID kernel.JobID) (int64, error) {
	all, _ := f.ListAllByJobID(ctx, jobID)
	return int64(len(all)), nil
}

func (f *fakeApplicationRepo) UpdateResume(ctx context.Context, id kernel.ApplicationID, key, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return application.ErrApplicationNotFound()
	}
	app.AttachResume(key, filename)
	return nil
}

func (f *fakeApplicationRepo) SaveAnalysis(ctx context.Context, id kernel.ApplicationID, score float64, data json.RawMessage, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return application.ErrApplicationNotFound()
	}
	app.SetAnalysis(score, data)
	return nil
}

type fakeJobRepo struct {
	jobs map[kernel.JobID]*job.Job
}

func (f *fakeJobRepo) Create(ctx context.Context, j *job.Job) error { return nil }
func (f *fakeJobRepo) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	return nil
}
func (f *fakeJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	clone := *j
	return &clone, nil
}
func (f *fakeJobRepo) Delete(ctx context.Context, id kernel.JobID) error { return nil }
func (f *fakeJobRepo) ListActive(ctx context.Context, filter job.ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return kernel.NewPaginated[job.Job](nil, pagination, 0), nil
}
func (f *fakeJobRepo) ListByPoster(ctx context.Context, posterID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return kernel.NewPaginated[job.Job](nil, pagination, 0), nil
}
func (f *fakeJobRepo) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	_, ok := f.jobs[id]
	return ok, nil
}

type fakeFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: make(map[string][]byte)}
}

func (f *fakeFileSystem) Join(parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

func (f *fakeFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func (f *fakeFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = data
	return nil
}

func (f *fakeFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return f.WriteFile(ctx, path, data)
}

func (f *fakeFileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	data, err := f.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFileSystem) DeleteFile(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	return nil
}

type fakeQueue struct {
	mu      sync.Mutex
	ready   []*application.AnalysisJob
	delayed []*application.AnalysisJob
}

func (q *fakeQueue) Enqueue(ctx context.Context, j *application.AnalysisJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready = append(q.ready, j)
	return nil
}

func (q *fakeQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return nil, nil
	}
	j := q.ready[0]
	q.ready = q.ready[1:]
	return json.Marshal(j)
}

func (q *fakeQueue) EnqueueDelayed(ctx context.Context, j *application.AnalysisJob, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, j)
	return nil
}

func (q *fakeQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.delayed)
	q.ready = append(q.ready, q.delayed...)
	q.delayed = nil
	return n, nil
}

func (q *fakeQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ready)
}

type noopNotifier struct{}

func (noopNotifier) NotifyApplicationReceived(ctx context.Context, event ApplicationEvent) error {
	return nil
}
func (noopNotifier) NotifyStatusChanged(ctx context.Context, event ApplicationEvent) error {
	return nil
}

type recordingNotifier struct {
	received chan ApplicationEvent
}

func (n *recordingNotifier) NotifyApplicationReceived(ctx context.Context, event ApplicationEvent) error {
	n.received <- event
	return nil
}

func (n *recordingNotifier) NotifyStatusChanged(ctx context.Context, event ApplicationEvent) error {
	n.received <- event
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

type fixture struct {
	service *Service
	repo    *fakeApplicationRepo
	jobs    *fakeJobRepo
	files   *fakeFileSystem
	queue   *fakeQueue
	job     *job.Job
	owner   kernel.UserID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	owner := kernel.GenerateUserID()
	j := &job.Job{
		ID:                 kernel.GenerateJobID(),
		Title:              "Backend Developer",
		Company:            "Acme",
		Type:               job.JobTypeFullTime,
		Description:        "Build services",
		RequiredSkills:     []string{"python", "django"},
		RequiredEducation:  []string{"bachelor"},
		RequiredSoftSkills: []string{"communication"},
		MinExperienceYears: 3,
		PostedBy:           owner,
		IsActive:           true,
	}

	repo := newFakeApplicationRepo()
	jobs := &fakeJobRepo{jobs: map[kernel.JobID]*job.Job{j.ID: j}}
	files := newFakeFileSystem()
	queue := &fakeQueue{}

	service := NewService(repo, jobs, files, queue, analysis.NewAnalyzer(), noopNotifier{})

	return &fixture{
		service: service,
		repo:    repo,
		jobs:    jobs,
		files:   files,
		queue:   queue,
		job:     j,
		owner:   owner,
	}
}

const strongResume = `Senior Python Developer
6 years of experience building Django and React applications.
Bachelor of Science in Computer Science.
Strong communication and leadership skills.`

const weakResume = `Junior developer, 1 year of experience with HTML.`

func (f *fixture) apply(t *testing.T, name string, resume string) *application.Application {
	t.Helper()

	applicant := kernel.GenerateUserID()
	f.repo.names[applicant] = name

	req := application.ApplyRequest{Message: "Please consider me"}
	if resume != "" {
		req.ResumeFilename = name + ".txt"
		req.ResumeData = []byte(resume)
	}

	app, err := f.service.Apply(context.Background(), applicant, kernel.NewUsername(name), f.job.ID, req)
	require.NoError(t, err)
	return app
}

// ============================================================================
// Tests
// ============================================================================

func TestApplyStoresResumeAndQueuesAnalysis(t *testing.T) {
	f := newFixture(t)

	app := f.apply(t, "alice", strongResume)

	assert.Equal(t, application.StatusPending, app.Status)
	require.True(t, app.HasResume())
	data, err := f.files.ReadFile(context.Background(), app.ResumeKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(strongResume), data)

	assert.Equal(t, 1, f.queue.size())
}

func TestApplyWithoutResume(t *testing.T) {
	f := newFixture(t)

	app := f.apply(t, "bob", "")

	assert.False(t, app.HasResume())
	assert.Equal(t, 0, f.queue.size(), "no analysis queued without a resume")
}

func TestApplyNotifiesJobOwner(t *testing.T) {
	f := newFixture(t)
	notifier := &recordingNotifier{received: make(chan ApplicationEvent, 1)}
	f.service = NewService(f.repo, f.jobs, f.files, f.queue, analysis.NewAnalyzer(), notifier)

	applicant := kernel.GenerateUserID()
	app, err := f.service.Apply(context.Background(), applicant, kernel.NewUsername("carol"), f.job.ID, application.ApplyRequest{})
	require.NoError(t, err)

	select {
	case event := <-notifier.received:
		assert.Equal(t, f.owner, event.RecipientID)
		assert.Equal(t, applicant, event.SenderID)
		assert.Equal(t, app.ID, event.ApplicationID)
		assert.Equal(t, "carol", event.ApplicantName)
		assert.Equal(t, "Backend Developer", event.JobTitle)
	case <-time.After(time.Second):
		t.Fatal("expected a notification for the job owner")
	}
}

func TestApplyRejectsOwnJob(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Apply(context.Background(), f.owner, "owner", f.job.ID, application.ApplyRequest{})
	assert.Error(t, err)
}

func TestApplyRejectsDuplicate(t *testing.T) {
	f := newFixture(t)

	applicant := kernel.GenerateUserID()
	_, err := f.service.Apply(context.Background(), applicant, "carol", f.job.ID, application.ApplyRequest{})
	require.NoError(t, err)

	_, err = f.service.Apply(context.Background(), applicant, "carol", f.job.ID, application.ApplyRequest{})
	assert.Error(t, err)
}

func TestApplyRejectsInactiveJob(t *testing.T) {
	f := newFixture(t)
	f.job.IsActive = false

	_, err := f.service.Apply(context.Background(), kernel.GenerateUserID(), "dave", f.job.ID, application.ApplyRequest{})
	assert.Error(t, err)
}

func TestApplyRejectsFullJob(t *testing.T) {
	f := newFixture(t)
	f.job.MaxApplicants = 1

	f.apply(t, "erin", "")

	_, err := f.service.Apply(context.Background(), kernel.GenerateUserID(), "frank", f.job.ID, application.ApplyRequest{})
	assert.Error(t, err)
}

func TestApplyRejectsBadUploads(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Apply(context.Background(), kernel.GenerateUserID(), "gina", f.job.ID, application.ApplyRequest{
		ResumeFilename: "malware.exe",
		ResumeData:     []byte("nope"),
	})
	assert.Error(t, err)

	_, err = f.service.Apply(context.Background(), kernel.GenerateUserID(), "hank", f.job.ID, application.ApplyRequest{
		ResumeFilename: "huge.pdf",
		ResumeData:     make([]byte, maxResumeSize+1),
	})
	assert.Error(t, err)
}

func TestUpdateStatusRequiresOwner(t *testing.T) {
	f := newFixture(t)
	app := f.apply(t, "iris", "")

	_, err := f.service.UpdateStatus(context.Background(), app.ApplicantID, app.ID, application.UpdateStatusRequest{
		Status: application.StatusAccepted,
	})
	assert.Error(t, err)

	updated, err := f.service.UpdateStatus(context.Background(), f.owner, app.ID, application.UpdateStatusRequest{
		Status: application.StatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, application.StatusAccepted, updated.Status)
}

func TestUploadResumeReplacesAndRequeues(t *testing.T) {
	f := newFixture(t)
	app := f.apply(t, "jack", strongResume)
	firstKey := app.ResumeKey
	require.Equal(t, 1, f.queue.size())

	updated, err := f.service.UploadResume(context.Background(), app.ApplicantID, app.ID, "updated.txt", []byte(weakResume))
	require.NoError(t, err)

	assert.NotEqual(t, firstKey, updated.ResumeKey)
	assert.False(t, updated.AnalysisDone)
	assert.Equal(t, 2, f.queue.size())

	// Old file is gone, new one is readable
	_, err = f.files.ReadFile(context.Background(), firstKey)
	assert.Error(t, err)
	data, err := f.files.ReadFile(context.Background(), updated.ResumeKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(weakResume), data)
}

func TestDownloadResumeAccess(t *testing.T) {
	f := newFixture(t)
	app := f.apply(t, "kate", strongResume)

	// Applicant and owner can download, strangers cannot
	for _, userID := range []kernel.UserID{app.ApplicantID, f.owner} {
		stream, filename, err := f.service.DownloadResume(context.Background(), userID, app.ID)
		require.NoError(t, err)
		assert.Equal(t, "kate.txt", filename)
		stream.Close()
	}

	_, _, err := f.service.DownloadResume(context.Background(), kernel.GenerateUserID(), app.ID)
	assert.Error(t, err)
}

func TestAnalyzeApplicationPersists(t *testing.T) {
	f := newFixture(t)
	app := f.apply(t, "liam", strongResume)

	resp, err := f.service.AnalyzeApplication(context.Background(), f.owner, app.ID)
	require.NoError(t, err)
	assert.Greater(t, resp.Score, 0.0)
	require.NotNil(t, resp.Analysis)

	stored, err := f.service.GetAnalysis(context.Background(), f.owner, app.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Score, stored.Score)
	assert.Equal(t, resp.Analysis.Summary, stored.Analysis.Summary)
}

func TestAnalyzeApplicationRequiresOwner(t *testing.T) {
	f := newFixture(t)
	app := f.apply(t, "mona", strongResume)

	_, err := f.service.AnalyzeApplication(context.Background(), app.ApplicantID, app.ID)
	assert.Error(t, err)
}

func TestAnalyzeApplicationWithoutResumeFails(t *testing.T) {
	f := newFixture(t)
	app := f.apply(t, "nina", "")

	_, err := f.service.AnalyzeApplication(context.Background(), f.owner, app.ID)
	assert.Error(t, err)
}

func TestAnalyzeJobApplicationsRanksByScore(t *testing.T) {
	f := newFixture(t)
	strong := f.apply(t, "olga", strongResume)
	weak := f.apply(t, "pete", weakResume)
	noResume := f.apply(t, "quinn", "")

	entries, err := f.service.AnalyzeJobApplications(context.Background(), f.owner, f.job.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, string(strong.ID), entries[0].ApplicationID)
	assert.Equal(t, string(weak.ID), entries[1].ApplicationID)
	assert.Equal(t, string(noResume.ID), entries[2].ApplicationID)
	assert.Greater(t, entries[0].Analysis.Score, entries[1].Analysis.Score)
	assert.NotEmpty(t, entries[2].Analysis.Error)

	// Successful analyses were persisted
	stored, err := f.repo.GetByID(context.Background(), strong.ID)
	require.NoError(t, err)
	assert.True(t, stored.AnalysisDone)

	storedNoResume, err := f.repo.GetByID(context.Background(), noResume.ID)
	require.NoError(t, err)
	assert.False(t, storedNoResume.AnalysisDone)
}

type memUpload struct {
	name string
	data []byte
}

func (m memUpload) Name() string { return m.name }
func (m memUpload) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func TestBulkAnalyzeResumesRanksWithoutPersisting(t *testing.T) {
	f := newFixture(t)

	entries, err := f.service.BulkAnalyzeResumes(context.Background(), f.owner, f.job.ID, []analysis.UploadedFile{
		memUpload{name: "weak.txt", data: []byte(weakResume)},
		memUpload{name: "strong.txt", data: []byte(strongResume)},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "strong.txt", entries[0].Filename)
	assert.Equal(t, "weak.txt", entries[1].Filename)
	assert.Empty(t, entries[0].ApplicationID)
}

func TestProcessAnalysisJobPersistsAndRetries(t *testing.T) {
	f := newFixture(t)
	app := f.apply(t, "rita", strongResume)

	payload, err := json.Marshal(&application.AnalysisJob{ApplicationID: app.ID})
	require.NoError(t, err)
	require.NoError(t, f.service.ProcessAnalysisJob(context.Background(), payload))

	stored, err := f.repo.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.True(t, stored.AnalysisDone)

	// A job for a missing application errors without re-queueing
	gone, err := json.Marshal(&application.AnalysisJob{ApplicationID: kernel.GenerateApplicationID()})
	require.NoError(t, err)
	assert.Error(t, f.service.ProcessAnalysisJob(context.Background(), gone))
}
