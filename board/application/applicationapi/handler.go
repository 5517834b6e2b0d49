package applicationapi

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/board/application/applicationsrv"
	"github.com/Ejeanjules/capstone-project/internal/analysis"
	"github.com/Ejeanjules/capstone-project/pkg/iam/auth"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.Service
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply submits an application to a job. The body is a multipart form with
// an optional "message" field and an optional "resume" file.
// POST /api/v1/jobs/:jobID/apply
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("jobID"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	req := application.ApplyRequest{
		Message: c.FormValue("message"),
	}

	if fileHeader, err := c.FormFile("resume"); err == nil && fileHeader != nil {
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			return application.ErrInvalidRequest().WithDetail("resume", err.Error())
		}
		req.ResumeFilename = fileHeader.Filename
		req.ResumeData = data
	}

	app, err := h.service.Apply(c.Context(), authContext.UserID, authContext.Username, jobID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// MyApplications lists the caller's applications
// GET /api/v1/applications/my-applications
func (h *Handlers) MyApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	apps, err := h.service.MyApplications(c.Context(), authContext.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// JobApplications lists applications for a job the caller posted
// GET /api/v1/jobs/:jobID/applications
func (h *Handlers) JobApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("jobID"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	apps, err := h.service.JobApplications(c.Context(), authContext.UserID, jobID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// GetApplication returns one application with details
// GET /api/v1/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	id := kernel.ApplicationID(c.Params("id"))
	if id.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	details, err := h.service.GetApplication(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(details)
}

// UpdateStatus changes an application's review state
// PUT /api/v1/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	id := kernel.ApplicationID(c.Params("id"))
	if id.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.UpdateStatus(c.Context(), authContext.UserID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// UploadResume attaches or replaces the resume on an application
// POST /api/v1/applications/:id/resume
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	id := kernel.ApplicationID(c.Params("id"))
	if id.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("resume", "missing file field")
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("resume", err.Error())
	}

	app, err := h.service.UploadResume(c.Context(), authContext.UserID, id, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// DownloadResume streams the stored resume file
// GET /api/v1/applications/:id/resume
func (h *Handlers) DownloadResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	id := kernel.ApplicationID(c.Params("id"))
	if id.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	stream, filename, err := h.service.DownloadResume(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/octet-stream")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendStream(stream)
}

// AnalyzeApplication scores one application synchronously
// POST /api/v1/applications/:id/analyze
func (h *Handlers) AnalyzeApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	id := kernel.ApplicationID(c.Params("id"))
	if id.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.AnalyzeApplication(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetAnalysis returns the stored analysis for an application
// GET /api/v1/applications/:id/analysis
func (h *Handlers) GetAnalysis(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	id := kernel.ApplicationID(c.Params("id"))
	if id.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetAnalysis(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// AnalyzeJobApplications scores every application of a job, ranked by score
// POST /api/v1/jobs/:jobID/analyze-resumes
func (h *Handlers) AnalyzeJobApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("jobID"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	entries, err := h.service.AnalyzeJobApplications(c.Context(), authContext.UserID, jobID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"count":   len(entries),
		"results": entries,
	})
}

// BulkAnalyzeResumes scores uploaded resume files against a job without
// creating applications. The body is a multipart form with "files" entries.
// POST /api/v1/jobs/:jobID/bulk-analyze
func (h *Handlers) BulkAnalyzeResumes(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("jobID"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return application.ErrInvalidRequest().WithDetail("files", "no files uploaded")
	}

	uploads := make([]analysis.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		uploads = append(uploads, multipartUpload{fh})
	}

	entries, err := h.service.BulkAnalyzeResumes(c.Context(), authContext.UserID, jobID, uploads)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"count":   len(entries),
		"results": entries,
	})
}

// multipartUpload adapts a multipart file header to analysis.UploadedFile
type multipartUpload struct {
	header *multipart.FileHeader
}

func (u multipartUpload) Name() string { return u.header.Filename }

func (u multipartUpload) Open() (io.ReadCloser, error) { return u.header.Open() }

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	// Ensure valid values
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	jobs := app.Group("/api/v1/jobs")

	jobs.Post("/:jobID/apply",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsWrite),
		handlers.Apply,
	)

	jobs.Get("/:jobID/applications",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.JobApplications,
	)

	jobs.Post("/:jobID/analyze-resumes",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsAnalyze),
		handlers.AnalyzeJobApplications,
	)

	jobs.Post("/:jobID/bulk-analyze",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsAnalyze),
		handlers.BulkAnalyzeResumes,
	)

	api := app.Group("/api/v1/applications")

	api.Get("/my-applications",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.MyApplications,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.GetApplication,
	)

	api.Put("/:id/status",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.UpdateStatus,
	)

	api.Post("/:id/resume",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsWrite),
		handlers.UploadResume,
	)

	api.Get("/:id/resume",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.DownloadResume,
	)

	api.Post("/:id/analyze",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsAnalyze),
		handlers.AnalyzeApplication,
	)

	api.Get("/:id/analysis",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.GetAnalysis,
	)
}
