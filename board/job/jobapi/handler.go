package jobapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ejeanjules/capstone-project/board/job"
	"github.com/Ejeanjules/capstone-project/board/job/jobsrv"
	"github.com/Ejeanjules/capstone-project/pkg/iam/auth"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.Service
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateJob creates a new job posting
// POST /api/v1/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrNotJobOwner()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateJob(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetJob retrieves a job by ID
// GET /api/v1/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpdateJob partially updates a job posting
// PUT /api/v1/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrNotJobOwner()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.Context(), authContext.UserID, jobID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteJob removes a job posting
// DELETE /api/v1/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrNotJobOwner()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteJob(c.Context(), authContext.UserID, jobID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeactivateJob closes a job for applications
// POST /api/v1/jobs/:id/deactivate
func (h *Handlers) DeactivateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrNotJobOwner()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	updated, err := h.service.DeactivateJob(c.Context(), authContext.UserID, jobID)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// ListPublicJobs lists active jobs, optionally filtered
// GET /api/v1/jobs/public
func (h *Handlers) ListPublicJobs(c *fiber.Ctx) error {
	filter := job.ListFilter{
		Type:     job.JobType(c.Query("job_type")),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}

	jobs, err := h.service.ListPublicJobs(c.Context(), filter, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// ListMyJobs lists the authenticated user's postings
// GET /api/v1/jobs/my-jobs
func (h *Handlers) ListMyJobs(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrNotJobOwner()
	}

	jobs, err := h.service.ListMyJobs(c.Context(), authContext.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
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

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/v1/jobs")

	// Public listing does not require authentication
	api.Get("/public", handlers.ListPublicJobs)

	api.Get("/my-jobs",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.ListMyJobs,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.GetJob,
	)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.UpdateJob,
	)

	api.Post("/:id/deactivate",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.DeactivateJob,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsDelete),
		handlers.DeleteJob,
	)
}
