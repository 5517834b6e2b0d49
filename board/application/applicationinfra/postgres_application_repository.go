package applicationinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type applicationModel struct {
	ID             string          `db:"id"`
	JobID          string          `db:"job_id"`
	ApplicantID    string          `db:"applicant_id"`
	Status         string          `db:"status"`
	Message        string          `db:"message"`
	ResumeKey      string          `db:"resume_key"`
	ResumeFilename string          `db:"resume_filename"`
	AnalysisScore  *float64        `db:"analysis_score"`
	AnalysisData   json.RawMessage `db:"analysis_data"`
	AnalysisDone   bool            `db:"analysis_done"`
	AnalysisAt     *time.Time      `db:"analysis_at"`
	AppliedAt      time.Time       `db:"applied_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// applicationWithDetailsModel for joined queries
type applicationWithDetailsModel struct {
	applicationModel
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	ApplicantEmail string `db:"applicant_email"`
	JobTitle       string `db:"job_title"`
	JobCompany     string `db:"job_company"`
}

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.Application {
	return &application.Application{
		ID:             kernel.ApplicationID(m.ID),
		JobID:          kernel.JobID(m.JobID),
		ApplicantID:    kernel.UserID(m.ApplicantID),
		Status:         application.Status(m.Status),
		Message:        m.Message,
		ResumeKey:      m.ResumeKey,
		ResumeFilename: m.ResumeFilename,
		AnalysisScore:  m.AnalysisScore,
		AnalysisData:   m.AnalysisData,
		AnalysisDone:   m.AnalysisDone,
		AnalysisAt:     m.AnalysisAt,
		AppliedAt:      m.AppliedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// toDetails converts joined model to details DTO
func (m *applicationWithDetailsModel) toDetails() *application.ApplicationWithDetails {
	name := m.FirstName + " " + m.LastName
	if m.FirstName == "" && m.LastName == "" {
		name = "Unknown"
	}

	return &application.ApplicationWithDetails{
		Application:    *m.applicationModel.toEntity(),
		ApplicantName:  name,
		ApplicantEmail: kernel.Email(m.ApplicantEmail),
		JobTitle:       m.JobTitle,
		JobCompany:     m.JobCompany,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(app *application.Application) *applicationModel {
	return &applicationModel{
		ID:             string(app.ID),
		JobID:          string(app.JobID),
		ApplicantID:    string(app.ApplicantID),
		Status:         string(app.Status),
		Message:        app.Message,
		ResumeKey:      app.ResumeKey,
		ResumeFilename: app.ResumeFilename,
		AnalysisScore:  app.AnalysisScore,
		AnalysisData:   app.AnalysisData,
		AnalysisDone:   app.AnalysisDone,
		AnalysisAt:     app.AnalysisAt,
		AppliedAt:      app.AppliedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

const applicationColumns = `
	id, job_id, applicant_id, status, message, resume_key, resume_filename,
	analysis_score, analysis_data, analysis_done, analysis_at,
	applied_at, updated_at
`

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	model := fromEntity(app)

	query := `
		INSERT INTO applications (
			id, job_id, applicant_id, status, message, resume_key, resume_filename,
			analysis_score, analysis_data, analysis_done, analysis_at,
			applied_at, updated_at
		) VALUES (
			:id, :job_id, :applicant_id, :status, :message, :resume_key, :resume_filename,
			:analysis_score, :analysis_data, :analysis_done, :analysis_at,
			:applied_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on (job_id, applicant_id)
				return application.ErrApplicationAlreadyExists()
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid foreign key reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Update updates an existing application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	model := fromEntity(app)
	model.ID = string(id)

	query := `
		UPDATE applications SET
			status = :status,
			message = :message,
			resume_key = :resume_key,
			resume_filename = :resume_filename,
			analysis_score = :analysis_score,
			analysis_data = :analysis_data,
			analysis_done = :analysis_done,
			analysis_at = :analysis_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var model applicationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetWithDetails retrieves an application with applicant and job details
func (r *PostgresApplicationRepository) GetWithDetails(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationWithDetails, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.message,
			a.resume_key, a.resume_filename,
			a.analysis_score, a.analysis_data, a.analysis_done, a.analysis_at,
			a.applied_at, a.updated_at,
			u.first_name, u.last_name,
			u.email AS applicant_email,
			j.title AS job_title,
			j.company AS job_company
		FROM applications a
		INNER JOIN users u ON a.applicant_id = u.id
		INNER JOIN jobs j ON a.job_id = j.id
		WHERE a.id = $1
	`

	var model applicationWithDetailsModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application with details: %w", err)
	}

	return model.toDetails(), nil
}

// ListByJobID retrieves applications for a specific job
func (r *PostgresApplicationRepository) ListByJobID(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM applications WHERE job_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(jobID)); err != nil {
		return nil, fmt.Errorf("failed to count job applications: %w", err)
	}

	query := `
		SELECT ` + applicationColumns + ` FROM applications
		WHERE job_id = $1
		ORDER BY applied_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, query, string(jobID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}

	entities := make([]application.Application, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListAllByJobID retrieves every application for a job, for batch analysis
func (r *PostgresApplicationRepository) ListAllByJobID(ctx context.Context, jobID kernel.JobID) ([]application.Application, error) {
	query := `
		SELECT ` + applicationColumns + ` FROM applications
		WHERE job_id = $1
		ORDER BY applied_at ASC
	`

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, query, string(jobID))
	if err != nil {
		return nil, fmt.Errorf("failed to list all applications by job: %w", err)
	}

	entities := make([]application.Application, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return entities, nil
}

// ListByApplicantID retrieves applications submitted by a user
func (r *PostgresApplicationRepository) ListByApplicantID(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM applications WHERE applicant_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(applicantID)); err != nil {
		return nil, fmt.Errorf("failed to count applicant applications: %w", err)
	}

	query := `
		SELECT ` + applicationColumns + ` FROM applications
		WHERE applicant_id = $1
		ORDER BY applied_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, query, string(applicantID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}

	entities := make([]application.Application, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ExistsByJobAndApplicant checks for a duplicate application
func (r *PostgresApplicationRepository) ExistsByJobAndApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(jobID), string(applicantID))
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}

	return exists, nil
}

// CountByJobID counts applications for a specific job
func (r *PostgresApplicationRepository) CountByJobID(ctx context.Context, jobID kernel.JobID) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE job_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, string(jobID))
	if err != nil {
		return 0, fmt.Errorf("failed to count job applications: %w", err)
	}

	return count, nil
}

// UpdateResume updates the stored resume reference and clears analysis state
func (r *PostgresApplicationRepository) UpdateResume(ctx context.Context, id kernel.ApplicationID, key, filename string) error {
	query := `
		UPDATE applications
		SET resume_key = $1,
		    resume_filename = $2,
		    analysis_score = NULL,
		    analysis_data = NULL,
		    analysis_done = FALSE,
		    analysis_at = NULL,
		    updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, key, filename, time.Now(), string(id))
	if err != nil {
		return fmt.Errorf("failed to update resume reference: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// SaveAnalysis stores an analysis outcome
func (r *PostgresApplicationRepository) SaveAnalysis(ctx context.Context, id kernel.ApplicationID, score float64, data json.RawMessage, at time.Time) error {
	query := `
		UPDATE applications
		SET analysis_score = $1,
		    analysis_data = $2,
		    analysis_done = TRUE,
		    analysis_at = $3,
		    updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, score, data, at, string(id))
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}
