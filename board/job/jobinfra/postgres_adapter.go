package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Ejeanjules/capstone-project/board/job"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type jobModel struct {
	ID                 string         `db:"id"`
	Title              string         `db:"title"`
	Company            string         `db:"company"`
	Location           string         `db:"location"`
	JobType            string         `db:"job_type"`
	Salary             string         `db:"salary"`
	Description        string         `db:"description"`
	Requirements       string         `db:"requirements"`
	RequiredSkills     pq.StringArray `db:"required_skills"`
	RequiredEducation  pq.StringArray `db:"required_education"`
	RequiredSoftSkills pq.StringArray `db:"required_soft_skills"`
	MinExperienceYears int            `db:"min_experience_years"`
	MaxApplicants      int            `db:"max_applicants"`
	PostedBy           string         `db:"posted_by"`
	IsActive           bool           `db:"is_active"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	return &job.Job{
		ID:                 kernel.JobID(m.ID),
		Title:              m.Title,
		Company:            m.Company,
		Location:           m.Location,
		Type:               job.JobType(m.JobType),
		Salary:             m.Salary,
		Description:        m.Description,
		Requirements:       m.Requirements,
		RequiredSkills:     m.RequiredSkills,
		RequiredEducation:  m.RequiredEducation,
		RequiredSoftSkills: m.RequiredSoftSkills,
		MinExperienceYears: m.MinExperienceYears,
		MaxApplicants:      m.MaxApplicants,
		PostedBy:           kernel.UserID(m.PostedBy),
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:                 string(j.ID),
		Title:              j.Title,
		Company:            j.Company,
		Location:           j.Location,
		JobType:            string(j.Type),
		Salary:             j.Salary,
		Description:        j.Description,
		Requirements:       j.Requirements,
		RequiredSkills:     pq.StringArray(j.RequiredSkills),
		RequiredEducation:  pq.StringArray(j.RequiredEducation),
		RequiredSoftSkills: pq.StringArray(j.RequiredSoftSkills),
		MinExperienceYears: j.MinExperienceYears,
		MaxApplicants:      j.MaxApplicants,
		PostedBy:           string(j.PostedBy),
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

const jobColumns = `
	id, title, company, location, job_type, salary, description, requirements,
	required_skills, required_education, required_soft_skills,
	min_experience_years, max_applicants, posted_by, is_active,
	created_at, updated_at
`

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	model := fromEntity(j)

	query := `
		INSERT INTO jobs (
			id, title, company, location, job_type, salary, description, requirements,
			required_skills, required_education, required_soft_skills,
			min_experience_years, max_applicants, posted_by, is_active,
			created_at, updated_at
		) VALUES (
			:id, :title, :company, :location, :job_type, :salary, :description, :requirements,
			:required_skills, :required_education, :required_soft_skills,
			:min_experience_years, :max_applicants, :posted_by, :is_active,
			:created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid foreign key reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	model := fromEntity(j)
	model.ID = string(id)

	query := `
		UPDATE jobs SET
			title = :title,
			company = :company,
			location = :location,
			job_type = :job_type,
			salary = :salary,
			description = :description,
			requirements = :requirements,
			required_skills = :required_skills,
			required_education = :required_education,
			required_soft_skills = :required_soft_skills,
			min_experience_years = :min_experience_years,
			max_applicants = :max_applicants,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity(), nil
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	query := `DELETE FROM jobs WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// ListActive retrieves active jobs with optional filters
func (r *PostgresJobRepository) ListActive(ctx context.Context, filter job.ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	conditions := []string{"is_active = TRUE"}
	args := []any{}
	arg := 1

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("job_type = $%d", arg))
		args = append(args, string(filter.Type))
		arg++
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", arg))
		args = append(args, "%"+filter.Location+"%")
		arg++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", arg, arg, arg))
		args = append(args, "%"+filter.Search+"%")
		arg++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM jobs WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, jobColumns, where, arg, arg+1)
	args = append(args, pagination.PageSize, pagination.Offset())

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	entities := make([]job.Job, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListByPoster retrieves jobs posted by a user
func (r *PostgresJobRepository) ListByPoster(ctx context.Context, posterID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM jobs WHERE posted_by = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(posterID)); err != nil {
		return nil, fmt.Errorf("failed to count poster jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + ` FROM jobs
		WHERE posted_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, string(posterID), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list jobs by poster: %w", err)
	}

	entities := make([]job.Job, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// Exists checks if a job exists by ID
func (r *PostgresJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to check job existence: %w", err)
	}

	return exists, nil
}
