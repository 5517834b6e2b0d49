package job

import (
	"strings"
	"time"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// JobType represents the employment type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// IsValid checks that the type is one of the accepted values
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

type Job struct {
	ID                 kernel.JobID  `db:"id" json:"id"`
	Title              string        `db:"title" json:"title"`
	Company            string        `db:"company" json:"company"`
	Location           string        `db:"location" json:"location"`
	Type               JobType       `db:"job_type" json:"job_type"`
	Salary             string        `db:"salary" json:"salary,omitempty"`
	Description        string        `db:"description" json:"description"`
	Requirements       string        `db:"requirements" json:"requirements,omitempty"`
	RequiredSkills     []string      `db:"required_skills" json:"required_skills"`
	RequiredEducation  []string      `db:"required_education" json:"required_education"`
	RequiredSoftSkills []string      `db:"required_soft_skills" json:"required_soft_skills"`
	MinExperienceYears int           `db:"min_experience_years" json:"min_experience_years"`
	MaxApplicants      int           `db:"max_applicants" json:"max_applicants"`
	PostedBy           kernel.UserID `db:"posted_by" json:"posted_by"`
	IsActive           bool          `db:"is_active" json:"is_active"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy checks whether the user posted this job
func (j *Job) IsOwnedBy(userID kernel.UserID) bool {
	return j.PostedBy == userID
}

// IsAcceptingApplications checks activity and remaining capacity
func (j *Job) IsAcceptingApplications(currentApplicants int64) bool {
	if !j.IsActive {
		return false
	}
	if j.MaxApplicants <= 0 {
		return true
	}
	return currentApplicants < int64(j.MaxApplicants)
}

// HasExplicitRequirements checks whether structured requirement fields are set
func (j *Job) HasExplicitRequirements() bool {
	return len(j.RequiredSkills) > 0 ||
		len(j.RequiredEducation) > 0 ||
		len(j.RequiredSoftSkills) > 0 ||
		j.MinExperienceYears > 0
}

// Validate checks the fields required to post the job
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return ErrValidationFailed().WithDetail("field", "title")
	}
	if strings.TrimSpace(j.Description) == "" {
		return ErrValidationFailed().WithDetail("field", "description")
	}
	if !j.Type.IsValid() {
		return ErrInvalidJobType().WithDetail("job_type", j.Type)
	}
	if j.MinExperienceYears < 0 {
		return ErrValidationFailed().WithDetail("field", "min_experience_years")
	}
	if j.MaxApplicants < 0 {
		return ErrValidationFailed().WithDetail("field", "max_applicants")
	}
	return nil
}

// Deactivate closes the job for new applications
func (j *Job) Deactivate() error {
	if !j.IsActive {
		return ErrJobAlreadyInactive()
	}
	j.IsActive = false
	j.UpdatedAt = time.Now()
	return nil
}

// Activate reopens the job
func (j *Job) Activate() {
	j.IsActive = true
	j.UpdatedAt = time.Now()
}
