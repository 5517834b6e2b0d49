package job

import (
	"time"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// CreateJobRequest is the payload to post a new job
type CreateJobRequest struct {
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	Type               JobType  `json:"job_type"`
	Salary             string   `json:"salary"`
	Description        string   `json:"description"`
	Requirements       string   `json:"requirements"`
	RequiredSkills     []string `json:"required_skills"`
	RequiredEducation  []string `json:"required_education"`
	RequiredSoftSkills []string `json:"required_soft_skills"`
	MinExperienceYears int      `json:"min_experience_years"`
	MaxApplicants      int      `json:"max_applicants"`
}

// ToEntity builds the Job entity for the posting user
func (r *CreateJobRequest) ToEntity(postedBy kernel.UserID) *Job {
	now := time.Now()
	return &Job{
		ID:                 kernel.GenerateJobID(),
		Title:              r.Title,
		Company:            r.Company,
		Location:           r.Location,
		Type:               r.Type,
		Salary:             r.Salary,
		Description:        r.Description,
		Requirements:       r.Requirements,
		RequiredSkills:     r.RequiredSkills,
		RequiredEducation:  r.RequiredEducation,
		RequiredSoftSkills: r.RequiredSoftSkills,
		MinExperienceYears: r.MinExperienceYears,
		MaxApplicants:      r.MaxApplicants,
		PostedBy:           postedBy,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// UpdateJobRequest carries partial job updates; nil fields are unchanged
type UpdateJobRequest struct {
	Title              *string   `json:"title,omitempty"`
	Company            *string   `json:"company,omitempty"`
	Location           *string   `json:"location,omitempty"`
	Type               *JobType  `json:"job_type,omitempty"`
	Salary             *string   `json:"salary,omitempty"`
	Description        *string   `json:"description,omitempty"`
	Requirements       *string   `json:"requirements,omitempty"`
	RequiredSkills     *[]string `json:"required_skills,omitempty"`
	RequiredEducation  *[]string `json:"required_education,omitempty"`
	RequiredSoftSkills *[]string `json:"required_soft_skills,omitempty"`
	MinExperienceYears *int      `json:"min_experience_years,omitempty"`
	MaxApplicants      *int      `json:"max_applicants,omitempty"`
	IsActive           *bool     `json:"is_active,omitempty"`
}

// ApplyTo mutates the entity with the provided fields
func (r *UpdateJobRequest) ApplyTo(j *Job) {
	if r.Title != nil {
		j.Title = *r.Title
	}
	if r.Company != nil {
		j.Company = *r.Company
	}
	if r.Location != nil {
		j.Location = *r.Location
	}
	if r.Type != nil {
		j.Type = *r.Type
	}
	if r.Salary != nil {
		j.Salary = *r.Salary
	}
	if r.Description != nil {
		j.Description = *r.Description
	}
	if r.Requirements != nil {
		j.Requirements = *r.Requirements
	}
	if r.RequiredSkills != nil {
		j.RequiredSkills = *r.RequiredSkills
	}
	if r.RequiredEducation != nil {
		j.RequiredEducation = *r.RequiredEducation
	}
	if r.RequiredSoftSkills != nil {
		j.RequiredSoftSkills = *r.RequiredSoftSkills
	}
	if r.MinExperienceYears != nil {
		j.MinExperienceYears = *r.MinExperienceYears
	}
	if r.MaxApplicants != nil {
		j.MaxApplicants = *r.MaxApplicants
	}
	if r.IsActive != nil {
		j.IsActive = *r.IsActive
	}
	j.UpdatedAt = time.Now()
}

// JobResponse is the public view of a job, including application headroom
type JobResponse struct {
	Job
	ApplicantCount int64 `json:"applicant_count"`
	Accepting      bool  `json:"is_accepting_applications"`
}

func NewJobResponse(j *Job, applicantCount int64) *JobResponse {
	return &JobResponse{
		Job:            *j,
		ApplicantCount: applicantCount,
		Accepting:      j.IsAcceptingApplications(applicantCount),
	}
}
