package application

import (
	"time"

	"github.com/Ejeanjules/capstone-project/internal/analysis"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// ApplyRequest is the payload to apply to a job
type ApplyRequest struct {
	Message string `json:"message"`

	// Resume upload, set by the handler from the multipart form
	ResumeFilename string `json:"-"`
	ResumeData     []byte `json:"-"`
}

// UpdateStatusRequest changes an application's review state
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// ApplicationWithDetails joins an application with applicant and job info
type ApplicationWithDetails struct {
	Application
	ApplicantName  string       `json:"applicant_name"`
	ApplicantEmail kernel.Email `json:"applicant_email"`
	JobTitle       string       `json:"job_title"`
	JobCompany     string       `json:"job_company"`
}

// AnalysisResponse is the stored analysis of one application
type AnalysisResponse struct {
	ApplicationID kernel.ApplicationID `json:"application_id"`
	Score         float64              `json:"score"`
	Analysis      *analysis.Analysis   `json:"analysis"`
	AnalyzedAt    time.Time            `json:"analyzed_at"`
}

// RankedEntry is one line of a job-wide or bulk analysis, ranked by score
type RankedEntry struct {
	ApplicationID  string          `json:"application_id,omitempty"`
	Filename       string          `json:"filename,omitempty"`
	ApplicantName  string          `json:"applicant_name,omitempty"`
	ApplicantEmail string          `json:"applicant_email,omitempty"`
	AppliedAt      *time.Time      `json:"applied_at,omitempty"`
	Analysis       analysis.Result `json:"analysis"`
}
