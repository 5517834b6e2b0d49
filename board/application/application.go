package application

import (
	"encoding/json"
	"time"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Status represents the review state of an application
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsValid checks that the status is one of the accepted values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID             kernel.ApplicationID `db:"id" json:"id"`
	JobID          kernel.JobID         `db:"job_id" json:"job_id"`
	ApplicantID    kernel.UserID        `db:"applicant_id" json:"applicant_id"`
	Status         Status               `db:"status" json:"status"`
	Message        string               `db:"message" json:"message,omitempty"`
	ResumeKey      string               `db:"resume_key" json:"-"`
	ResumeFilename string               `db:"resume_filename" json:"resume_filename,omitempty"`
	AnalysisScore  *float64             `db:"analysis_score" json:"analysis_score,omitempty"`
	AnalysisData   json.RawMessage      `db:"analysis_data" json:"analysis_data,omitempty"`
	AnalysisDone   bool                 `db:"analysis_done" json:"analysis_done"`
	AnalysisAt     *time.Time           `db:"analysis_at" json:"analysis_at,omitempty"`
	AppliedAt      time.Time            `db:"applied_at" json:"applied_at"`
	UpdatedAt      time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasResume checks whether a resume file is attached
func (a *Application) HasResume() bool {
	return a.ResumeKey != ""
}

// IsPending checks if the application awaits review
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// UpdateStatus changes the review state
func (a *Application) UpdateStatus(newStatus Status) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus().WithDetail("status", newStatus)
	}
	if newStatus == a.Status {
		return ErrStatusUnchanged().WithDetail("status", newStatus)
	}

	a.Status = newStatus
	a.UpdatedAt = time.Now()
	return nil
}

// AttachResume records a freshly stored resume file. Any previous analysis
// is stale once the file changes.
func (a *Application) AttachResume(key, filename string) {
	a.ResumeKey = key
	a.ResumeFilename = filename
	a.ClearAnalysis()
}

// SetAnalysis records an analysis outcome
func (a *Application) SetAnalysis(score float64, data json.RawMessage) {
	now := time.Now()
	a.AnalysisScore = &score
	a.AnalysisData = data
	a.AnalysisDone = true
	a.AnalysisAt = &now
	a.UpdatedAt = now
}

// ClearAnalysis drops any stored analysis
func (a *Application) ClearAnalysis() {
	a.AnalysisScore = nil
	a.AnalysisData = nil
	a.AnalysisDone = false
	a.AnalysisAt = nil
	a.UpdatedAt = time.Now()
}
