package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

func pendingApplication() *Application {
	return &Application{
		ID:          kernel.GenerateApplicationID(),
		JobID:       kernel.GenerateJobID(),
		ApplicantID: kernel.GenerateUserID(),
		Status:      StatusPending,
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusAccepted.IsValid())
	assert.True(t, StatusRejected.IsValid())
	assert.False(t, Status("withdrawn").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestUpdateStatus(t *testing.T) {
	app := pendingApplication()

	require.NoError(t, app.UpdateStatus(StatusAccepted))
	assert.Equal(t, StatusAccepted, app.Status)
	assert.False(t, app.IsPending())

	// Same status again is an error
	assert.Error(t, app.UpdateStatus(StatusAccepted))

	// Invalid status is rejected without changing state
	assert.Error(t, app.UpdateStatus(Status("maybe")))
	assert.Equal(t, StatusAccepted, app.Status)
}

func TestAttachResumeClearsAnalysis(t *testing.T) {
	app := pendingApplication()
	app.SetAnalysis(87.5, json.RawMessage(`{"overall_score":87.5}`))

	require.True(t, app.AnalysisDone)
	require.NotNil(t, app.AnalysisScore)

	app.AttachResume("resumes/u1/j1_abc.pdf", "resume.pdf")

	assert.True(t, app.HasResume())
	assert.Equal(t, "resume.pdf", app.ResumeFilename)
	assert.False(t, app.AnalysisDone)
	assert.Nil(t, app.AnalysisScore)
	assert.Nil(t, app.AnalysisData)
	assert.Nil(t, app.AnalysisAt)
}

func TestSetAnalysis(t *testing.T) {
	app := pendingApplication()
	assert.False(t, app.HasResume())

	app.SetAnalysis(66.67, json.RawMessage(`{}`))

	require.NotNil(t, app.AnalysisScore)
	assert.Equal(t, 66.67, *app.AnalysisScore)
	assert.True(t, app.AnalysisDone)
	assert.NotNil(t, app.AnalysisAt)
}
