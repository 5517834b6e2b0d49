package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

func validJob() *Job {
	return &Job{
		ID:          kernel.GenerateJobID(),
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    "Remote",
		Type:        JobTypeFullTime,
		Description: "Build and maintain services",
		PostedBy:    kernel.GenerateUserID(),
		IsActive:    true,
	}
}

func TestJobValidate(t *testing.T) {
	j := validJob()
	require.NoError(t, j.Validate())

	missingTitle := validJob()
	missingTitle.Title = "   "
	assert.Error(t, missingTitle.Validate())

	missingDescription := validJob()
	missingDescription.Description = ""
	assert.Error(t, missingDescription.Validate())

	badType := validJob()
	badType.Type = "freelance"
	assert.Error(t, badType.Validate())

	negativeExperience := validJob()
	negativeExperience.MinExperienceYears = -1
	assert.Error(t, negativeExperience.Validate())
}

func TestJobTypeIsValid(t *testing.T) {
	for _, jt := range []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship} {
		assert.True(t, jt.IsValid())
	}
	assert.False(t, JobType("").IsValid())
	assert.False(t, JobType("temp").IsValid())
}

func TestJobIsAcceptingApplications(t *testing.T) {
	j := validJob()

	// Unlimited when no cap is set
	j.MaxApplicants = 0
	assert.True(t, j.IsAcceptingApplications(1000))

	j.MaxApplicants = 5
	assert.True(t, j.IsAcceptingApplications(4))
	assert.False(t, j.IsAcceptingApplications(5))

	j.IsActive = false
	assert.False(t, j.IsAcceptingApplications(0))
}

func TestJobDeactivate(t *testing.T) {
	j := validJob()
	require.NoError(t, j.Deactivate())
	assert.False(t, j.IsActive)

	// Deactivating twice is an error
	assert.Error(t, j.Deactivate())

	j.Activate()
	assert.True(t, j.IsActive)
}

func TestJobHasExplicitRequirements(t *testing.T) {
	j := validJob()
	assert.False(t, j.HasExplicitRequirements())

	j.RequiredSkills = []string{"python"}
	assert.True(t, j.HasExplicitRequirements())

	j = validJob()
	j.MinExperienceYears = 3
	assert.True(t, j.HasExplicitRequirements())
}

func TestJobIsOwnedBy(t *testing.T) {
	j := validJob()
	assert.True(t, j.IsOwnedBy(j.PostedBy))
	assert.False(t, j.IsOwnedBy(kernel.GenerateUserID()))
}
