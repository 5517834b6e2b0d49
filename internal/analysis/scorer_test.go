package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreVacuousPass(t *testing.T) {
	m := Score(ResumeStructure{}, JobRequirements{})

	assert.Equal(t, 100.0, m.OverallScore)
	assert.Equal(t, 100.0, m.CategoryScores.TechnicalSkills)
	assert.Equal(t, 100.0, m.CategoryScores.Education)
	assert.Equal(t, 100.0, m.CategoryScores.SoftSkills)
	assert.Equal(t, 100.0, m.CategoryScores.Experience)
	assert.Empty(t, m.Matched.TechnicalSkills)
	assert.Empty(t, m.Missing.TechnicalSkills)
	assert.True(t, m.Experience.MeetsRequirement)
}

func TestScoreWeightedSum(t *testing.T) {
	resume := ResumeStructure{
		TechnicalSkills: []string{"python"},
		ExperienceYears: 1,
	}
	job := JobRequirements{
		TechnicalSkills: []string{"python", "react"},
		Education:       []string{"bachelor"},
		SoftSkills:      []string{"communication"},
		ExperienceYears: 2,
	}
	m := Score(resume, job)

	// 50*0.50 + 0*0.20 + 0*0.15 + 50*0.15
	assert.Equal(t, 50.0, m.CategoryScores.TechnicalSkills)
	assert.Equal(t, 0.0, m.CategoryScores.Education)
	assert.Equal(t, 0.0, m.CategoryScores.SoftSkills)
	assert.Equal(t, 50.0, m.CategoryScores.Experience)
	assert.Equal(t, 32.5, m.OverallScore)
}

func TestScoreMatchedMissingPartition(t *testing.T) {
	resume := ResumeStructure{TechnicalSkills: []string{"python", "docker", "aws"}}
	job := JobRequirements{TechnicalSkills: []string{"python", "react", "aws", "kubernetes"}}
	m := Score(resume, job)

	assert.Equal(t, []string{"python", "aws"}, m.Matched.TechnicalSkills)
	assert.Equal(t, []string{"react", "kubernetes"}, m.Missing.TechnicalSkills)
	assert.Len(t, m.Matched.TechnicalSkills, 2)
	assert.Len(t, m.Missing.TechnicalSkills, 2)
	assert.Equal(t, 50.0, m.CategoryScores.TechnicalSkills)
}

func TestScoreExperienceMonotonicity(t *testing.T) {
	job := JobRequirements{ExperienceYears: 10}
	prev := -1.0
	for years := 0; years < 10; years++ {
		m := Score(ResumeStructure{ExperienceYears: years}, job)
		assert.Greater(t, m.CategoryScores.Experience, prev, "years=%d", years)
		assert.False(t, m.Experience.MeetsRequirement)
		prev = m.CategoryScores.Experience
	}

	at := Score(ResumeStructure{ExperienceYears: 10}, job)
	assert.Equal(t, 100.0, at.CategoryScores.Experience)
	assert.True(t, at.Experience.MeetsRequirement)

	over := Score(ResumeStructure{ExperienceYears: 25}, job)
	assert.Equal(t, 100.0, over.CategoryScores.Experience)
}

func TestScoreExperienceFractionalCredit(t *testing.T) {
	m := Score(ResumeStructure{ExperienceYears: 1}, JobRequirements{ExperienceYears: 3})
	assert.Equal(t, 33.33, m.CategoryScores.Experience)
}

func TestScoreRoundsToTwoDecimals(t *testing.T) {
	resume := ResumeStructure{TechnicalSkills: []string{"python", "django"}}
	job := JobRequirements{TechnicalSkills: []string{"python", "django", "react"}}
	m := Score(resume, job)

	assert.Equal(t, 66.67, m.CategoryScores.TechnicalSkills)
	// overall = 66.666...*0.50 + 100*0.20 + 100*0.15 + 100*0.15
	assert.Equal(t, 83.33, m.OverallScore)
}

func TestScoreResumeExtrasDoNotRaiseScore(t *testing.T) {
	bare := Score(ResumeStructure{TechnicalSkills: []string{"python"}},
		JobRequirements{TechnicalSkills: []string{"python"}})
	loaded := Score(ResumeStructure{TechnicalSkills: []string{"python", "rust", "haskell"}},
		JobRequirements{TechnicalSkills: []string{"python"}})

	assert.Equal(t, bare.OverallScore, loaded.OverallScore)
}
