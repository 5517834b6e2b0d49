package analysis

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = "5 years experience in Python and Django, Bachelor's degree in Computer Science, strong communication skills"

func sampleJob() JobFields {
	return JobFields{
		RequiredSkills:     []string{"python", "django", "react"},
		RequiredEducation:  []string{"bachelor"},
		RequiredSoftSkills: []string{"communication"},
		MinExperienceYears: 3,
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze(ApplicationInput{
		ApplicationID:  "app-1",
		ResumeData:     []byte(sampleResume),
		ResumeFilename: "resume.txt",
		Job:            sampleJob(),
	})

	require.True(t, result.OK(), result.Error)
	require.NotNil(t, result.Analysis)

	assert.Equal(t, 83.33, result.Score)
	assert.Equal(t, 83.33, result.Analysis.OverallScore)
	assert.Equal(t, 66.67, result.Analysis.CategoryScores.TechnicalSkills)
	assert.Equal(t, 100.0, result.Analysis.CategoryScores.Education)
	assert.Equal(t, 100.0, result.Analysis.CategoryScores.SoftSkills)
	assert.Equal(t, 100.0, result.Analysis.CategoryScores.Experience)

	assert.Equal(t, []string{"python", "django"}, result.Analysis.Matched.TechnicalSkills)
	assert.Equal(t, []string{"react"}, result.Analysis.Missing.TechnicalSkills)
	assert.Contains(t, result.Analysis.Summary, "MATCH SCORE: 83.33% - EXCELLENT (STRONGLY RECOMMENDED)")
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := NewAnalyzer()
	input := ApplicationInput{
		ResumeData:     []byte(sampleResume),
		ResumeFilename: "resume.txt",
		Job:            sampleJob(),
	}

	first := a.Analyze(input)
	second := a.Analyze(input)

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Analysis.CategoryScores, second.Analysis.CategoryScores)
	assert.Equal(t, first.Analysis.Summary, second.Analysis.Summary)
}

func TestAnalyzeNoResume(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze(ApplicationInput{Job: sampleJob()})

	assert.Equal(t, "No resume file found", result.Error)
	assert.Zero(t, result.Score)
	assert.Nil(t, result.Analysis)
}

func TestAnalyzeUnsupportedExtension(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze(ApplicationInput{
		ResumeData:     []byte("MZ binary"),
		ResumeFilename: "resume.exe",
		Job:            sampleJob(),
	})

	assert.NotEmpty(t, result.Error)
	assert.Zero(t, result.Score)
	assert.Nil(t, result.Analysis)
}

func TestAnalyzeEmptyResumeText(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze(ApplicationInput{
		ResumeData:     []byte("   \n\t  "),
		ResumeFilename: "resume.txt",
		Job:            sampleJob(),
	})

	assert.Equal(t, "Could not extract text from resume", result.Error)
	assert.Zero(t, result.Score)
	assert.Nil(t, result.Analysis)
}

func TestAnalyzeExplicitFieldPrecedence(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze(ApplicationInput{
		ResumeData:     []byte("python everywhere"),
		ResumeFilename: "resume.txt",
		Job: JobFields{
			Description:    "react react react",
			RequiredSkills: []string{"python"},
		},
	})

	require.True(t, result.OK())
	assert.Equal(t, []string{"python"}, result.Analysis.JobRequirements.TechnicalSkills)
	assert.Equal(t, 100.0, result.Analysis.CategoryScores.TechnicalSkills)
}

func TestAnalyzeBatchIsolation(t *testing.T) {
	a := NewAnalyzer()
	ok := ApplicationInput{
		ResumeData:     []byte(sampleResume),
		ResumeFilename: "resume.txt",
		Job:            sampleJob(),
	}
	broken := ApplicationInput{ApplicationID: "app-2", Job: sampleJob()}

	first, third := ok, ok
	first.ApplicationID = "app-1"
	third.ApplicationID = "app-3"

	entries := a.AnalyzeBatch([]ApplicationInput{first, broken, third})

	require.Len(t, entries, 3)
	assert.True(t, entries[0].Analysis.OK())
	assert.False(t, entries[1].Analysis.OK())
	assert.True(t, entries[2].Analysis.OK())
	assert.Equal(t, "app-2", entries[1].ApplicationID)
	assert.Equal(t, entries[0].Analysis.Score, entries[2].Analysis.Score)
}

type memUpload struct {
	name string
	data []byte
}

func (m memUpload) Name() string { return m.name }
func (m memUpload) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func TestAnalyzeFile(t *testing.T) {
	a := NewAnalyzer()
	result := a.AnalyzeFile(memUpload{name: "cv.txt", data: []byte(sampleResume)}, sampleJob())

	require.True(t, result.OK(), result.Error)
	assert.Equal(t, 83.33, result.Score)
}

func TestAnalyzeFileUnsupported(t *testing.T) {
	a := NewAnalyzer()
	result := a.AnalyzeFile(memUpload{name: "cv.exe", data: []byte("MZ")}, sampleJob())

	assert.NotEmpty(t, result.Error)
	assert.Zero(t, result.Score)
	assert.Nil(t, result.Analysis)
}
