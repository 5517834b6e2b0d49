// Package analysis implements the deterministic resume-to-job match engine:
// text extraction feeds a keyword parser, a weighted scorer and a banded
// summary generator. All entry points return a uniform Result and never
// propagate a panic to the caller.
package analysis

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ejeanjules/capstone-project/internal/extract"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

// ApplicationInput carries everything needed to analyze one application: the
// resume file content and the job it was submitted against.
type ApplicationInput struct {
	ApplicationID  string
	ApplicantName  string
	ApplicantEmail string
	AppliedAt      time.Time
	ResumeData     []byte
	ResumeFilename string
	Job            JobFields
}

// BatchEntry is one item of a batch analysis.
type BatchEntry struct {
	ApplicationID  string    `json:"application_id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	AppliedAt      time.Time `json:"applied_at"`
	Analysis       Result    `json:"analysis"`
}

// UploadedFile is a not-yet-stored upload, analyzed without creating an
// application.
type UploadedFile interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Analyzer orchestrates extraction, parsing, scoring and summarization.
type Analyzer struct {
	parser    *Parser
	extractor *extract.Extractor
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		parser:    NewParser(),
		extractor: extract.NewExtractor(),
	}
}

// Analyze runs the full pipeline for one application. All failure modes come
// back as an error Result with score 0 and no analysis payload.
func (a *Analyzer) Analyze(input ApplicationInput) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("analysis panicked for application %s: %v", input.ApplicationID, r)
			result = errorResult(fmt.Sprintf("Analysis failed: %v", r))
		}
	}()

	if input.ResumeFilename == "" && len(input.ResumeData) == 0 {
		return errorResult("No resume file found")
	}

	text, err := a.extractor.TextFromFilename(input.ResumeData, input.ResumeFilename)
	if err != nil {
		return errorResult(fmt.Sprintf("Unsupported file format: %s", strings.ToLower(filepath.Ext(input.ResumeFilename))))
	}
	if strings.TrimSpace(text) == "" {
		logx.Warnf("resume %q produced no text", input.ResumeFilename)
		return errorResult("Could not extract text from resume")
	}

	resume := a.parser.ParseResume(text)
	job := a.parser.ParseJob(input.Job)
	match := Score(resume, job)
	logx.Debugf("application %s scored %.2f", input.ApplicationID, match.OverallScore)

	return Result{
		Score: match.OverallScore,
		Analysis: &Analysis{
			ResumeStructure: resume,
			JobRequirements: job,
			OverallScore:    match.OverallScore,
			CategoryScores:  match.CategoryScores,
			Matched:         match.Matched,
			Missing:         match.Missing,
			Experience:      match.Experience,
			Summary:         Summarize(match),
		},
	}
}

// AnalyzeFile analyzes an uploaded resume against a job without an
// application. The upload is spooled to a temp file that is always removed.
func (a *Analyzer) AnalyzeFile(file UploadedFile, job JobFields) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("file analysis panicked for %q: %v", file.Name(), r)
			result = errorResult(fmt.Sprintf("Analysis failed: %v", r))
		}
	}()

	src, err := file.Open()
	if err != nil {
		return errorResult(fmt.Sprintf("Could not read uploaded file: %v", err))
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "resume-*"+strings.ToLower(filepath.Ext(file.Name())))
	if err != nil {
		return errorResult(fmt.Sprintf("Could not buffer uploaded file: %v", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, copyErr := io.Copy(tmp, src)
	closeErr := tmp.Close()
	if copyErr != nil {
		return errorResult(fmt.Sprintf("Could not buffer uploaded file: %v", copyErr))
	}
	if closeErr != nil {
		return errorResult(fmt.Sprintf("Could not buffer uploaded file: %v", closeErr))
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return errorResult(fmt.Sprintf("Could not read uploaded file: %v", err))
	}

	return a.Analyze(ApplicationInput{
		ResumeData:     data,
		ResumeFilename: file.Name(),
		Job:            job,
	})
}

// AnalyzeBatch analyzes applications independently: one item failing yields
// an error Result for that entry only. Entries keep input order; callers sort.
func (a *Analyzer) AnalyzeBatch(inputs []ApplicationInput) []BatchEntry {
	entries := make([]BatchEntry, 0, len(inputs))
	for _, input := range inputs {
		entries = append(entries, BatchEntry{
			ApplicationID:  input.ApplicationID,
			ApplicantName:  input.ApplicantName,
			ApplicantEmail: input.ApplicantEmail,
			AppliedAt:      input.AppliedAt,
			Analysis:       a.Analyze(input),
		})
	}
	return entries
}
