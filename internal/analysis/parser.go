package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Experience extraction tries patterns in order; the first pattern with any
// match wins and the largest captured number is taken.
var (
	resumeExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`experience.*?(\d+)\+?\s*years?`),
	}
	jobExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`minimum.*?(\d+)\+?\s*years?`),
	}
)

// JobFields is the job-side input to the parser. When any of the explicit
// requirement fields is set, they are used verbatim and the posting text is
// not consulted.
type JobFields struct {
	Description        string
	Requirements       string
	RequiredSkills     []string
	RequiredEducation  []string
	RequiredSoftSkills []string
	MinExperienceYears int
}

func (f JobFields) hasExplicitRequirements() bool {
	return len(f.RequiredSkills) > 0 ||
		len(f.RequiredEducation) > 0 ||
		len(f.RequiredSoftSkills) > 0 ||
		f.MinExperienceYears > 0
}

// Parser turns raw text into structured resume and job representations. The
// taxonomies are fixed at construction; a Parser is safe for concurrent use.
type Parser struct {
	technical Taxonomy
	education Taxonomy
	soft      Taxonomy
}

func NewParser() *Parser {
	return &Parser{
		technical: TechnicalSkills,
		education: EducationKeywords,
		soft:      SoftSkills,
	}
}

// ParseResume extracts skills, education, soft skills and experience years
// from resume text.
func (p *Parser) ParseResume(text string) ResumeStructure {
	lowered := strings.ToLower(text)
	return ResumeStructure{
		TechnicalSkills: p.technical.Extract(lowered),
		Education:       p.education.Extract(lowered),
		SoftSkills:      p.soft.Extract(lowered),
		ExperienceYears: extractYears(lowered, resumeExperiencePatterns),
		RawTextLength:   utf8.RuneCountInString(text),
	}
}

// ParseJob builds the job requirements. Explicit fields take precedence over
// text extraction: if any is non-empty, all four are taken as given.
func (p *Parser) ParseJob(fields JobFields) JobRequirements {
	if fields.hasExplicitRequirements() {
		return JobRequirements{
			TechnicalSkills: lowerAll(fields.RequiredSkills),
			Education:       lowerAll(fields.RequiredEducation),
			SoftSkills:      lowerAll(fields.RequiredSoftSkills),
			ExperienceYears: fields.MinExperienceYears,
		}
	}

	full := strings.ToLower(fields.Description + " " + fields.Requirements)
	return JobRequirements{
		TechnicalSkills: p.technical.Extract(full),
		Education:       p.education.Extract(full),
		SoftSkills:      p.soft.Extract(full),
		ExperienceYears: extractYears(full, jobExperiencePatterns),
	}
}

func extractYears(lowered string, patterns []*regexp.Regexp) int {
	for _, pattern := range patterns {
		matches := pattern.FindAllStringSubmatch(lowered, -1)
		if len(matches) == 0 {
			continue
		}
		years := 0
		for _, m := range matches {
			if v, err := strconv.Atoi(m[1]); err == nil && v > years {
				years = v
			}
		}
		return years
	}
	return 0
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
