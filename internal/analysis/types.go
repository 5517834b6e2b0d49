package analysis

// ResumeStructure is the structured view of a resume extracted from raw text.
type ResumeStructure struct {
	TechnicalSkills []string `json:"technical_skills"`
	Education       []string `json:"education"`
	SoftSkills      []string `json:"soft_skills"`
	ExperienceYears int      `json:"experience_years"`
	RawTextLength   int      `json:"raw_text_length"`
}

// JobRequirements is the structured view of what a job asks for, either taken
// from explicit job fields or extracted from posting text.
type JobRequirements struct {
	TechnicalSkills []string `json:"required_technical_skills"`
	Education       []string `json:"required_education"`
	SoftSkills      []string `json:"required_soft_skills"`
	ExperienceYears int      `json:"required_experience_years"`
}

// CategoryScores holds the per-category percentages, each rounded to 2
// decimals.
type CategoryScores struct {
	TechnicalSkills float64 `json:"technical_skills"`
	Education       float64 `json:"education"`
	SoftSkills      float64 `json:"soft_skills"`
	Experience      float64 `json:"experience"`
}

// CategoryLists partitions requirements per category (matched or missing).
type CategoryLists struct {
	TechnicalSkills []string `json:"technical_skills"`
	Education       []string `json:"education"`
	SoftSkills      []string `json:"soft_skills"`
}

// ExperienceMatch details the experience comparison.
type ExperienceMatch struct {
	RequiredYears    int  `json:"required_years"`
	ResumeYears      int  `json:"resume_years"`
	MeetsRequirement bool `json:"meets_requirement"`
}

// MatchResult is the scorer output.
type MatchResult struct {
	OverallScore   float64
	CategoryScores CategoryScores
	Matched        CategoryLists
	Missing        CategoryLists
	Experience     ExperienceMatch
}

// Analysis is the full payload attached to a successful Result.
type Analysis struct {
	ResumeStructure ResumeStructure `json:"resume_structure"`
	JobRequirements JobRequirements `json:"job_requirements"`
	OverallScore    float64         `json:"overall_score"`
	CategoryScores  CategoryScores  `json:"category_scores"`
	Matched         CategoryLists   `json:"matched"`
	Missing         CategoryLists   `json:"missing"`
	Experience      ExperienceMatch `json:"experience"`
	Summary         string          `json:"summary"`
}

// Result is the uniform analysis outcome. Failures set Error and leave
// Analysis nil with a zero score; callers branch on Error being empty.
type Result struct {
	Error    string    `json:"error,omitempty"`
	Score    float64   `json:"score"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

func (r Result) OK() bool { return r.Error == "" }

func errorResult(msg string) Result { return Result{Error: msg} }
