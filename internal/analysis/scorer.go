package analysis

import "math"

// Category weights. They sum to 1.
const (
	weightTechnical  = 0.50
	weightEducation  = 0.20
	weightSoftSkills = 0.15
	weightExperience = 0.15
)

// Score compares a parsed resume against job requirements and produces the
// weighted match. An empty requirement set scores 100 for its category.
func Score(resume ResumeStructure, job JobRequirements) MatchResult {
	techScore, techMatched, techMissing := categoryMatch(resume.TechnicalSkills, job.TechnicalSkills)
	eduScore, eduMatched, eduMissing := categoryMatch(resume.Education, job.Education)
	softScore, softMatched, softMissing := categoryMatch(resume.SoftSkills, job.SoftSkills)
	expScore, experience := experienceMatch(resume.ExperienceYears, job.ExperienceYears)

	// The overall score weighs the unrounded category scores; rounding is
	// applied once per reported value.
	overall := techScore*weightTechnical +
		eduScore*weightEducation +
		softScore*weightSoftSkills +
		expScore*weightExperience

	return MatchResult{
		OverallScore: round2(overall),
		CategoryScores: CategoryScores{
			TechnicalSkills: round2(techScore),
			Education:       round2(eduScore),
			SoftSkills:      round2(softScore),
			Experience:      round2(expScore),
		},
		Matched: CategoryLists{
			TechnicalSkills: techMatched,
			Education:       eduMatched,
			SoftSkills:      softMatched,
		},
		Missing: CategoryLists{
			TechnicalSkills: techMissing,
			Education:       eduMissing,
			SoftSkills:      softMissing,
		},
		Experience: experience,
	}
}

// categoryMatch partitions the required set into matched and missing,
// preserving required order, and scores the ratio as a percentage.
func categoryMatch(found, required []string) (score float64, matched, missing []string) {
	matched = make([]string, 0, len(required))
	missing = make([]string, 0, len(required))
	if len(required) == 0 {
		return 100, matched, missing
	}

	foundSet := make(map[string]struct{}, len(found))
	for _, f := range found {
		foundSet[f] = struct{}{}
	}
	for _, r := range required {
		if _, ok := foundSet[r]; ok {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}
	return float64(len(matched)) / float64(len(required)) * 100, matched, missing
}

// experienceMatch gives full credit at or above the requirement and
// fractional credit below it. No requirement is an automatic pass.
func experienceMatch(resumeYears, requiredYears int) (float64, ExperienceMatch) {
	detail := ExperienceMatch{
		RequiredYears:    requiredYears,
		ResumeYears:      resumeYears,
		MeetsRequirement: requiredYears <= 0 || resumeYears >= requiredYears,
	}
	if requiredYears <= 0 || resumeYears >= requiredYears {
		return 100, detail
	}
	return float64(resumeYears) / float64(requiredYears) * 100, detail
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
