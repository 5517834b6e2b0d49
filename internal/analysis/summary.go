package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	matchedTechCap  = 6
	matchedEduCap   = 2
	matchedSoftCap  = 2
	matchedShownCap = 8

	missingTechCap  = 4
	missingEduCap   = 1
	missingSoftCap  = 1
	missingShownCap = 6
)

// Summarize renders a MatchResult as the banded recruiter-facing text. The
// output is fully determined by the match, so repeated runs over unchanged
// inputs produce identical summaries.
func Summarize(m MatchResult) string {
	score := m.OverallScore

	var rating, action string
	switch {
	case score >= 90:
		rating, action = "EXCEPTIONAL", "HIGHLY RECOMMENDED"
	case score >= 80:
		rating, action = "EXCELLENT", "STRONGLY RECOMMENDED"
	case score >= 70:
		rating, action = "GOOD", "RECOMMENDED"
	case score >= 60:
		rating, action = "FAIR", "CONSIDER WITH CAUTION"
	case score >= 50:
		rating, action = "MARGINAL", "BORDERLINE"
	default:
		rating, action = "POOR", "NOT RECOMMENDED"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MATCH SCORE: %s%% - %s (%s)\n\n", formatScore(score), rating, action)
	fmt.Fprintf(&b, "Technical: %s%% | Education: %s%% | Soft Skills: %s%% | Experience: %s%%\n\n",
		formatScore(m.CategoryScores.TechnicalSkills),
		formatScore(m.CategoryScores.Education),
		formatScore(m.CategoryScores.SoftSkills),
		formatScore(m.CategoryScores.Experience))

	matched := capLists(m.Matched, matchedTechCap, matchedEduCap, matchedSoftCap)
	if len(matched) > 0 {
		shown := matched
		if len(shown) > matchedShownCap {
			shown = shown[:matchedShownCap]
		}
		fmt.Fprintf(&b, "[+] MATCHED: %s", strings.Join(shown, ", "))
		if len(matched) > matchedShownCap {
			fmt.Fprintf(&b, " (+%d more)", len(matched)-matchedShownCap)
		}
		b.WriteByte('\n')
	}

	missing := capLists(m.Missing, missingTechCap, missingEduCap, missingSoftCap)
	if len(missing) > 0 {
		shown := missing
		if len(shown) > missingShownCap {
			shown = shown[:missingShownCap]
		}
		fmt.Fprintf(&b, "[-] MISSING: %s", strings.Join(shown, ", "))
		if len(missing) > missingShownCap {
			fmt.Fprintf(&b, " (+%d more)", len(missing)-missingShownCap)
		}
		b.WriteByte('\n')
	}

	if m.Experience.RequiredYears > 0 {
		if m.Experience.MeetsRequirement {
			fmt.Fprintf(&b, "\n[!] Experience: %d+ years (meets %d+ requirement)\n",
				m.Experience.ResumeYears, m.Experience.RequiredYears)
		} else {
			fmt.Fprintf(&b, "\n[!] Experience: %d years (needs %d+ years)\n",
				m.Experience.ResumeYears, m.Experience.RequiredYears)
		}
	}

	b.WriteString("\nRECOMMENDATION: ")
	switch {
	case score >= 80:
		b.WriteString("Schedule interview - well qualified for role")
	case score >= 70:
		b.WriteString("Solid candidate with minor gaps - assess learning ability")
	case score >= 60:
		b.WriteString("Has potential but notable gaps - probe depth carefully")
	case score >= 50:
		b.WriteString("Borderline fit - would need significant development")
	default:
		b.WriteString("Does not meet minimum requirements")
	}
	return b.String()
}

func capLists(lists CategoryLists, techCap, eduCap, softCap int) []string {
	out := make([]string, 0, techCap+eduCap+softCap)
	out = append(out, capped(lists.TechnicalSkills, techCap)...)
	out = append(out, capped(lists.Education, eduCap)...)
	out = append(out, capped(lists.SoftSkills, softCap)...)
	return out
}

func capped(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}

// formatScore renders a rounded score without trailing zeros, so 100 prints
// as "100" and 66.67 as "66.67".
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
