package analysis

import "strings"

// Entry is one canonical skill with the surface variants that count as a
// mention of it. Matching is case-insensitive substring search.
type Entry struct {
	Canonical string
	Variants  []string
}

// Taxonomy is an ordered list of entries. Order is load-bearing: extraction
// results follow it, which keeps parses and summaries deterministic.
type Taxonomy []Entry

// Extract returns the canonical names of every entry with at least one
// variant present in the lowercased text, in taxonomy order.
func (t Taxonomy) Extract(lowered string) []string {
	found := make([]string, 0, 8)
	for _, entry := range t {
		for _, variant := range entry.Variants {
			if strings.Contains(lowered, variant) {
				found = append(found, entry.Canonical)
				break
			}
		}
	}
	return found
}

func single(name string) Entry { return Entry{Canonical: name, Variants: []string{name}} }

// TechnicalSkills covers the languages, frameworks, datastores, cloud and
// tooling terms recognized in resumes and job posts.
var TechnicalSkills = Taxonomy{
	{Canonical: "python", Variants: []string{"python", "py"}},
	{Canonical: "javascript", Variants: []string{"javascript", "js", "ecmascript"}},
	{Canonical: "typescript", Variants: []string{"typescript", "ts"}},
	{Canonical: "react", Variants: []string{"react", "reactjs", "react.js"}},
	{Canonical: "vue", Variants: []string{"vue", "vuejs", "vue.js"}},
	{Canonical: "angular", Variants: []string{"angular", "angularjs"}},
	{Canonical: "node.js", Variants: []string{"node.js", "nodejs", "node"}},
	single("django"),
	single("flask"),
	{Canonical: "express", Variants: []string{"express", "expressjs", "express.js"}},
	single("fastapi"),
	{Canonical: "spring", Variants: []string{"spring", "spring boot", "springboot"}},
	single("mysql"),
	{Canonical: "postgresql", Variants: []string{"postgresql", "postgres", "psql"}},
	{Canonical: "mongodb", Variants: []string{"mongodb", "mongo"}},
	single("redis"),
	single("sqlite"),
	{Canonical: "aws", Variants: []string{"aws", "amazon web services"}},
	{Canonical: "azure", Variants: []string{"azure", "microsoft azure"}},
	{Canonical: "gcp", Variants: []string{"gcp", "google cloud"}},
	single("docker"),
	{Canonical: "kubernetes", Variants: []string{"kubernetes", "k8s"}},
	{Canonical: "git", Variants: []string{"git", "github", "gitlab"}},
	{Canonical: "ci/cd", Variants: []string{"ci/cd", "cicd", "jenkins", "github actions"}},
	single("agile"),
	single("scrum"),
	{Canonical: "rest", Variants: []string{"rest", "restful", "rest api"}},
	single("graphql"),
	{Canonical: "html", Variants: []string{"html", "html5"}},
	{Canonical: "css", Variants: []string{"css", "css3"}},
}

// EducationKeywords covers degree levels and relevant fields of study.
var EducationKeywords = Taxonomy{
	{Canonical: "bachelor", Variants: []string{"bachelor", "bachelor's", "bs", "b.s.", "ba", "b.a."}},
	{Canonical: "master", Variants: []string{"master", "master's", "ms", "m.s.", "ma", "m.a.", "mba"}},
	{Canonical: "phd", Variants: []string{"phd", "ph.d.", "doctorate"}},
	{Canonical: "computer science", Variants: []string{"computer science", "cs", "computer engineering"}},
	{Canonical: "software engineering", Variants: []string{"software engineering"}},
	{Canonical: "information technology", Variants: []string{"information technology", "it"}},
}

// SoftSkills covers the interpersonal competencies recognized in text.
var SoftSkills = Taxonomy{
	{Canonical: "communication", Variants: []string{"communication", "communicate"}},
	{Canonical: "problem-solving", Variants: []string{"problem-solving", "problem solving", "analytical"}},
	{Canonical: "leadership", Variants: []string{"leadership", "lead", "led", "mentor", "mentoring"}},
	{Canonical: "teamwork", Variants: []string{"teamwork", "team", "collaborate", "collaboration"}},
	{Canonical: "adaptability", Variants: []string{"adaptable", "adaptability", "flexible"}},
}
