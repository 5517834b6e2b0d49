package auth

const (
	// Job scopes
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsDelete = "jobs:delete"

	// Application scopes
	ScopeApplicationsRead    = "applications:read"
	ScopeApplicationsWrite   = "applications:write"
	ScopeApplicationsReview  = "applications:review" // status changes, resume analysis
	ScopeApplicationsAnalyze = "applications:analyze"

	// Notification scopes
	ScopeNotificationsRead  = "notifications:read"
	ScopeNotificationsWrite = "notifications:write"
)

// ScopeGroups maps account roles to the scopes their tokens carry.
var ScopeGroups = map[string][]string{
	"applicant": {
		ScopeJobsRead,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeNotificationsRead,
		ScopeNotificationsWrite,
	},
	"employer": {
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeJobsDelete,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsReview,
		ScopeApplicationsAnalyze,
		ScopeNotificationsRead,
		ScopeNotificationsWrite,
	},
}

// ScopesForRole returns a copy of the scope set for a role, defaulting to the
// applicant set for unknown roles.
func ScopesForRole(role string) []string {
	scopes, ok := ScopeGroups[role]
	if !ok {
		scopes = ScopeGroups["applicant"]
	}
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}
