package app

import (
	"strings"

	"careerate/domain/core"
	"careerate/domain/recommend"
)

// PrivacyService anonymizes user data before it crosses any AI boundary.
// All downstream services only ever see the pseudonymous id and the filtered
// pattern payload.
type PrivacyService struct{}

// NewPrivacyService creates a privacy service
func NewPrivacyService() *PrivacyService {
	return &PrivacyService{}
}

// sensitiveKeys never leave the service, whatever the extension sends.
var sensitiveKeys = []string{
	"email", "password", "token", "api_key", "apikey", "secret",
	"credential", "auth", "ssn", "phone",
}

// safePreferenceKeys is the allowlist of preference keys that may cross the
// AI boundary. Anything else is dropped.
var safePreferenceKeys = map[string]bool{
	"theme":                 true,
	"notifications":         true,
	"learning_style":        true,
	"difficulty_preference": true,
}

// sensitiveGoalTerms disqualify a goal from being forwarded verbatim.
var sensitiveGoalTerms = []string{"salary", "personal", "confidential", "private"}

// SanitizeUserContext replaces the raw user id with its anonymized form,
// strips sensitive keys from the activity pattern payload, reduces
// preferences to the allowlist, and drops goals that mention sensitive terms.
func (s *PrivacyService) SanitizeUserContext(user recommend.UserContext) recommend.UserContext {
	out := user.Normalized()
	out.UserID = core.AnonymizeUserID(user.UserID)
	out.ActivityPatterns = s.SanitizePatterns(user.ActivityPatterns)
	out.Preferences = s.SanitizePreferences(user.Preferences)
	out.Goals = s.SanitizeGoals(out.Goals)
	return out
}

// SanitizePreferences keeps only allowlisted preference keys.
func (s *PrivacyService) SanitizePreferences(preferences map[string]interface{}) map[string]interface{} {
	if preferences == nil {
		return nil
	}
	clean := make(map[string]interface{}, len(preferences))
	for key, value := range preferences {
		if safePreferenceKeys[strings.ToLower(key)] {
			clean[key] = value
		}
	}
	return clean
}

// SanitizeGoals filters out goals containing sensitive terms.
func (s *PrivacyService) SanitizeGoals(goals []string) []string {
	clean := make([]string, 0, len(goals))
	for _, goal := range goals {
		lower := strings.ToLower(goal)
		sensitive := false
		for _, term := range sensitiveGoalTerms {
			if strings.Contains(lower, term) {
				sensitive = true
				break
			}
		}
		if !sensitive {
			clean = append(clean, goal)
		}
	}
	return clean
}

// SanitizePatterns removes keys that look like credentials or direct
// identifiers. Nested maps are filtered recursively.
func (s *PrivacyService) SanitizePatterns(patterns map[string]interface{}) map[string]interface{} {
	if patterns == nil {
		return nil
	}

	clean := make(map[string]interface{}, len(patterns))
	for key, value := range patterns {
		if isSensitiveKey(key) {
			continue
		}
		if nested, ok := value.(map[string]interface{}); ok {
			clean[key] = s.SanitizePatterns(nested)
			continue
		}
		clean[key] = value
	}
	return clean
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
