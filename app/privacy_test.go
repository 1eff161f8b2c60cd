package app

import (
	"testing"

	"careerate/domain/core"
	"careerate/domain/recommend"
)

func TestSanitizeUserContextAnonymizesID(t *testing.T) {
	svc := NewPrivacyService()

	out := svc.SanitizeUserContext(recommend.UserContext{UserID: "alice@example.com"})

	if out.UserID == "alice@example.com" {
		t.Fatal("raw user id must not survive sanitization")
	}
	if out.UserID != core.AnonymizeUserID("alice@example.com") {
		t.Errorf("anonymized id mismatch: %s", out.UserID)
	}
	if len(out.UserID) != 16 {
		t.Errorf("anonymized id should be 16 hex chars, got %d", len(out.UserID))
	}
}

func TestSanitizePatternsStripsSensitiveKeys(t *testing.T) {
	svc := NewPrivacyService()

	clean := svc.SanitizePatterns(map[string]interface{}{
		"domain":       "github.com",
		"api_key":      "sk-12345",
		"user_email":   "alice@example.com",
		"AuthToken":    "bearer xyz",
		"productivity": 0.8,
	})

	if _, ok := clean["api_key"]; ok {
		t.Error("api_key should be stripped")
	}
	if _, ok := clean["user_email"]; ok {
		t.Error("keys containing 'email' should be stripped")
	}
	if _, ok := clean["AuthToken"]; ok {
		t.Error("sensitive key match should be case insensitive")
	}
	if clean["domain"] != "github.com" {
		t.Errorf("benign keys should survive, got %v", clean["domain"])
	}
	if clean["productivity"] != 0.8 {
		t.Errorf("benign values should survive, got %v", clean["productivity"])
	}
}

func TestSanitizePatternsRecursesIntoNestedMaps(t *testing.T) {
	svc := NewPrivacyService()

	clean := svc.SanitizePatterns(map[string]interface{}{
		"session": map[string]interface{}{
			"password": "hunter2",
			"duration": 120,
		},
	})

	nested, ok := clean["session"].(map[string]interface{})
	if !ok {
		t.Fatalf("nested map should survive as a map, got %T", clean["session"])
	}
	if _, ok := nested["password"]; ok {
		t.Error("nested password should be stripped")
	}
	if nested["duration"] != 120 {
		t.Errorf("nested benign value should survive, got %v", nested["duration"])
	}
}

func TestSanitizePatternsNil(t *testing.T) {
	svc := NewPrivacyService()
	if got := svc.SanitizePatterns(nil); got != nil {
		t.Errorf("nil input should stay nil, got %v", got)
	}
}

func TestSanitizePreferencesAllowlist(t *testing.T) {
	svc := NewPrivacyService()

	clean := svc.SanitizePreferences(map[string]interface{}{
		"theme":          "dark",
		"learning_style": "visual",
		"home_address":   "1 Main St",
		"billing_plan":   "pro",
	})

	if clean["theme"] != "dark" {
		t.Errorf("allowlisted keys should survive, got %v", clean["theme"])
	}
	if clean["learning_style"] != "visual" {
		t.Errorf("allowlisted keys should survive, got %v", clean["learning_style"])
	}
	if _, ok := clean["home_address"]; ok {
		t.Error("unlisted preference keys should be dropped")
	}
	if _, ok := clean["billing_plan"]; ok {
		t.Error("unlisted preference keys should be dropped")
	}
}

func TestSanitizeGoalsFiltersSensitiveTerms(t *testing.T) {
	svc := NewPrivacyService()

	clean := svc.SanitizeGoals([]string{
		"automate deployments",
		"negotiate a higher Salary",
		"learn kubernetes",
		"keep this private",
	})

	want := []string{"automate deployments", "learn kubernetes"}
	if len(clean) != len(want) {
		t.Fatalf("expected %d goals, got %d: %v", len(want), len(clean), clean)
	}
	for i, goal := range want {
		if clean[i] != goal {
			t.Errorf("goal %d: want %q, got %q", i, goal, clean[i])
		}
	}
}
