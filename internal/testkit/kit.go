// Package testkit provides fixtures and fake collaborators for tests.
package testkit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"careerate/domain/core"
	"careerate/domain/recommend"
)

// FixtureCatalog returns a small, stable tool catalog covering the scoring
// edge cases: a high-rated beginner tool, a harder advanced tool, and a
// mid-tier generalist.
func FixtureCatalog() []recommend.AITool {
	return []recommend.AITool{
		{
			ID:                    core.ToolID("tool-copilot"),
			Name:                  "GitHub Copilot",
			Category:              "code assistant",
			Description:           "AI pair programmer that suggests code completions",
			Capabilities:          []string{"code completion", "test generation"},
			UseCases:              []string{"software development", "refactoring"},
			PricingModel:          "subscription",
			DifficultyLevel:       recommend.SkillBeginner,
			IntegrationComplexity: 1,
			UserRating:            4.8,
		},
		{
			ID:                    core.ToolID("tool-terraform-ai"),
			Name:                  "Terraform Assist",
			Category:              "devops automation",
			Description:           "Generates and reviews infrastructure as code",
			Capabilities:          []string{"IaC generation", "drift detection"},
			UseCases:              []string{"devops", "cloud infrastructure"},
			PricingModel:          "freemium",
			DifficultyLevel:       recommend.SkillAdvanced,
			IntegrationComplexity: 4,
			UserRating:            4.2,
		},
		{
			ID:                    core.ToolID("tool-notion-ai"),
			Name:                  "Notion AI",
			Category:              "productivity",
			Description:           "Writing and summarization inside your workspace",
			Capabilities:          []string{"summarization", "drafting"},
			UseCases:              []string{"documentation", "knowledge management"},
			PricingModel:          "freemium",
			DifficultyLevel:       recommend.SkillIntermediate,
			IntegrationComplexity: 2,
			UserRating:            4.0,
		},
	}
}

// FixtureUser returns a mid-skill data-engineering user context.
func FixtureUser() recommend.UserContext {
	return recommend.UserContext{
		UserID:            "user-1",
		SkillLevel:        recommend.SkillIntermediate,
		WorkDomain:        "devops",
		ToolsUsed:         []string{"vim", "docker"},
		Goals:             []string{"automate deployments"},
		ProductivityScore: 0.55,
	}
}

// FakeEmbedder returns canned vectors keyed by input text; unknown inputs
// get the default vector. Thread safe, counts calls.
type FakeEmbedder struct {
	mu      sync.Mutex
	Vectors map[string][]float64
	Default []float64
	Err     error
	// FailOn makes Embed fail only for inputs containing this substring.
	FailOn string
	Calls  int
}

// Embed implements ports.Embedder
func (f *FakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++

	if f.Err != nil {
		return nil, f.Err
	}
	if f.FailOn != "" && strings.Contains(text, f.FailOn) {
		return nil, fmt.Errorf("embedding unavailable for %q", f.FailOn)
	}
	if v, ok := f.Vectors[text]; ok {
		return v, nil
	}
	if f.Default != nil {
		return f.Default, nil
	}
	return []float64{1, 0, 0}, nil
}

// FakeGenerator returns a fixed response or error for every prompt.
type FakeGenerator struct {
	mu       sync.Mutex
	Response string
	JSON     string
	Err      error
	Prompts  []string
}

// GenerateText implements ports.TextGenerator
func (f *FakeGenerator) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

// GenerateJSON implements ports.StructuredGenerator
func (f *FakeGenerator) GenerateJSON(ctx context.Context, prompt string, maxTokens int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return nil, f.Err
	}
	return []byte(f.JSON), nil
}
