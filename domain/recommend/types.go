package recommend

import (
	"careerate/domain/core"
)

// SkillLevel is a user's proficiency tier or a tool's difficulty tier.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// ParseSkillLevel coerces arbitrary input to a valid skill level.
// Unknown values map to beginner rather than failing, so the scoring
// pipeline stays total over its input domain.
func ParseSkillLevel(s string) SkillLevel {
	switch SkillLevel(s) {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return SkillLevel(s)
	default:
		return SkillBeginner
	}
}

// ParseDifficultyLevel coerces a tool difficulty label. Unknown values map
// to intermediate, the catalog's historical default.
func ParseDifficultyLevel(s string) SkillLevel {
	switch SkillLevel(s) {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return SkillLevel(s)
	default:
		return SkillIntermediate
	}
}

// Rank returns the ordinal position of a level (beginner=1 .. advanced=3).
func (l SkillLevel) Rank() int {
	switch l {
	case SkillIntermediate:
		return 2
	case SkillAdvanced:
		return 3
	default:
		return 1
	}
}

// Impact is the predicted productivity impact tier of adopting a tool.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// UserContext is the sanitized, recommendation-relevant state of one user.
// It is built fresh per request and never mutated during a scoring pass.
type UserContext struct {
	UserID            string                 `json:"user_id"`
	SkillLevel        SkillLevel             `json:"skill_level"`
	WorkDomain        string                 `json:"work_domain"`
	ToolsUsed         []string               `json:"tools_used"`
	Goals             []string               `json:"goals"`
	ProductivityScore float64                `json:"productivity_score"`
	ActivityPatterns  map[string]interface{} `json:"activity_patterns,omitempty"`
	Preferences       map[string]interface{} `json:"preferences,omitempty"`
}

// Normalized returns a copy with all invariants enforced: productivity
// score clamped to [0,1] and skill level coerced to a valid value.
func (c UserContext) Normalized() UserContext {
	out := c
	out.SkillLevel = ParseSkillLevel(string(c.SkillLevel))
	out.ProductivityScore = clamp01(c.ProductivityScore)
	return out
}

// AITool is one catalog entry. Entries are immutable for the duration of a
// scoring pass; the catalog adapter owns creation and mutation.
type AITool struct {
	ID                    core.ToolID `json:"id"`
	Name                  string      `json:"name"`
	Category              string      `json:"category"`
	Description           string      `json:"description"`
	Capabilities          []string    `json:"capabilities"`
	UseCases              []string    `json:"use_cases"`
	PricingModel          string      `json:"pricing_model"`
	DifficultyLevel       SkillLevel  `json:"difficulty_level"`
	IntegrationComplexity int         `json:"integration_complexity"` // 1-5
	UserRating            float64     `json:"user_rating"`            // typically 0-5
}

// Recommendation is the output unit of a scoring pass, one per ranked tool.
type Recommendation struct {
	ToolID                   core.ToolID `json:"tool_id"`
	RelevanceScore           float64     `json:"relevance_score"`
	Confidence               float64     `json:"confidence"`
	Reasoning                string      `json:"reasoning"`
	ImplementationComplexity int         `json:"implementation_complexity"`
	ExpectedImpact           Impact      `json:"expected_impact"`
	LearningTimeHours        int         `json:"learning_time_hours"`
}

// PatternInsights is the structured summary of a user's workflow produced by
// upstream pattern analysis. All fields are optional; an empty value means
// the analysis had nothing to report (or was unavailable).
type PatternInsights struct {
	Bottlenecks    []string `json:"bottlenecks,omitempty"`
	Opportunities  []string `json:"opportunities,omitempty"`
	Inefficiencies []string `json:"inefficiencies,omitempty"`
	Optimizations  []string `json:"optimizations,omitempty"`
	SkillGaps      []string `json:"skill_gaps,omitempty"`
}

// Batch limits for one ranking pass. Discovery hands the ranker at most
// MaxCandidates tools; the ranker emits at most MaxRecommendations and
// generates explanations, learning paths and guides for shrinking prefixes.
const (
	MaxCandidates      = 20
	MaxRecommendations = 10
	ExplainTopN        = 3
	LearningPathTopN   = 5
	GuideTopN          = 3
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
