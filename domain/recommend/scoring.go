package recommend

import (
	"strings"
)

// Relevance weights. They are fixed product constants and must sum to 1.0.
const (
	WeightSemantic      = 0.30
	WeightSkillMatch    = 0.25
	WeightDomain        = 0.25
	WeightCompatibility = 0.20
)

// SkillMatch scores how well a tool's difficulty fits the user's level.
// Tools one step above the user score highest (growth bias).
func SkillMatch(tool AITool, user UserContext) float64 {
	diff := tool.DifficultyLevel.Rank() - user.SkillLevel.Rank()
	switch diff {
	case 1:
		return 1.0
	case 0:
		return 0.8
	case -1:
		return 0.6
	default:
		return 0.3
	}
}

// DomainRelevance scores keyword overlap between the user's work domain and
// the tool's category plus use cases. An unset domain returns the neutral
// 0.5 rather than 0 so tools are not penalized when the field is missing.
func DomainRelevance(tool AITool, user UserContext) float64 {
	keywords := strings.Fields(strings.ToLower(user.WorkDomain))
	if len(keywords) == 0 {
		return 0.5
	}

	toolText := strings.ToLower(tool.Category + " " + strings.Join(tool.UseCases, " "))

	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(toolText, keyword) {
			matches++
		}
	}

	score := float64(matches) / float64(len(keywords))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ToolCompatibility scores how a tool complements the user's existing tools.
// The category lookup for tools_used is not wired up yet, so this returns a
// fixed neutral value. Callers must not assume it reflects real compatibility
// analysis, only that it is a constant in [0,1].
func ToolCompatibility(tool AITool, user UserContext) float64 {
	return 0.7
}

// RelevanceScore combines the semantic similarity with the three structured
// heuristics under the fixed weighting. Semantic similarity is cosine output
// in [-1,1] and is deliberately not floored before weighting: a strongly
// dissimilar pair pulls the sum below what the heuristics alone would give.
// The result is clamped to [0,1].
func RelevanceScore(semantic, skillMatch, domainRelevance, compatibility float64) float64 {
	score := semantic*WeightSemantic +
		skillMatch*WeightSkillMatch +
		domainRelevance*WeightDomain +
		compatibility*WeightCompatibility
	return clamp01(score)
}

// ConfidenceFor derives confidence from relevance. Confidence is inflated by
// 20% and capped at 1.0, so it is always >= the relevance score.
func ConfidenceFor(relevance float64) float64 {
	c := relevance * 1.2
	if c > 1.0 {
		c = 1.0
	}
	return c
}
