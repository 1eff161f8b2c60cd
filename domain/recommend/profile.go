package recommend

import (
	"fmt"
	"strings"
)

// UserProfileText serializes a user context (plus pattern insights) into the
// deterministic text fed to the embedding collaborator. Field order is fixed:
// two requests with identical inputs produce byte-identical profiles, which
// is what makes the batch-level embedding cache safe.
func UserProfileText(user UserContext, insights PatternInsights) string {
	parts := []string{
		fmt.Sprintf("User skill level: %s", user.SkillLevel),
		fmt.Sprintf("Work domain: %s", user.WorkDomain),
		fmt.Sprintf("Current tools: %s", strings.Join(user.ToolsUsed, ", ")),
		fmt.Sprintf("Goals: %s", strings.Join(user.Goals, ", ")),
		fmt.Sprintf("Productivity score: %v", user.ProductivityScore),
	}

	if len(insights.SkillGaps) > 0 {
		parts = append(parts, fmt.Sprintf("Skill gaps: %s", strings.Join(insights.SkillGaps, ", ")))
	}

	return strings.Join(parts, " ")
}

// ToolProfileText serializes a catalog entry into embedding input.
func ToolProfileText(tool AITool) string {
	return fmt.Sprintf("%s %s %s %s",
		tool.Name,
		tool.Description,
		strings.Join(tool.Capabilities, " "),
		strings.Join(tool.UseCases, " "))
}

// FallbackReasoning is the deterministic explanation substituted whenever the
// text-generation collaborator fails or is cancelled. It must never be empty.
func FallbackReasoning(user UserContext) string {
	return fmt.Sprintf("Recommended based on relevance to your %s work and %s skill level.",
		user.WorkDomain, user.SkillLevel)
}
