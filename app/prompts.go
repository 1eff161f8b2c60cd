package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"careerate/domain/recommend"
)

// BuildPatternAnalysisPrompt asks the model to summarize workflow bottlenecks
// and opportunities from a user's activity patterns.
func BuildPatternAnalysisPrompt(user recommend.UserContext) string {
	patterns, _ := json.MarshalIndent(user.ActivityPatterns, "", "  ")
	return fmt.Sprintf(`Analyze the following user workflow patterns and identify optimization opportunities:

User Context:
- Skill Level: %s
- Work Domain: %s
- Current Tools: %s
- Productivity Score: %.2f
- Activity Patterns: %s

Please provide:
1. Key workflow bottlenecks
2. Productivity improvement opportunities
3. Tool usage inefficiencies
4. Recommended workflow optimizations
5. Skill gaps that could be addressed with AI tools

Format response as JSON with the structure:
{
    "bottlenecks": [],
    "opportunities": [],
    "inefficiencies": [],
    "optimizations": [],
    "skill_gaps": []
}`,
		user.SkillLevel,
		user.WorkDomain,
		strings.Join(user.ToolsUsed, ", "),
		user.ProductivityScore,
		string(patterns))
}

// BuildReasoningPrompt asks for a short explanation of why one tool was
// recommended to one user.
func BuildReasoningPrompt(tool recommend.AITool, user recommend.UserContext, relevanceScore float64) string {
	return fmt.Sprintf(`Explain why %s is recommended for this user in 2-3 sentences:

Tool: %s
Description: %s
Capabilities: %s

User Context:
- Skill Level: %s
- Work Domain: %s
- Goals: %s
- Current Tools: %s

Relevance Score: %.2f

Provide a clear, actionable explanation.`,
		tool.Name,
		tool.Name,
		tool.Description,
		strings.Join(tool.Capabilities, ", "),
		user.SkillLevel,
		user.WorkDomain,
		strings.Join(user.Goals, ", "),
		strings.Join(user.ToolsUsed, ", "),
		relevanceScore)
}

// BuildLearningPathPrompt asks for a structured JSON learning path for one tool.
func BuildLearningPathPrompt(user recommend.UserContext, toolID string) string {
	return fmt.Sprintf(`Create a detailed learning path for mastering this AI tool:

Tool ID: %s
User Skill Level: %s
Work Domain: %s
Goals: %s

Please provide a structured learning path with:
1. Learning objectives
2. Prerequisites
3. Step-by-step modules (5-7 steps)
4. Estimated time for each step
5. Practical exercises
6. Success metrics

Format as JSON:
{
    "tool_id": "%s",
    "title": "Learning Path Title",
    "objectives": [],
    "prerequisites": [],
    "modules": [
        {
            "step": 1,
            "title": "Module Title",
            "description": "Module description",
            "estimated_hours": 2,
            "exercises": [],
            "resources": []
        }
    ],
    "success_metrics": [],
    "total_duration_hours": 20
}`,
		toolID,
		user.SkillLevel,
		user.WorkDomain,
		strings.Join(user.Goals, ", "),
		toolID)
}

// BuildImplementationGuidePrompt asks for a practical markdown setup guide.
func BuildImplementationGuidePrompt(user recommend.UserContext, rec recommend.Recommendation) string {
	return fmt.Sprintf(`Create a detailed implementation guide for integrating this AI tool:

Tool ID: %s
User Context: %s, %s
Implementation Complexity: %d/5

Provide:
1. Getting started checklist
2. Step-by-step setup instructions
3. Integration examples
4. Common pitfalls and solutions
5. Success metrics
6. Next steps for optimization

Format as practical, actionable guide.`,
		rec.ToolID,
		user.WorkDomain,
		user.SkillLevel,
		rec.ImplementationComplexity)
}
