package recommend

import "math"

// ImplementationComplexity adjusts the tool's integration complexity for the
// user's skill level, clamped back to the 1-5 scale. Beginners see one step
// harder, advanced users one step easier.
func ImplementationComplexity(tool AITool, user UserContext) int {
	adjustment := 0
	switch user.SkillLevel {
	case SkillBeginner:
		adjustment = 1
	case SkillAdvanced:
		adjustment = -1
	}

	complexity := tool.IntegrationComplexity + adjustment
	if complexity < 1 {
		complexity = 1
	}
	if complexity > 5 {
		complexity = 5
	}
	return complexity
}

// PredictImpact assigns the three-tier impact heuristic. The bands overlap
// by construction, so evaluation order matters: the high-rating low-
// productivity case must be checked before the generic medium band.
func PredictImpact(tool AITool, user UserContext) Impact {
	if user.ProductivityScore < 0.6 && tool.UserRating > 4.5 {
		return ImpactHigh
	}
	if user.ProductivityScore < 0.8 {
		return ImpactMedium
	}
	return ImpactLow
}

// EstimateLearningHours estimates ramp-up time from the user's base hours
// scaled by the tool's difficulty multiplier, floored to whole hours.
func EstimateLearningHours(tool AITool, user UserContext) int {
	var base float64
	switch user.SkillLevel {
	case SkillIntermediate:
		base = 4
	case SkillAdvanced:
		base = 2
	default:
		base = 8
	}

	var multiplier float64
	switch tool.DifficultyLevel {
	case SkillBeginner:
		multiplier = 1.0
	case SkillAdvanced:
		multiplier = 2.0
	default:
		multiplier = 1.5
	}

	return int(math.Floor(base * multiplier))
}
