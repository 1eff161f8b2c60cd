package models

import (
	"time"

	"careerate/domain/recommend"
)

// AnalysisReport is the full output of one analyze-and-recommend pass:
// pattern insights, the ranked recommendations, and the downstream learning
// paths and implementation guides generated for the top entries.
type AnalysisReport struct {
	UserID               string                     `json:"user_id"`
	AnalysisTimestamp    time.Time                  `json:"analysis_timestamp"`
	PatternInsights      recommend.PatternInsights  `json:"pattern_insights"`
	Recommendations      []recommend.Recommendation `json:"recommendations"`
	LearningPaths        []LearningPath             `json:"learning_paths"`
	ImplementationGuides []ImplementationGuide      `json:"implementation_guides"`
	PrivacyCompliance    bool                       `json:"privacy_compliance"`
}
