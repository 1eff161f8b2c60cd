package models

import "time"

// RecommendationStatus tracks what the user did with a stored recommendation.
type RecommendationStatus string

const (
	RecommendationPending     RecommendationStatus = "pending"
	RecommendationLiked       RecommendationStatus = "liked"
	RecommendationDismissed   RecommendationStatus = "dismissed"
	RecommendationImplemented RecommendationStatus = "implemented"
)

// StoredRecommendation is the persisted form of a scored recommendation.
// Scores are snapshots: they are never recomputed after storage because they
// depend on the user context at scoring time.
type StoredRecommendation struct {
	ID                       int64                `json:"id" db:"id"`
	UserID                   string               `json:"user_id" db:"user_id"`
	ToolID                   string               `json:"tool_id" db:"tool_id"`
	RelevanceScore           float64              `json:"relevance_score" db:"relevance_score"`
	Confidence               float64              `json:"confidence" db:"confidence"`
	Reasoning                string               `json:"reasoning" db:"reasoning"`
	ImplementationComplexity int                  `json:"implementation_complexity" db:"implementation_complexity"`
	ExpectedImpact           string               `json:"expected_impact" db:"expected_impact"`
	LearningTimeHours        int                  `json:"learning_time_hours" db:"learning_time_hours"`
	Status                   RecommendationStatus `json:"status" db:"status"`
	CreatedAt                time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time            `json:"updated_at" db:"updated_at"`
}

// RecommendationAnalytics summarizes recommendation outcomes over a window.
type RecommendationAnalytics struct {
	TotalRecommendations int     `json:"total_recommendations" db:"total_recommendations"`
	ImplementedCount     int     `json:"implemented_count" db:"implemented_count"`
	LikedCount           int     `json:"liked_count" db:"liked_count"`
	DismissedCount       int     `json:"dismissed_count" db:"dismissed_count"`
	AvgRelevanceScore    float64 `json:"avg_relevance_score" db:"avg_relevance_score"`
	ImplementationRate   float64 `json:"implementation_rate"`
	LikeRate             float64 `json:"like_rate"`
	DismissalRate        float64 `json:"dismissal_rate"`
}
