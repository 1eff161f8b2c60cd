package ports

import (
	"context"

	"careerate/models"
)

// RecommendationRepository persists scored recommendations for later
// retrieval and feedback tracking.
type RecommendationRepository interface {
	// SaveRecommendation inserts one stored recommendation and returns its id.
	SaveRecommendation(ctx context.Context, rec models.StoredRecommendation) (int64, error)

	// ListUserRecommendations returns a user's recommendations, newest
	// first, optionally filtered by status (empty = all).
	ListUserRecommendations(ctx context.Context, userID string, status models.RecommendationStatus, limit, offset int) ([]models.StoredRecommendation, error)

	// UpdateStatus transitions a stored recommendation's status.
	UpdateStatus(ctx context.Context, id int64, status models.RecommendationStatus) error

	// Analytics summarizes recommendation outcomes over the trailing window.
	Analytics(ctx context.Context, userID string, days int) (*models.RecommendationAnalytics, error)
}
