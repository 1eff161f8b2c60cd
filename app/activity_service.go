package app

import (
	"context"
	"fmt"

	"careerate/domain/core"
	"careerate/domain/recommend"
	"careerate/internal"
	"careerate/models"
	"careerate/ports"
)

// ActivityService handles extension activity sync, aggregate stats and GDPR
// erasure. All rows are stored under the anonymized user id.
type ActivityService struct {
	privacy      *PrivacyService
	patterns     *PatternAnalysisService
	activityRepo ports.ActivityRepository
}

// NewActivityService creates an activity service
func NewActivityService(privacy *PrivacyService, patterns *PatternAnalysisService, activityRepo ports.ActivityRepository) *ActivityService {
	return &ActivityService{
		privacy:      privacy,
		patterns:     patterns,
		activityRepo: activityRepo,
	}
}

// SyncActivity stores one batch of activity rows from the extension.
// Malformed rows are coerced, not rejected: the extension retries whole
// batches, so a poisoned row must never wedge the sync loop.
func (s *ActivityService) SyncActivity(ctx context.Context, rawUserID string, patterns []models.ActivityPattern) (int, error) {
	if rawUserID == "" {
		return 0, fmt.Errorf("missing user id")
	}
	userID := core.AnonymizeUserID(rawUserID)

	stored := 0
	for _, pattern := range patterns {
		pattern.UserID = userID
		pattern.Patterns = s.privacy.SanitizePatterns(pattern.Patterns)
		if pattern.ActivityType == "" {
			pattern.ActivityType = "unknown"
		}
		if pattern.ProductivityScore < 0 {
			pattern.ProductivityScore = 0
		}
		if pattern.ProductivityScore > 1 {
			pattern.ProductivityScore = 1
		}
		if pattern.TimeSpent < 0 {
			pattern.TimeSpent = 0
		}

		if _, err := s.activityRepo.StoreActivity(ctx, pattern); err != nil {
			internal.Warnf("activity sync: failed to store row for %s: %v", userID, err)
			continue
		}
		stored++
	}
	return stored, nil
}

// Stats returns numeric aggregates for the user over the trailing window.
func (s *ActivityService) Stats(ctx context.Context, rawUserID string, days int) (*models.ActivityStats, error) {
	return s.patterns.ActivityStats(ctx, core.AnonymizeUserID(rawUserID), days)
}

// Insights runs pattern analysis over the user's stored activity.
func (s *ActivityService) Insights(ctx context.Context, rawUserID string, days int) (recommend.PatternInsights, error) {
	if days <= 0 {
		days = 7
	}
	userID := core.AnonymizeUserID(rawUserID)

	rows, err := s.activityRepo.ActivityByUser(ctx, userID, days)
	if err != nil {
		return recommend.PatternInsights{}, fmt.Errorf("failed to load activity: %w", err)
	}

	user := recommend.UserContext{
		UserID:           userID,
		ActivityPatterns: mergePatterns(rows),
	}
	if stats, err := s.activityRepo.WeeklyStats(ctx, userID); err == nil && stats != nil {
		user.ProductivityScore = stats.AvgProductivityScore
	}

	return s.patterns.AnalyzePatterns(ctx, user), nil
}

// DeleteUserData erases every activity row for the user (GDPR) and reports
// how many rows were removed.
func (s *ActivityService) DeleteUserData(ctx context.Context, rawUserID string) (int64, error) {
	if rawUserID == "" {
		return 0, fmt.Errorf("missing user id")
	}
	return s.activityRepo.DeleteUserData(ctx, core.AnonymizeUserID(rawUserID))
}

// mergePatterns flattens stored rows into one pattern map keyed by activity
// type, the shape pattern analysis expects.
func mergePatterns(rows []models.ActivityPattern) map[string]interface{} {
	if len(rows) == 0 {
		return nil
	}
	merged := make(map[string]interface{})
	for _, row := range rows {
		if row.Patterns != nil {
			merged[row.ActivityType] = row.Patterns
		}
	}
	return merged
}
