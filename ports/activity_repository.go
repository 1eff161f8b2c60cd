package ports

import (
	"context"

	"careerate/models"
)

// ActivityRepository stores and reads activity rows synced from the
// browser extension.
type ActivityRepository interface {
	// StoreActivity inserts one activity row and returns its id.
	StoreActivity(ctx context.Context, pattern models.ActivityPattern) (int64, error)

	// ActivityByUser returns a user's rows within the trailing day window,
	// newest first.
	ActivityByUser(ctx context.Context, userID string, days int) ([]models.ActivityPattern, error)

	// WeeklyStats returns the rolling 7-day summary for a user.
	WeeklyStats(ctx context.Context, userID string) (*models.WeeklyStats, error)

	// DeleteUserData removes every activity row for a user (GDPR erasure)
	// and returns the number of rows removed.
	DeleteUserData(ctx context.Context, userID string) (int64, error)
}
