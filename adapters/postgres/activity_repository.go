package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"careerate/models"
	"careerate/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// activityRepository implements the ActivityRepository interface
type activityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sqlx.DB) ports.ActivityRepository {
	return &activityRepository{db: db}
}

// StoreActivity inserts one activity row and returns its id
func (r *activityRepository) StoreActivity(ctx context.Context, pattern models.ActivityPattern) (int64, error) {
	patternsJSON, err := json.Marshal(pattern.Patterns)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal patterns: %w", err)
	}

	query := `INSERT INTO user_activity_patterns (
		user_id, activity_type, patterns, time_spent, productivity_score
	) VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		pattern.UserID, pattern.ActivityType, patternsJSON,
		pattern.TimeSpent, pattern.ProductivityScore,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to store activity: %w", err)
	}
	return id, nil
}

// ActivityByUser returns a user's rows within the trailing day window, newest first
func (r *activityRepository) ActivityByUser(ctx context.Context, userID string, days int) ([]models.ActivityPattern, error) {
	query := `SELECT id, user_id, activity_type, patterns, time_spent, productivity_score, recorded_at
		FROM user_activity_patterns
		WHERE user_id = $1
		  AND recorded_at >= NOW() - ($2 || ' days')::interval
		ORDER BY recorded_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var patterns []models.ActivityPattern
	for rows.Next() {
		var p models.ActivityPattern
		var patternsJSON []byte
		err := rows.Scan(
			&p.ID, &p.UserID, &p.ActivityType, &patternsJSON,
			&p.TimeSpent, &p.ProductivityScore, &p.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if len(patternsJSON) > 0 {
			if err := json.Unmarshal(patternsJSON, &p.Patterns); err != nil {
				return nil, fmt.Errorf("failed to unmarshal patterns: %w", err)
			}
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity: %w", err)
	}
	return patterns, nil
}

// WeeklyStats returns the rolling 7-day summary for a user
func (r *activityRepository) WeeklyStats(ctx context.Context, userID string) (*models.WeeklyStats, error) {
	query := `SELECT
		COUNT(*) AS total_sessions,
		COALESCE(SUM(time_spent), 0) AS total_time_spent,
		COALESCE(AVG(productivity_score), 0.0) AS avg_productivity_score,
		COALESCE(ARRAY_AGG(DISTINCT activity_type), '{}') AS activity_types
	FROM user_activity_patterns
	WHERE user_id = $1
	  AND recorded_at >= NOW() - INTERVAL '7 days'`

	var stats models.WeeklyStats
	var activityTypes pq.StringArray
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalSessions, &stats.TotalTimeSpent,
		&stats.AvgProductivityScore, &activityTypes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.WeeklyStats{}, nil
		}
		return nil, fmt.Errorf("failed to query weekly stats: %w", err)
	}
	stats.ActivityTypes = []string(activityTypes)
	return &stats, nil
}

// DeleteUserData removes every activity row for a user and returns the count
func (r *activityRepository) DeleteUserData(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_activity_patterns WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user data: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return affected, nil
}
