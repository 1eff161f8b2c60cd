package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"careerate/models"
	"careerate/ports"

	"github.com/jmoiron/sqlx"
)

// recommendationRepository implements the RecommendationRepository interface
type recommendationRepository struct {
	db *sqlx.DB
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db *sqlx.DB) ports.RecommendationRepository {
	return &recommendationRepository{db: db}
}

// SaveRecommendation inserts one stored recommendation and returns its id
func (r *recommendationRepository) SaveRecommendation(ctx context.Context, rec models.StoredRecommendation) (int64, error) {
	status := rec.Status
	if status == "" {
		status = models.RecommendationPending
	}

	query := `INSERT INTO recommendations (
		user_id, tool_id, relevance_score, confidence, reasoning,
		expected_impact, implementation_complexity, estimated_learning_hours, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.ToolID, rec.RelevanceScore, rec.Confidence, rec.Reasoning,
		rec.ExpectedImpact, rec.ImplementationComplexity, rec.LearningTimeHours, status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save recommendation: %w", err)
	}
	return id, nil
}

// ListUserRecommendations returns a user's recommendations, newest first
func (r *recommendationRepository) ListUserRecommendations(ctx context.Context, userID string, status models.RecommendationStatus, limit, offset int) ([]models.StoredRecommendation, error) {
	query := `SELECT id, user_id, tool_id, relevance_score, confidence, reasoning,
		expected_impact, implementation_complexity, estimated_learning_hours,
		status, created_at, updated_at
	FROM recommendations
	WHERE user_id = $1
	  AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, userID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.StoredRecommendation
	for rows.Next() {
		var rec models.StoredRecommendation
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.ToolID, &rec.RelevanceScore, &rec.Confidence,
			&rec.Reasoning, &rec.ExpectedImpact, &rec.ImplementationComplexity,
			&rec.LearningTimeHours, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}
	return recs, nil
}

// UpdateStatus transitions a stored recommendation's status
func (r *recommendationRepository) UpdateStatus(ctx context.Context, id int64, status models.RecommendationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recommendations SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update recommendation status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recommendation not found: %d", id)
	}
	return nil
}

// Analytics summarizes recommendation outcomes over the trailing window
func (r *recommendationRepository) Analytics(ctx context.Context, userID string, days int) (*models.RecommendationAnalytics, error) {
	query := `SELECT
		COUNT(*) AS total_recommendations,
		COUNT(*) FILTER (WHERE status = 'implemented') AS implemented_count,
		COUNT(*) FILTER (WHERE status = 'liked') AS liked_count,
		COUNT(*) FILTER (WHERE status = 'dismissed') AS dismissed_count,
		COALESCE(AVG(relevance_score), 0.0) AS avg_relevance_score
	FROM recommendations
	WHERE user_id = $1
	  AND created_at >= NOW() - ($2 || ' days')::interval`

	var a models.RecommendationAnalytics
	err := r.db.QueryRowContext(ctx, query, userID, days).Scan(
		&a.TotalRecommendations, &a.ImplementedCount, &a.LikedCount,
		&a.DismissedCount, &a.AvgRelevanceScore,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.RecommendationAnalytics{}, nil
		}
		return nil, fmt.Errorf("failed to query analytics: %w", err)
	}

	if a.TotalRecommendations > 0 {
		total := float64(a.TotalRecommendations)
		a.ImplementationRate = float64(a.ImplementedCount) / total
		a.LikeRate = float64(a.LikedCount) / total
		a.DismissalRate = float64(a.DismissedCount) / total
	}
	return &a, nil
}
