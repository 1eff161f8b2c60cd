package app

import (
	"context"
	"fmt"
	"time"

	"careerate/domain/recommend"
	"careerate/internal"
	"careerate/models"
	"careerate/ports"

	"golang.org/x/sync/errgroup"
)

// RecommendationService orchestrates one full analyze-and-recommend pass:
// sanitize, analyze patterns and discover candidates in parallel, rank,
// generate learning material, persist, report. Collaborator failures along
// the way degrade individual sections of the report; only a catalog read
// failure aborts the pass.
type RecommendationService struct {
	privacy   *PrivacyService
	patterns  *PatternAnalysisService
	discovery *ToolDiscoveryService
	ranker    *RecommendationRanker
	learning  *LearningService
	recRepo   ports.RecommendationRepository
}

// NewRecommendationService creates the orchestrator
func NewRecommendationService(
	privacy *PrivacyService,
	patterns *PatternAnalysisService,
	discovery *ToolDiscoveryService,
	ranker *RecommendationRanker,
	learning *LearningService,
	recRepo ports.RecommendationRepository,
) *RecommendationService {
	return &RecommendationService{
		privacy:   privacy,
		patterns:  patterns,
		discovery: discovery,
		ranker:    ranker,
		learning:  learning,
		recRepo:   recRepo,
	}
}

// AnalyzeAndRecommend runs the full pipeline for one user context.
func (s *RecommendationService) AnalyzeAndRecommend(ctx context.Context, rawUser recommend.UserContext) (*models.AnalysisReport, error) {
	user := s.privacy.SanitizeUserContext(rawUser)

	// Pattern analysis and tool discovery are independent; run them
	// concurrently. Discovery errors abort the pass, insights never do.
	var insights recommend.PatternInsights
	var candidates []recommend.AITool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		insights = s.patterns.AnalyzePatterns(gctx, user)
		return nil
	})
	g.Go(func() error {
		var err error
		candidates, err = s.discovery.DiscoverTools(gctx, user)
		if err != nil {
			return fmt.Errorf("tool discovery failed: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recs := s.ranker.Rank(ctx, user, insights, candidates)

	report := &models.AnalysisReport{
		UserID:               user.UserID,
		AnalysisTimestamp:    time.Now().UTC(),
		PatternInsights:      insights,
		Recommendations:      recs,
		LearningPaths:        s.learning.GeneratePaths(ctx, user, recs),
		ImplementationGuides: s.learning.GenerateGuides(ctx, user, recs),
		PrivacyCompliance:    true,
	}

	s.persistRecommendations(ctx, user.UserID, recs)
	return report, nil
}

// persistRecommendations stores the ranked list for later feedback tracking.
// Storage failures are logged, not surfaced: the report the caller already
// holds is the product of the pass.
func (s *RecommendationService) persistRecommendations(ctx context.Context, userID string, recs []recommend.Recommendation) {
	if s.recRepo == nil {
		return
	}
	for _, rec := range recs {
		stored := models.StoredRecommendation{
			UserID:                   userID,
			ToolID:                   rec.ToolID.String(),
			RelevanceScore:           rec.RelevanceScore,
			Confidence:               rec.Confidence,
			Reasoning:                rec.Reasoning,
			ImplementationComplexity: rec.ImplementationComplexity,
			ExpectedImpact:           string(rec.ExpectedImpact),
			LearningTimeHours:        rec.LearningTimeHours,
			Status:                   models.RecommendationPending,
		}
		if _, err := s.recRepo.SaveRecommendation(ctx, stored); err != nil {
			internal.Warnf("failed to persist recommendation for tool %s: %v", stored.ToolID, err)
		}
	}
}

// UpdateRecommendationStatus records what the user did with a stored
// recommendation.
func (s *RecommendationService) UpdateRecommendationStatus(ctx context.Context, id int64, status models.RecommendationStatus) error {
	switch status {
	case models.RecommendationPending, models.RecommendationLiked,
		models.RecommendationDismissed, models.RecommendationImplemented:
	default:
		return fmt.Errorf("invalid recommendation status: %s", status)
	}
	return s.recRepo.UpdateStatus(ctx, id, status)
}

// RecommendationHistory returns a user's stored recommendations. The user id
// is anonymized the same way the scoring pipeline does, so history lookups
// line up with what was persisted.
func (s *RecommendationService) RecommendationHistory(ctx context.Context, rawUserID string, status models.RecommendationStatus, limit, offset int) ([]models.StoredRecommendation, error) {
	user := s.privacy.SanitizeUserContext(recommend.UserContext{UserID: rawUserID})
	if limit <= 0 {
		limit = 50
	}
	return s.recRepo.ListUserRecommendations(ctx, user.UserID, status, limit, offset)
}

// RecommendationAnalytics summarizes outcomes over the trailing window.
func (s *RecommendationService) RecommendationAnalytics(ctx context.Context, rawUserID string, days int) (*models.RecommendationAnalytics, error) {
	user := s.privacy.SanitizeUserContext(recommend.UserContext{UserID: rawUserID})
	if days <= 0 {
		days = 30
	}
	return s.recRepo.Analytics(ctx, user.UserID, days)
}
