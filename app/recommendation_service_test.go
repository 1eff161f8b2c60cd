package app

import (
	"context"
	"errors"
	"testing"

	"careerate/domain/core"
	"careerate/internal/testkit"
	"careerate/models"
)

// fakeRecRepo is an in-memory ports.RecommendationRepository.
type fakeRecRepo struct {
	saved    []models.StoredRecommendation
	statuses map[int64]models.RecommendationStatus
	err      error
}

func (f *fakeRecRepo) SaveRecommendation(ctx context.Context, rec models.StoredRecommendation) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, rec)
	return int64(len(f.saved)), nil
}

func (f *fakeRecRepo) ListUserRecommendations(ctx context.Context, userID string, status models.RecommendationStatus, limit, offset int) ([]models.StoredRecommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.StoredRecommendation
	for _, rec := range f.saved {
		if rec.UserID == userID && (status == "" || rec.Status == status) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecRepo) UpdateStatus(ctx context.Context, id int64, status models.RecommendationStatus) error {
	if f.err != nil {
		return f.err
	}
	if f.statuses == nil {
		f.statuses = make(map[int64]models.RecommendationStatus)
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeRecRepo) Analytics(ctx context.Context, userID string, days int) (*models.RecommendationAnalytics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.RecommendationAnalytics{TotalRecommendations: len(f.saved)}, nil
}

func newTestOrchestrator(toolRepo *fakeToolRepo, recRepo *fakeRecRepo, generator *testkit.FakeGenerator) *RecommendationService {
	privacy := NewPrivacyService()
	patterns := NewPatternAnalysisService(generator, &fakeActivityRepo{})
	discovery := NewToolDiscoveryService(toolRepo)
	ranker := NewRecommendationRanker(&testkit.FakeEmbedder{Default: []float64{1, 0, 0}}, generator)
	learning := NewLearningService(generator, generator)
	return NewRecommendationService(privacy, patterns, discovery, ranker, learning, recRepo)
}

func TestAnalyzeAndRecommendFullPass(t *testing.T) {
	toolRepo := &fakeToolRepo{tools: testkit.FixtureCatalog()}
	recRepo := &fakeRecRepo{}
	generator := &testkit.FakeGenerator{
		Response: "A solid fit for your workflow.",
		JSON:     `{"skill_gaps":["kubernetes"]}`,
	}
	svc := newTestOrchestrator(toolRepo, recRepo, generator)

	report, err := svc.AnalyzeAndRecommend(context.Background(), testkit.FixtureUser())
	if err != nil {
		t.Fatalf("AnalyzeAndRecommend failed: %v", err)
	}

	if len(report.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(report.Recommendations))
	}
	if !report.PrivacyCompliance {
		t.Error("report should assert privacy compliance")
	}
	if report.UserID == "user-1" {
		t.Error("report must carry the anonymized user id")
	}
	if report.UserID != core.AnonymizeUserID("user-1") {
		t.Errorf("unexpected report user id %q", report.UserID)
	}
	if len(report.PatternInsights.SkillGaps) != 1 {
		t.Errorf("insights should come from the generator, got %+v", report.PatternInsights)
	}
	if len(report.LearningPaths) != 3 {
		t.Errorf("expected a learning path per recommendation, got %d", len(report.LearningPaths))
	}
	if len(report.ImplementationGuides) != 3 {
		t.Errorf("expected a guide per top recommendation, got %d", len(report.ImplementationGuides))
	}

	if len(recRepo.saved) != 3 {
		t.Fatalf("every recommendation should be persisted, got %d", len(recRepo.saved))
	}
	if recRepo.saved[0].Status != models.RecommendationPending {
		t.Errorf("persisted recommendations start pending, got %s", recRepo.saved[0].Status)
	}
	if recRepo.saved[0].UserID != report.UserID {
		t.Error("persisted rows should carry the anonymized user id")
	}
}

func TestAnalyzeAndRecommendCatalogFailureAborts(t *testing.T) {
	toolRepo := &fakeToolRepo{
		searchErr: errors.New("index offline"),
		listErr:   errors.New("db down"),
	}
	svc := newTestOrchestrator(toolRepo, &fakeRecRepo{}, &testkit.FakeGenerator{})

	if _, err := svc.AnalyzeAndRecommend(context.Background(), testkit.FixtureUser()); err == nil {
		t.Error("catalog read failure should abort the pass")
	}
}

func TestAnalyzeAndRecommendPersistFailureDoesNotAbort(t *testing.T) {
	toolRepo := &fakeToolRepo{tools: testkit.FixtureCatalog()}
	recRepo := &fakeRecRepo{err: errors.New("insert failed")}
	generator := &testkit.FakeGenerator{Response: "ok", JSON: `{}`}
	svc := newTestOrchestrator(toolRepo, recRepo, generator)

	report, err := svc.AnalyzeAndRecommend(context.Background(), testkit.FixtureUser())
	if err != nil {
		t.Fatalf("persistence failure should not abort the pass: %v", err)
	}
	if len(report.Recommendations) == 0 {
		t.Error("report should still carry recommendations")
	}
}

func TestUpdateRecommendationStatusValidation(t *testing.T) {
	recRepo := &fakeRecRepo{}
	svc := newTestOrchestrator(&fakeToolRepo{}, recRepo, &testkit.FakeGenerator{})

	if err := svc.UpdateRecommendationStatus(context.Background(), 1, "archived"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.UpdateRecommendationStatus(context.Background(), 1, models.RecommendationLiked); err != nil {
		t.Fatalf("UpdateRecommendationStatus failed: %v", err)
	}
	if recRepo.statuses[1] != models.RecommendationLiked {
		t.Errorf("status not recorded, got %s", recRepo.statuses[1])
	}
}

func TestRecommendationHistoryAnonymizesLookup(t *testing.T) {
	toolRepo := &fakeToolRepo{tools: testkit.FixtureCatalog()}
	recRepo := &fakeRecRepo{}
	generator := &testkit.FakeGenerator{Response: "ok", JSON: `{}`}
	svc := newTestOrchestrator(toolRepo, recRepo, generator)

	if _, err := svc.AnalyzeAndRecommend(context.Background(), testkit.FixtureUser()); err != nil {
		t.Fatalf("AnalyzeAndRecommend failed: %v", err)
	}

	history, err := svc.RecommendationHistory(context.Background(), "user-1", "", 0, 0)
	if err != nil {
		t.Fatalf("RecommendationHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("raw-id lookup should find the anonymized rows, got %d", len(history))
	}
}
