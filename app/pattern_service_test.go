package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"careerate/internal/testkit"
	"careerate/models"
)

// fakeActivityRepo is an in-memory ports.ActivityRepository.
type fakeActivityRepo struct {
	rows    []models.ActivityPattern
	weekly  *models.WeeklyStats
	err     error
	deleted int64
	stored  []models.ActivityPattern
}

func (f *fakeActivityRepo) StoreActivity(ctx context.Context, pattern models.ActivityPattern) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.stored = append(f.stored, pattern)
	return int64(len(f.stored)), nil
}

func (f *fakeActivityRepo) ActivityByUser(ctx context.Context, userID string, days int) ([]models.ActivityPattern, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeActivityRepo) WeeklyStats(ctx context.Context, userID string) (*models.WeeklyStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.weekly == nil {
		return &models.WeeklyStats{}, nil
	}
	return f.weekly, nil
}

func (f *fakeActivityRepo) DeleteUserData(ctx context.Context, userID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}

func TestAnalyzePatternsParsesLLMResponse(t *testing.T) {
	generator := &testkit.FakeGenerator{
		JSON: `{"bottlenecks":["context switching"],"skill_gaps":["kubernetes"]}`,
	}
	svc := NewPatternAnalysisService(generator, &fakeActivityRepo{})

	insights := svc.AnalyzePatterns(context.Background(), testkit.FixtureUser())

	if len(insights.Bottlenecks) != 1 || insights.Bottlenecks[0] != "context switching" {
		t.Errorf("expected parsed bottleneck, got %+v", insights.Bottlenecks)
	}
	if len(insights.SkillGaps) != 1 || insights.SkillGaps[0] != "kubernetes" {
		t.Errorf("expected parsed skill gap, got %+v", insights.SkillGaps)
	}
	if len(generator.Prompts) != 1 {
		t.Errorf("expected 1 prompt, got %d", len(generator.Prompts))
	}
}

func TestAnalyzePatternsFallsBackOnLLMError(t *testing.T) {
	generator := &testkit.FakeGenerator{Err: errors.New("provider down")}
	svc := NewPatternAnalysisService(generator, &fakeActivityRepo{})

	user := testkit.FixtureUser()
	user.ProductivityScore = 0.3
	user.ToolsUsed = nil

	insights := svc.AnalyzePatterns(context.Background(), user)

	if len(insights.Bottlenecks) == 0 {
		t.Error("heuristic fallback should flag low productivity")
	}
	if len(insights.SkillGaps) == 0 {
		t.Error("heuristic fallback should flag missing AI tooling")
	}
	if len(insights.Optimizations) == 0 {
		t.Error("heuristic fallback should suggest domain optimizations")
	}
}

func TestAnalyzePatternsFallsBackOnGarbageJSON(t *testing.T) {
	generator := &testkit.FakeGenerator{JSON: "here is your analysis:"}
	svc := NewPatternAnalysisService(generator, &fakeActivityRepo{})

	user := testkit.FixtureUser()
	user.ProductivityScore = 0.3

	insights := svc.AnalyzePatterns(context.Background(), user)
	if len(insights.Bottlenecks) == 0 {
		t.Error("unparseable LLM output should fall through to heuristics")
	}
}

func TestActivityStatsAggregation(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	repo := &fakeActivityRepo{rows: []models.ActivityPattern{
		{
			ActivityType:      "coding",
			TimeSpent:         3600000,
			ProductivityScore: 0.8,
			RecordedAt:        base,
			Patterns:          map[string]interface{}{"ai_tools_detected": []interface{}{"copilot"}},
		},
		{
			ActivityType:      "debugging",
			TimeSpent:         1800000,
			ProductivityScore: 0.6,
			RecordedAt:        base.Add(time.Hour),
		},
		{
			ActivityType:      "coding",
			TimeSpent:         600000,
			ProductivityScore: 0.4,
			RecordedAt:        base,
			Patterns:          map[string]interface{}{"ai_tools_detected": []interface{}{"copilot", "chatgpt"}},
		},
	}}
	svc := NewPatternAnalysisService(nil, repo)

	result, err := svc.ActivityStats(context.Background(), "abc123", 7)
	if err != nil {
		t.Fatalf("ActivityStats failed: %v", err)
	}

	if result.TotalSessions != 3 {
		t.Errorf("expected 3 sessions, got %d", result.TotalSessions)
	}
	if result.TotalTimeSpent != 6000000 {
		t.Errorf("expected 6000000ms total, got %d", result.TotalTimeSpent)
	}
	// Sessions over 20 minutes count as focus sessions: 60min and 30min qualify.
	if result.FocusSessionsCount != 2 {
		t.Errorf("expected 2 focus sessions, got %d", result.FocusSessionsCount)
	}
	if result.ActivityDistribution["coding"] != 2 {
		t.Errorf("expected 2 coding sessions, got %d", result.ActivityDistribution["coding"])
	}
	if result.AIToolsUsage["copilot"] != 2 || result.AIToolsUsage["chatgpt"] != 1 {
		t.Errorf("unexpected tool usage: %+v", result.AIToolsUsage)
	}

	want := (0.8 + 0.6 + 0.4) / 3
	if diff := result.AverageProductivityScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected avg %v, got %v", want, result.AverageProductivityScore)
	}

	// Hour 9 has two rows, hour 10 one; busiest first.
	if len(result.PeakHours) != 2 || result.PeakHours[0] != 9 || result.PeakHours[1] != 10 {
		t.Errorf("unexpected peak hours: %v", result.PeakHours)
	}
}

func TestActivityStatsEmptyHistory(t *testing.T) {
	svc := NewPatternAnalysisService(nil, &fakeActivityRepo{})

	result, err := svc.ActivityStats(context.Background(), "abc123", 0)
	if err != nil {
		t.Fatalf("ActivityStats failed: %v", err)
	}
	if result.TotalSessions != 0 {
		t.Errorf("expected empty stats, got %d sessions", result.TotalSessions)
	}
	if result.PeriodDays != 7 {
		t.Errorf("non-positive days should default to 7, got %d", result.PeriodDays)
	}
}
