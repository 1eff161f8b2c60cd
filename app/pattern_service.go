package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"careerate/domain/recommend"
	"careerate/internal"
	"careerate/models"
	"careerate/ports"

	"github.com/montanaflynn/stats"
)

// PatternAnalysisService turns a user's raw activity history into structured
// workflow insights. The LLM provides the qualitative read; when it fails the
// service falls back to a heuristic summary built from the numeric aggregates
// so the recommendation pipeline always has something to work with.
type PatternAnalysisService struct {
	generator    ports.StructuredGenerator
	activityRepo ports.ActivityRepository
	metrics      FallbackRecorder
}

// NewPatternAnalysisService creates a pattern analysis service
func NewPatternAnalysisService(generator ports.StructuredGenerator, activityRepo ports.ActivityRepository) *PatternAnalysisService {
	return &PatternAnalysisService{
		generator:    generator,
		activityRepo: activityRepo,
	}
}

// WithMetrics attaches a fallback recorder and returns the service.
func (s *PatternAnalysisService) WithMetrics(rec FallbackRecorder) *PatternAnalysisService {
	s.metrics = rec
	return s
}

// AnalyzePatterns produces workflow insights for one (sanitized) user context.
func (s *PatternAnalysisService) AnalyzePatterns(ctx context.Context, user recommend.UserContext) recommend.PatternInsights {
	if s.generator != nil {
		raw, err := s.generator.GenerateJSON(ctx, BuildPatternAnalysisPrompt(user), 1500)
		if err == nil {
			var insights recommend.PatternInsights
			if jsonErr := json.Unmarshal(raw, &insights); jsonErr == nil {
				return insights
			} else {
				internal.Warnf("pattern analysis: unparseable LLM response for %s: %v", user.UserID, jsonErr)
			}
		} else {
			internal.Warnf("pattern analysis: LLM call failed for %s: %v", user.UserID, err)
		}
		recordLLMFallback(s.metrics, "pattern_analysis")
	}

	return s.heuristicInsights(user)
}

// heuristicInsights is the deterministic fallback when the LLM collaborator
// is unavailable or returns garbage.
func (s *PatternAnalysisService) heuristicInsights(user recommend.UserContext) recommend.PatternInsights {
	insights := recommend.PatternInsights{}

	if user.ProductivityScore < 0.5 {
		insights.Bottlenecks = append(insights.Bottlenecks,
			"Overall productivity is below average for tracked sessions")
		insights.Opportunities = append(insights.Opportunities,
			"Automating repetitive tasks could recover significant time")
	}
	if len(user.ToolsUsed) == 0 {
		insights.SkillGaps = append(insights.SkillGaps,
			"No AI tooling detected in current workflow")
	}
	if user.WorkDomain != "" {
		insights.Optimizations = append(insights.Optimizations,
			fmt.Sprintf("Adopt %s-focused AI assistants incrementally", user.WorkDomain))
	}

	return insights
}

// ActivityStats computes numeric aggregates over the trailing window. The
// averages and peak-hour extraction use the stats package rather than hand
// rolled loops.
func (s *PatternAnalysisService) ActivityStats(ctx context.Context, userID string, days int) (*models.ActivityStats, error) {
	if days <= 0 {
		days = 7
	}

	rows, err := s.activityRepo.ActivityByUser(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	result := &models.ActivityStats{
		UserID:               userID,
		PeriodDays:           days,
		ActivityDistribution: make(map[string]int),
		AIToolsUsage:         make(map[string]int),
	}
	if len(rows) == 0 {
		return result, nil
	}

	scores := make([]float64, 0, len(rows))
	hourCounts := make(map[int]int)
	for _, row := range rows {
		result.TotalSessions++
		result.TotalTimeSpent += row.TimeSpent
		result.ActivityDistribution[row.ActivityType]++
		scores = append(scores, row.ProductivityScore)
		hourCounts[row.RecordedAt.Hour()]++

		// 20 minutes in milliseconds
		if row.TimeSpent > 20*60*1000 {
			result.FocusSessionsCount++
		}
		if tools, ok := row.Patterns["ai_tools_detected"].([]interface{}); ok {
			for _, t := range tools {
				if name, ok := t.(string); ok {
					result.AIToolsUsage[name]++
				}
			}
		}
	}

	if mean, err := stats.Mean(scores); err == nil {
		result.AverageProductivityScore = mean
	}
	result.PeakHours = peakHours(hourCounts, 3)

	return result, nil
}

// peakHours returns the n busiest hours of day, most active first.
func peakHours(hourCounts map[int]int, n int) []int {
	type hourCount struct {
		hour  int
		count int
	}
	sorted := make([]hourCount, 0, len(hourCounts))
	for hour, count := range hourCounts {
		sorted = append(sorted, hourCount{hour, count})
	}
	// Ties break toward the earlier hour for stable output
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].hour < sorted[j].hour
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	hours := make([]int, len(sorted))
	for i, hc := range sorted {
		hours[i] = hc.hour
	}
	return hours
}
