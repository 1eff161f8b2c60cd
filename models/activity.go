package models

import "time"

// ActivityPattern is one stored activity row synced from the browser
// extension. Patterns carries the raw extension payload (domain, url, title,
// detected AI tools, free-form context) as JSONB.
type ActivityPattern struct {
	ID                int64                  `json:"id" db:"id"`
	UserID            string                 `json:"user_id" db:"user_id"`
	ActivityType      string                 `json:"activity_type" db:"activity_type"`
	Patterns          map[string]interface{} `json:"patterns" db:"-"`
	TimeSpent         int64                  `json:"time_spent" db:"time_spent"` // milliseconds
	ProductivityScore float64                `json:"productivity_score" db:"productivity_score"`
	RecordedAt        time.Time              `json:"recorded_at" db:"recorded_at"`
}

// ActivityStats aggregates a user's activity over a period.
type ActivityStats struct {
	UserID                   string         `json:"user_id"`
	TotalSessions            int            `json:"total_sessions"`
	TotalTimeSpent           int64          `json:"total_time_spent"`
	AverageProductivityScore float64        `json:"average_productivity_score"`
	ActivityDistribution     map[string]int `json:"activity_distribution"`
	AIToolsUsage             map[string]int `json:"ai_tools_usage"`
	PeakHours                []int          `json:"peak_hours"`
	FocusSessionsCount       int            `json:"focus_sessions_count"`
	PeriodDays               int            `json:"period_days"`
}

// WeeklyStats is the rolling 7-day summary used by pattern analysis.
type WeeklyStats struct {
	TotalSessions        int      `json:"total_sessions" db:"total_sessions"`
	TotalTimeSpent       int64    `json:"total_time_spent" db:"total_time_spent"`
	AvgProductivityScore float64  `json:"avg_productivity_score" db:"avg_productivity_score"`
	ActivityTypes        []string `json:"activity_types" db:"-"`
}
