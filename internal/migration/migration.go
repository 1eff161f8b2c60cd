package migration

import (
	"context"

	"careerate/internal"
	"careerate/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createAIToolsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create ai_tools table")
	}

	if err := r.createActivityPatternsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create user_activity_patterns table")
	}

	if err := r.createRecommendationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create recommendations table")
	}

	if err := r.createAgentInteractionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create agent_interactions table")
	}

	if err := r.createAgentFeedbackTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create agent_feedback table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createAIToolsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ai_tools (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			category VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			capabilities JSONB NOT NULL DEFAULT '[]'::jsonb,
			use_cases JSONB NOT NULL DEFAULT '[]'::jsonb,
			pricing_model VARCHAR(50) NOT NULL DEFAULT 'freemium',
			integration_complexity INTEGER NOT NULL DEFAULT 2
				CHECK (integration_complexity BETWEEN 1 AND 5),
			learning_curve VARCHAR(50) NOT NULL DEFAULT 'intermediate',
			user_rating DECIMAL(3,2) NOT NULL DEFAULT 0.0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createActivityPatternsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS user_activity_patterns (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			activity_type VARCHAR(100) NOT NULL,
			patterns JSONB NOT NULL DEFAULT '{}'::jsonb,
			time_spent BIGINT NOT NULL DEFAULT 0,
			productivity_score DECIMAL(4,3) NOT NULL DEFAULT 0.0,
			recorded_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createRecommendationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recommendations (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			tool_id UUID NOT NULL REFERENCES ai_tools(id) ON DELETE CASCADE,
			relevance_score DECIMAL(4,3) NOT NULL,
			confidence DECIMAL(4,3) NOT NULL,
			reasoning TEXT NOT NULL DEFAULT '',
			expected_impact VARCHAR(20) NOT NULL DEFAULT 'Low',
			implementation_complexity INTEGER NOT NULL DEFAULT 2,
			estimated_learning_hours INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createAgentInteractionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS agent_interactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id VARCHAR(64) NOT NULL,
			session_id VARCHAR(100) NOT NULL DEFAULT '',
			interaction_type VARCHAR(50) NOT NULL DEFAULT 'general_query',
			query_text TEXT NOT NULL,
			cli_history JSONB,
			file_context JSONB,
			agent_reply TEXT NOT NULL DEFAULT '',
			error_message TEXT NOT NULL DEFAULT '',
			request_timestamp TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			response_timestamp TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createAgentFeedbackTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS agent_feedback (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id VARCHAR(64) NOT NULL,
			session_id VARCHAR(100) NOT NULL DEFAULT '',
			interaction_id UUID REFERENCES agent_interactions(id) ON DELETE SET NULL,
			feedback_type VARCHAR(50) NOT NULL DEFAULT 'general',
			feedback_text TEXT NOT NULL DEFAULT '',
			rating INTEGER CHECK (rating BETWEEN 1 AND 5),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		// AI tools indexes
		"CREATE INDEX IF NOT EXISTS idx_tools_category ON ai_tools(category)",
		"CREATE INDEX IF NOT EXISTS idx_tools_rating ON ai_tools(user_rating DESC)",

		// Activity pattern indexes
		"CREATE INDEX IF NOT EXISTS idx_activity_user_id ON user_activity_patterns(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_activity_user_recorded ON user_activity_patterns(user_id, recorded_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_activity_type ON user_activity_patterns(activity_type)",

		// Recommendation indexes
		"CREATE INDEX IF NOT EXISTS idx_recommendations_user_id ON recommendations(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_recommendations_user_created ON recommendations(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_recommendations_status ON recommendations(status)",
		"CREATE INDEX IF NOT EXISTS idx_recommendations_tool_id ON recommendations(tool_id)",

		// Agent interaction indexes
		"CREATE INDEX IF NOT EXISTS idx_interactions_user_id ON agent_interactions(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_interactions_user_created ON agent_interactions(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_feedback_user_id ON agent_feedback(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_feedback_interaction_id ON agent_feedback(interaction_id)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Index creation failures are not fatal
			internal.Warnf("migration: failed to create index: %v", err)
		}
	}

	return nil
}
