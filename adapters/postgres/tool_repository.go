package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"careerate/domain/core"
	"careerate/domain/recommend"
	apperrors "careerate/internal/errors"
	"careerate/ports"

	"github.com/jmoiron/sqlx"
)

// toolRepository implements the ToolRepository interface
type toolRepository struct {
	db *sqlx.DB
}

// NewToolRepository creates a new AI tool catalog repository
func NewToolRepository(db *sqlx.DB) ports.ToolRepository {
	return &toolRepository{db: db}
}

const toolColumns = `id, name, category, description, capabilities, use_cases,
	pricing_model, learning_curve, integration_complexity, user_rating`

// ListTools returns catalog entries ordered by rating descending
func (r *toolRepository) ListTools(ctx context.Context, limit, offset int) ([]recommend.AITool, error) {
	query := `SELECT ` + toolColumns + `
		FROM ai_tools
		ORDER BY user_rating DESC, name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	return scanTools(rows)
}

// ToolsByCategory returns tools in a category, best rated first
func (r *toolRepository) ToolsByCategory(ctx context.Context, category string) ([]recommend.AITool, error) {
	query := `SELECT ` + toolColumns + `
		FROM ai_tools
		WHERE category = $1
		ORDER BY user_rating DESC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools by category: %w", err)
	}
	defer rows.Close()

	return scanTools(rows)
}

// SearchTools matches the term against name, description, capabilities and
// use cases (case-insensitive substring match)
func (r *toolRepository) SearchTools(ctx context.Context, term string, limit int) ([]recommend.AITool, error) {
	query := `SELECT ` + toolColumns + `
		FROM ai_tools
		WHERE name ILIKE $1
		   OR description ILIKE $1
		   OR capabilities::text ILIKE $1
		   OR use_cases::text ILIKE $1
		ORDER BY user_rating DESC, name ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search tools: %w", err)
	}
	defer rows.Close()

	return scanTools(rows)
}

// CreateTool inserts a catalog entry
func (r *toolRepository) CreateTool(ctx context.Context, tool recommend.AITool) error {
	capsJSON, err := json.Marshal(tool.Capabilities)
	if err != nil {
		return fmt.Errorf("failed to marshal capabilities: %w", err)
	}
	useCasesJSON, err := json.Marshal(tool.UseCases)
	if err != nil {
		return fmt.Errorf("failed to marshal use cases: %w", err)
	}

	query := `INSERT INTO ai_tools (
		id, name, category, description, capabilities, use_cases,
		pricing_model, learning_curve, integration_complexity, user_rating
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (name) DO UPDATE SET
		category = EXCLUDED.category,
		description = EXCLUDED.description,
		capabilities = EXCLUDED.capabilities,
		use_cases = EXCLUDED.use_cases,
		pricing_model = EXCLUDED.pricing_model,
		learning_curve = EXCLUDED.learning_curve,
		integration_complexity = EXCLUDED.integration_complexity,
		user_rating = EXCLUDED.user_rating,
		updated_at = NOW()`

	_, err = r.db.ExecContext(ctx, query,
		tool.ID, tool.Name, tool.Category, tool.Description, capsJSON, useCasesJSON,
		tool.PricingModel, tool.DifficultyLevel, tool.IntegrationComplexity, tool.UserRating,
	)
	if err != nil {
		return fmt.Errorf("failed to create tool: %w", err)
	}
	return nil
}

// UpdateToolRating replaces a tool's aggregate rating
func (r *toolRepository) UpdateToolRating(ctx context.Context, toolID string, rating float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ai_tools SET user_rating = $1, updated_at = NOW() WHERE id = $2`,
		rating, toolID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tool rating: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("tool")
	}
	return nil
}

func scanTools(rows *sql.Rows) ([]recommend.AITool, error) {
	var tools []recommend.AITool
	for rows.Next() {
		var tool recommend.AITool
		var id string
		var learningCurve string
		var capsJSON, useCasesJSON []byte

		err := rows.Scan(
			&id, &tool.Name, &tool.Category, &tool.Description, &capsJSON, &useCasesJSON,
			&tool.PricingModel, &learningCurve, &tool.IntegrationComplexity, &tool.UserRating,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}

		tool.ID = core.ToolID(id)
		tool.DifficultyLevel = recommend.ParseDifficultyLevel(learningCurve)
		if len(capsJSON) > 0 {
			if err := json.Unmarshal(capsJSON, &tool.Capabilities); err != nil {
				return nil, fmt.Errorf("failed to unmarshal capabilities: %w", err)
			}
		}
		if len(useCasesJSON) > 0 {
			if err := json.Unmarshal(useCasesJSON, &tool.UseCases); err != nil {
				return nil, fmt.Errorf("failed to unmarshal use cases: %w", err)
			}
		}

		tools = append(tools, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tools: %w", err)
	}
	return tools, nil
}
