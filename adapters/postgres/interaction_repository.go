package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"careerate/models"
	"careerate/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// interactionRepository implements the InteractionRepository interface
type interactionRepository struct {
	db *sqlx.DB
}

// NewInteractionRepository creates a new agent interaction repository
func NewInteractionRepository(db *sqlx.DB) ports.InteractionRepository {
	return &interactionRepository{db: db}
}

// SaveInteraction inserts one agent exchange
func (r *interactionRepository) SaveInteraction(ctx context.Context, interaction models.AgentInteraction) error {
	cliHistoryJSON, err := json.Marshal(interaction.CLIHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal cli history: %w", err)
	}
	fileContextJSON, err := json.Marshal(interaction.FileContext)
	if err != nil {
		return fmt.Errorf("failed to marshal file context: %w", err)
	}

	id := interaction.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `INSERT INTO agent_interactions (
		id, user_id, session_id, interaction_type, query_text,
		cli_history, file_context, agent_reply, error_message,
		request_timestamp, response_timestamp
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.ExecContext(ctx, query,
		id, interaction.UserID, interaction.SessionID, interaction.InteractionType,
		interaction.QueryText, cliHistoryJSON, fileContextJSON,
		interaction.AgentReply, interaction.ErrorMessage,
		interaction.RequestTimestamp, interaction.ResponseTimestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}
	return nil
}

// ListUserInteractions returns a user's exchanges, newest first
func (r *interactionRepository) ListUserInteractions(ctx context.Context, userID string, limit, offset int) ([]models.AgentInteraction, error) {
	query := `SELECT id, user_id, session_id, interaction_type, query_text,
		cli_history, file_context, agent_reply, error_message,
		request_timestamp, response_timestamp, created_at
	FROM agent_interactions
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var interactions []models.AgentInteraction
	for rows.Next() {
		var in models.AgentInteraction
		var cliHistoryJSON, fileContextJSON []byte
		err := rows.Scan(
			&in.ID, &in.UserID, &in.SessionID, &in.InteractionType, &in.QueryText,
			&cliHistoryJSON, &fileContextJSON, &in.AgentReply, &in.ErrorMessage,
			&in.RequestTimestamp, &in.ResponseTimestamp, &in.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		if len(cliHistoryJSON) > 0 {
			if err := json.Unmarshal(cliHistoryJSON, &in.CLIHistory); err != nil {
				return nil, fmt.Errorf("failed to unmarshal cli history: %w", err)
			}
		}
		if len(fileContextJSON) > 0 {
			if err := json.Unmarshal(fileContextJSON, &in.FileContext); err != nil {
				return nil, fmt.Errorf("failed to unmarshal file context: %w", err)
			}
		}
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}
	return interactions, nil
}

// SaveFeedback inserts one feedback row
func (r *interactionRepository) SaveFeedback(ctx context.Context, feedback models.AgentFeedback) error {
	id := feedback.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `INSERT INTO agent_feedback (
		id, user_id, session_id, interaction_id, feedback_type, feedback_text, rating
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		id, feedback.UserID, feedback.SessionID, feedback.InteractionID,
		feedback.FeedbackType, feedback.FeedbackText, feedback.Rating,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}
