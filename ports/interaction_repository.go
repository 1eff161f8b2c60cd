package ports

import (
	"context"

	"careerate/models"
)

// InteractionRepository stores DevOps-agent exchanges and feedback.
type InteractionRepository interface {
	// SaveInteraction inserts one agent exchange.
	SaveInteraction(ctx context.Context, interaction models.AgentInteraction) error

	// ListUserInteractions returns a user's exchanges, newest first.
	ListUserInteractions(ctx context.Context, userID string, limit, offset int) ([]models.AgentInteraction, error)

	// SaveFeedback inserts one feedback row.
	SaveFeedback(ctx context.Context, feedback models.AgentFeedback) error
}
