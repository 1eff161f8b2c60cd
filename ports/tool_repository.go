package ports

import (
	"context"

	"careerate/domain/recommend"
)

// ToolRepository defines catalog data operations. The catalog is owned by
// this collaborator; the scoring core only ever reads candidate slices.
type ToolRepository interface {
	// ListTools returns tools ordered by rating descending, paginated.
	ListTools(ctx context.Context, limit, offset int) ([]recommend.AITool, error)

	// ToolsByCategory returns tools in a category, best rated first.
	ToolsByCategory(ctx context.Context, category string) ([]recommend.AITool, error)

	// SearchTools matches name, description, capability or use case.
	SearchTools(ctx context.Context, term string, limit int) ([]recommend.AITool, error)

	// CreateTool inserts a catalog entry, upserting on name.
	CreateTool(ctx context.Context, tool recommend.AITool) error

	// UpdateToolRating replaces a tool's aggregate rating.
	UpdateToolRating(ctx context.Context, toolID string, rating float64) error
}
