package app

import (
	"context"
	"fmt"

	"careerate/domain/recommend"
	"careerate/internal"
	"careerate/ports"
)

// ToolDiscoveryService selects the candidate slice handed to the ranker.
// Domain-matched tools come first; the remainder of the batch is filled with
// the best rated tools overall. The batch never exceeds MaxCandidates.
type ToolDiscoveryService struct {
	toolRepo ports.ToolRepository
}

// NewToolDiscoveryService creates a tool discovery service
func NewToolDiscoveryService(toolRepo ports.ToolRepository) *ToolDiscoveryService {
	return &ToolDiscoveryService{toolRepo: toolRepo}
}

// DiscoverTools returns up to MaxCandidates catalog entries relevant to the
// user. An empty catalog yields an empty slice, not an error.
func (s *ToolDiscoveryService) DiscoverTools(ctx context.Context, user recommend.UserContext) ([]recommend.AITool, error) {
	seen := make(map[string]bool)
	var candidates []recommend.AITool

	if user.WorkDomain != "" {
		domainTools, err := s.toolRepo.SearchTools(ctx, user.WorkDomain, recommend.MaxCandidates)
		if err != nil {
			internal.Warnf("tool discovery: domain search failed for %q: %v", user.WorkDomain, err)
		} else {
			for _, tool := range domainTools {
				if !seen[tool.Name] {
					seen[tool.Name] = true
					candidates = append(candidates, tool)
				}
			}
		}
	}

	if len(candidates) < recommend.MaxCandidates {
		topRated, err := s.toolRepo.ListTools(ctx, recommend.MaxCandidates, 0)
		if err != nil {
			if len(candidates) == 0 {
				return nil, fmt.Errorf("failed to list tools: %w", err)
			}
			internal.Warnf("tool discovery: top-rated fill failed: %v", err)
		}
		for _, tool := range topRated {
			if len(candidates) >= recommend.MaxCandidates {
				break
			}
			if !seen[tool.Name] {
				seen[tool.Name] = true
				candidates = append(candidates, tool)
			}
		}
	}

	if len(candidates) > recommend.MaxCandidates {
		candidates = candidates[:recommend.MaxCandidates]
	}
	return candidates, nil
}
