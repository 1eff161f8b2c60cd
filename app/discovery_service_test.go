package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"careerate/domain/core"
	"careerate/domain/recommend"
	"careerate/internal/testkit"
)

// fakeToolRepo is an in-memory ports.ToolRepository.
type fakeToolRepo struct {
	tools     []recommend.AITool
	searchHit []recommend.AITool
	searchErr error
	listErr   error
	created   []recommend.AITool
	ratings   map[string]float64
}

func (f *fakeToolRepo) ListTools(ctx context.Context, limit, offset int) ([]recommend.AITool, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.tools) > limit {
		return f.tools[:limit], nil
	}
	return f.tools, nil
}

func (f *fakeToolRepo) ToolsByCategory(ctx context.Context, category string) ([]recommend.AITool, error) {
	var out []recommend.AITool
	for _, tool := range f.tools {
		if tool.Category == category {
			out = append(out, tool)
		}
	}
	return out, nil
}

func (f *fakeToolRepo) SearchTools(ctx context.Context, term string, limit int) ([]recommend.AITool, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchHit, nil
}

func (f *fakeToolRepo) CreateTool(ctx context.Context, tool recommend.AITool) error {
	f.created = append(f.created, tool)
	return nil
}

func (f *fakeToolRepo) UpdateToolRating(ctx context.Context, toolID string, rating float64) error {
	if f.ratings == nil {
		f.ratings = make(map[string]float64)
	}
	f.ratings[toolID] = rating
	return nil
}

func TestDiscoverToolsDomainFirst(t *testing.T) {
	catalog := testkit.FixtureCatalog()
	repo := &fakeToolRepo{
		tools:     catalog,
		searchHit: catalog[1:2], // the devops tool
	}
	svc := NewToolDiscoveryService(repo)

	candidates, err := svc.DiscoverTools(context.Background(), testkit.FixtureUser())
	if err != nil {
		t.Fatalf("DiscoverTools failed: %v", err)
	}

	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].Name != "Terraform Assist" {
		t.Errorf("domain-matched tool should come first, got %s", candidates[0].Name)
	}
}

func TestDiscoverToolsDeduplicates(t *testing.T) {
	catalog := testkit.FixtureCatalog()
	repo := &fakeToolRepo{
		tools:     catalog,
		searchHit: catalog, // the fill pass sees the same tools again
	}
	svc := NewToolDiscoveryService(repo)

	candidates, err := svc.DiscoverTools(context.Background(), testkit.FixtureUser())
	if err != nil {
		t.Fatalf("DiscoverTools failed: %v", err)
	}
	if len(candidates) != 3 {
		t.Errorf("duplicates should be dropped, got %d candidates", len(candidates))
	}
}

func TestDiscoverToolsCapsAtMaxCandidates(t *testing.T) {
	tools := make([]recommend.AITool, 30)
	for i := range tools {
		tools[i] = recommend.AITool{
			ID:   core.ToolID(core.NewID()),
			Name: fmt.Sprintf("tool-%d", i),
		}
	}
	repo := &fakeToolRepo{tools: tools, searchHit: tools}
	svc := NewToolDiscoveryService(repo)

	candidates, err := svc.DiscoverTools(context.Background(), testkit.FixtureUser())
	if err != nil {
		t.Fatalf("DiscoverTools failed: %v", err)
	}
	if len(candidates) != recommend.MaxCandidates {
		t.Errorf("expected cap of %d, got %d", recommend.MaxCandidates, len(candidates))
	}
}

func TestDiscoverToolsSearchFailureFallsBack(t *testing.T) {
	repo := &fakeToolRepo{
		tools:     testkit.FixtureCatalog(),
		searchErr: errors.New("index offline"),
	}
	svc := NewToolDiscoveryService(repo)

	candidates, err := svc.DiscoverTools(context.Background(), testkit.FixtureUser())
	if err != nil {
		t.Fatalf("search failure should not abort discovery: %v", err)
	}
	if len(candidates) != 3 {
		t.Errorf("top-rated fill should still run, got %d candidates", len(candidates))
	}
}

func TestDiscoverToolsEmptyCatalog(t *testing.T) {
	svc := NewToolDiscoveryService(&fakeToolRepo{})

	candidates, err := svc.DiscoverTools(context.Background(), testkit.FixtureUser())
	if err != nil {
		t.Fatalf("DiscoverTools failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("empty catalog should yield empty slice, got %d", len(candidates))
	}
}

func TestDiscoverToolsTotalFailure(t *testing.T) {
	repo := &fakeToolRepo{
		searchErr: errors.New("index offline"),
		listErr:   errors.New("db down"),
	}
	svc := NewToolDiscoveryService(repo)

	if _, err := svc.DiscoverTools(context.Background(), testkit.FixtureUser()); err == nil {
		t.Error("expected error when both catalog reads fail")
	}
}
