package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"careerate/domain/core"
	"careerate/domain/recommend"
	"careerate/internal/testkit"
)

func sampleRecs(n int) []recommend.Recommendation {
	recs := make([]recommend.Recommendation, n)
	for i := range recs {
		recs[i] = recommend.Recommendation{
			ToolID:                   core.ToolID(core.NewID()),
			RelevanceScore:           0.8,
			ImplementationComplexity: 3,
			LearningTimeHours:        12,
		}
	}
	return recs
}

func TestGeneratePathsParsesStructuredResponse(t *testing.T) {
	generator := &testkit.FakeGenerator{
		JSON: `{"title":"Mastering Copilot","objectives":["ship faster"],"total_duration_hours":10,
			"modules":[{"step":1,"title":"Setup","estimated_hours":2}]}`,
	}
	svc := NewLearningService(generator, nil)

	paths := svc.GeneratePaths(context.Background(), testkit.FixtureUser(), sampleRecs(2))
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}

	path := paths[0]
	if path.Title != "Mastering Copilot" {
		t.Errorf("expected parsed title, got %q", path.Title)
	}
	if path.ToolID == "" {
		t.Error("tool id should be backfilled when the LLM omits it")
	}
	if len(path.Modules) != 1 || path.Modules[0].Step != 1 {
		t.Errorf("unexpected modules: %+v", path.Modules)
	}
	if path.Error != "" {
		t.Errorf("successful path should carry no error, got %q", path.Error)
	}
}

func TestGeneratePathsCapsAtTopN(t *testing.T) {
	generator := &testkit.FakeGenerator{JSON: `{"title":"x"}`}
	svc := NewLearningService(generator, nil)

	paths := svc.GeneratePaths(context.Background(), testkit.FixtureUser(), sampleRecs(8))
	if len(paths) != recommend.LearningPathTopN {
		t.Errorf("expected %d paths, got %d", recommend.LearningPathTopN, len(paths))
	}
}

func TestGeneratePathsFailureYieldsStub(t *testing.T) {
	generator := &testkit.FakeGenerator{Err: errors.New("overloaded")}
	svc := NewLearningService(generator, nil)

	paths := svc.GeneratePaths(context.Background(), testkit.FixtureUser(), sampleRecs(1))
	if len(paths) != 1 {
		t.Fatalf("a failed generation must still yield a stub, got %d paths", len(paths))
	}
	if paths[0].Error == "" {
		t.Error("stub should carry the error")
	}
	if !strings.HasPrefix(paths[0].Title, "Learning Path for ") {
		t.Errorf("stub should carry the fallback title, got %q", paths[0].Title)
	}
	if paths[0].ToolID == "" {
		t.Error("stub must keep the tool id")
	}
}

func TestGenerateGuidesRendersHTML(t *testing.T) {
	generator := &testkit.FakeGenerator{Response: "# Setup\n\nInstall the CLI."}
	svc := NewLearningService(nil, generator)

	guides := svc.GenerateGuides(context.Background(), testkit.FixtureUser(), sampleRecs(1))
	if len(guides) != 1 {
		t.Fatalf("expected 1 guide, got %d", len(guides))
	}

	guide := guides[0]
	if guide.Content != "# Setup\n\nInstall the CLI." {
		t.Errorf("raw markdown should be preserved, got %q", guide.Content)
	}
	if !strings.Contains(guide.ContentHTML, "<h1") {
		t.Errorf("heading should render to HTML, got %q", guide.ContentHTML)
	}
	if guide.Complexity != 3 {
		t.Errorf("guide should carry the recommendation complexity, got %d", guide.Complexity)
	}
	if guide.EstimatedSetupTime != "3 hours" {
		t.Errorf("setup time should be a quarter of learning hours, got %q", guide.EstimatedSetupTime)
	}
}

func TestGenerateGuidesCapsAtTopN(t *testing.T) {
	generator := &testkit.FakeGenerator{Response: "guide"}
	svc := NewLearningService(nil, generator)

	guides := svc.GenerateGuides(context.Background(), testkit.FixtureUser(), sampleRecs(6))
	if len(guides) != recommend.GuideTopN {
		t.Errorf("expected %d guides, got %d", recommend.GuideTopN, len(guides))
	}
}

func TestGenerateGuidesFailureYieldsStub(t *testing.T) {
	generator := &testkit.FakeGenerator{Err: errors.New("timeout")}
	svc := NewLearningService(nil, generator)

	guides := svc.GenerateGuides(context.Background(), testkit.FixtureUser(), sampleRecs(1))
	if len(guides) != 1 {
		t.Fatalf("expected stub guide, got %d", len(guides))
	}
	if guides[0].Error == "" {
		t.Error("stub should carry the error")
	}
	if guides[0].ContentHTML != "" {
		t.Error("failed guide should not carry rendered content")
	}
}
