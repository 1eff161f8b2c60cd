package app

import (
	"context"
	"encoding/json"
	"fmt"

	"careerate/domain/recommend"
	"careerate/internal"
	"careerate/models"
	"careerate/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// LearningService generates learning paths and implementation guides for the
// top recommendations. Paths come from the structured generator (Claude when
// configured); guides come from the text generator and are rendered to HTML
// for the extension UI. Both degrade per tool: a failure produces an
// error-tagged stub, never a missing entry.
type LearningService struct {
	pathGen  ports.StructuredGenerator
	guideGen ports.TextGenerator
	metrics  FallbackRecorder
}

// NewLearningService creates a learning service
func NewLearningService(pathGen ports.StructuredGenerator, guideGen ports.TextGenerator) *LearningService {
	return &LearningService{
		pathGen:  pathGen,
		guideGen: guideGen,
	}
}

// WithMetrics attaches a fallback recorder and returns the service.
func (s *LearningService) WithMetrics(rec FallbackRecorder) *LearningService {
	s.metrics = rec
	return s
}

// GeneratePaths builds one learning path per recommendation, in ranking
// order, for at most LearningPathTopN entries.
func (s *LearningService) GeneratePaths(ctx context.Context, user recommend.UserContext, recs []recommend.Recommendation) []models.LearningPath {
	limit := recommend.LearningPathTopN
	if len(recs) < limit {
		limit = len(recs)
	}

	paths := make([]models.LearningPath, 0, limit)
	for _, rec := range recs[:limit] {
		paths = append(paths, s.generatePath(ctx, user, rec.ToolID.String()))
	}
	return paths
}

func (s *LearningService) generatePath(ctx context.Context, user recommend.UserContext, toolID string) models.LearningPath {
	fallback := models.LearningPath{
		ToolID: toolID,
		Title:  fmt.Sprintf("Learning Path for %s", toolID),
	}
	if s.pathGen == nil {
		fallback.Error = "learning path generator not configured"
		return fallback
	}

	raw, err := s.pathGen.GenerateJSON(ctx, BuildLearningPathPrompt(user, toolID), 2000)
	if err != nil {
		internal.Warnf("learning path generation failed for %s: %v", toolID, err)
		recordLLMFallback(s.metrics, "learning_path")
		fallback.Error = err.Error()
		return fallback
	}

	var path models.LearningPath
	if err := json.Unmarshal(raw, &path); err != nil {
		internal.Warnf("learning path unparseable for %s: %v", toolID, err)
		recordLLMFallback(s.metrics, "learning_path")
		fallback.Error = err.Error()
		return fallback
	}
	if path.ToolID == "" {
		path.ToolID = toolID
	}
	if path.Title == "" {
		path.Title = fallback.Title
	}
	return path
}

// GenerateGuides builds one implementation guide per recommendation, in
// ranking order, for at most GuideTopN entries.
func (s *LearningService) GenerateGuides(ctx context.Context, user recommend.UserContext, recs []recommend.Recommendation) []models.ImplementationGuide {
	limit := recommend.GuideTopN
	if len(recs) < limit {
		limit = len(recs)
	}

	guides := make([]models.ImplementationGuide, 0, limit)
	for _, rec := range recs[:limit] {
		guides = append(guides, s.generateGuide(ctx, user, rec))
	}
	return guides
}

func (s *LearningService) generateGuide(ctx context.Context, user recommend.UserContext, rec recommend.Recommendation) models.ImplementationGuide {
	toolID := rec.ToolID.String()
	guide := models.ImplementationGuide{
		ToolID:             toolID,
		Title:              fmt.Sprintf("Implementation Guide for %s", toolID),
		Complexity:         rec.ImplementationComplexity,
		EstimatedSetupTime: fmt.Sprintf("%d hours", rec.LearningTimeHours/4),
	}
	if s.guideGen == nil {
		guide.Error = "guide generator not configured"
		return guide
	}

	content, err := s.guideGen.GenerateText(ctx, BuildImplementationGuidePrompt(user, rec), 1500)
	if err != nil {
		internal.Warnf("guide generation failed for %s: %v", toolID, err)
		recordLLMFallback(s.metrics, "guide")
		guide.Error = err.Error()
		return guide
	}

	guide.Content = content
	guide.ContentHTML = renderMarkdown(content)
	return guide
}

// renderMarkdown converts the LLM's markdown guide into HTML.
func renderMarkdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.Render(doc, renderer))
}
