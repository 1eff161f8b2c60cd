package app

import (
	"context"

	"careerate/domain/recommend"
	"careerate/internal"
	"careerate/ports"

	"golang.org/x/sync/errgroup"
)

// embedConcurrency bounds the per-tool embedding fan-out.
const embedConcurrency = 5

// RecommendationRanker scores a candidate batch against one user context and
// returns the ranked, truncated recommendation list. Each tool is scored
// independently: an embedding failure zeroes that tool's semantic term but
// never fails the batch. The final ordering is deterministic for identical
// inputs because the user embedding is computed once, ties keep input order,
// and every heuristic is a pure function.
type RecommendationRanker struct {
	embedder  ports.Embedder
	generator ports.TextGenerator
	metrics   FallbackRecorder
}

// NewRecommendationRanker creates a ranker
func NewRecommendationRanker(embedder ports.Embedder, generator ports.TextGenerator) *RecommendationRanker {
	return &RecommendationRanker{
		embedder:  embedder,
		generator: generator,
	}
}

// WithMetrics attaches a fallback recorder and returns the ranker.
func (r *RecommendationRanker) WithMetrics(rec FallbackRecorder) *RecommendationRanker {
	r.metrics = rec
	return r
}

// Rank scores the candidates and returns at most MaxRecommendations entries,
// best first. An empty candidate slice yields an empty result, not an error.
func (r *RecommendationRanker) Rank(ctx context.Context, user recommend.UserContext, insights recommend.PatternInsights, candidates []recommend.AITool) []recommend.Recommendation {
	if len(candidates) == 0 {
		return []recommend.Recommendation{}
	}
	user = user.Normalized()
	if len(candidates) > recommend.MaxCandidates {
		candidates = candidates[:recommend.MaxCandidates]
	}

	// One embedding for the user, shared across every tool in the batch.
	var userVector []float64
	if r.embedder != nil {
		vector, err := r.embedder.Embed(ctx, recommend.UserProfileText(user, insights))
		if err != nil {
			internal.Warnf("ranker: user embedding failed, semantic term zeroed: %v", err)
			recordEmbeddingFailure(r.metrics)
		} else {
			userVector = vector
		}
	}

	semantic := r.semanticScores(ctx, userVector, candidates)

	// Heuristics and assembly are pure; results slot in by index so the
	// input order survives for the stable tie-break.
	recs := make([]recommend.Recommendation, len(candidates))
	for i, tool := range candidates {
		relevance := recommend.RelevanceScore(
			semantic[i],
			recommend.SkillMatch(tool, user),
			recommend.DomainRelevance(tool, user),
			recommend.ToolCompatibility(tool, user),
		)
		recs[i] = recommend.Recommendation{
			ToolID:                   tool.ID,
			RelevanceScore:           relevance,
			Confidence:               recommend.ConfidenceFor(relevance),
			Reasoning:                recommend.FallbackReasoning(user),
			ImplementationComplexity: recommend.ImplementationComplexity(tool, user),
			ExpectedImpact:           recommend.PredictImpact(tool, user),
			LearningTimeHours:        recommend.EstimateLearningHours(tool, user),
		}
	}

	recommend.SortByRelevance(recs)
	recs = recommend.Truncate(recs, recommend.MaxRecommendations)

	r.explainTop(ctx, user, candidates, recs)
	return recs
}

// semanticScores embeds every tool profile concurrently and returns cosine
// similarity against the user vector, indexed like candidates. A nil user
// vector short-circuits to all zeros.
func (r *RecommendationRanker) semanticScores(ctx context.Context, userVector []float64, candidates []recommend.AITool) []float64 {
	scores := make([]float64, len(candidates))
	if userVector == nil || r.embedder == nil {
		return scores
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i, tool := range candidates {
		i, tool := i, tool
		g.Go(func() error {
			vector, err := r.embedder.Embed(gctx, recommend.ToolProfileText(tool))
			if err != nil {
				internal.Warnf("ranker: embedding failed for %s, semantic term zeroed: %v", tool.Name, err)
				recordEmbeddingFailure(r.metrics)
				return nil
			}
			similarity, err := recommend.CosineSimilarity(userVector, vector)
			if err != nil {
				internal.Warnf("ranker: similarity failed for %s: %v", tool.Name, err)
				return nil
			}
			scores[i] = similarity
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes the fan-in.
	_ = g.Wait()
	return scores
}

// explainTop replaces the fallback reasoning with an LLM explanation for the
// first ExplainTopN entries. Failures leave the fallback in place.
func (r *RecommendationRanker) explainTop(ctx context.Context, user recommend.UserContext, candidates []recommend.AITool, recs []recommend.Recommendation) {
	if r.generator == nil {
		return
	}

	byID := make(map[string]recommend.AITool, len(candidates))
	for _, tool := range candidates {
		byID[tool.ID.String()] = tool
	}

	limit := recommend.ExplainTopN
	if len(recs) < limit {
		limit = len(recs)
	}
	for i := 0; i < limit; i++ {
		tool, ok := byID[recs[i].ToolID.String()]
		if !ok {
			continue
		}
		prompt := BuildReasoningPrompt(tool, user, recs[i].RelevanceScore)
		reasoning, err := r.generator.GenerateText(ctx, prompt, 200)
		if err != nil {
			internal.Warnf("ranker: reasoning generation failed for %s: %v", tool.Name, err)
			recordLLMFallback(r.metrics, "reasoning")
			continue
		}
		if reasoning != "" {
			recs[i].Reasoning = reasoning
		}
	}
}
