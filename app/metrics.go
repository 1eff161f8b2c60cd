package app

// FallbackRecorder counts degraded collaborator calls so operators can see
// how often the pipeline is running on zeroed embeddings or stock text.
// Services hold it optionally; a nil recorder disables counting.
type FallbackRecorder interface {
	EmbeddingFailure()
	LLMFallback(flow string)
}

func recordEmbeddingFailure(rec FallbackRecorder) {
	if rec != nil {
		rec.EmbeddingFailure()
	}
}

func recordLLMFallback(rec FallbackRecorder, flow string) {
	if rec != nil {
		rec.LLMFallback(flow)
	}
}
