package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Model:          "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		APIKey:         "test-key",
		MaxTokens:      500,
		Timeout:        5 * time.Second,
	}
}

func TestGenerateTextTrimsResponse(t *testing.T) {
	client := &MockLLMClient{Response: "  Use feature flags for safe rollouts.  \n"}
	adapter := NewGeneratorAdapterWithClient(testConfig(), client)

	got, err := adapter.GenerateText(context.Background(), "advise me", 100)
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if got != "Use feature flags for safe rollouts." {
		t.Errorf("expected trimmed response, got %q", got)
	}
	if client.CallCount != 1 {
		t.Errorf("expected 1 LLM call, got %d", client.CallCount)
	}
}

func TestGenerateTextPropagatesError(t *testing.T) {
	client := &MockLLMClient{Error: errors.New("rate limited")}
	adapter := NewGeneratorAdapterWithClient(testConfig(), client)

	if _, err := adapter.GenerateText(context.Background(), "advise me", 100); err == nil {
		t.Error("expected error from failing client")
	}
}

func TestGenerateJSONStripsFences(t *testing.T) {
	client := &MockLLMClient{Response: "Here you go:\n```json\n{\"bottlenecks\":[\"ci\"]}\n```\nHope that helps!"}
	adapter := NewGeneratorAdapterWithClient(testConfig(), client)

	raw, err := adapter.GenerateJSON(context.Background(), "analyze", 100)
	if err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}
	if string(raw) != `{"bottlenecks":["ci"]}` {
		t.Errorf("expected fenced JSON extracted, got %q", string(raw))
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", "sure:\n```json\n{\"a\":1}\n```\ndone", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.response); got != tc.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.response, got, tc.want)
			}
		})
	}
}

func TestJSONGeneratorWrapsTextGenerator(t *testing.T) {
	client := &MockLLMClient{Response: "```json\n{\"title\":\"path\"}\n```"}
	adapter := NewGeneratorAdapterWithClient(testConfig(), client)
	wrapped := NewJSONGenerator(adapter)

	raw, err := wrapped.GenerateJSON(context.Background(), "plan", 100)
	if err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}
	if string(raw) != `{"title":"path"}` {
		t.Errorf("unexpected payload %q", string(raw))
	}
}
