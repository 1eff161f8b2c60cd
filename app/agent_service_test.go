package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"careerate/domain/core"
	"careerate/internal/testkit"
	"careerate/models"
)

// fakeInteractionRepo is an in-memory ports.InteractionRepository.
type fakeInteractionRepo struct {
	interactions []models.AgentInteraction
	feedback     []models.AgentFeedback
	err          error
}

func (f *fakeInteractionRepo) SaveInteraction(ctx context.Context, interaction models.AgentInteraction) error {
	if f.err != nil {
		return f.err
	}
	f.interactions = append(f.interactions, interaction)
	return nil
}

func (f *fakeInteractionRepo) ListUserInteractions(ctx context.Context, userID string, limit, offset int) ([]models.AgentInteraction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.AgentInteraction
	for _, i := range f.interactions {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) SaveFeedback(ctx context.Context, feedback models.AgentFeedback) error {
	if f.err != nil {
		return f.err
	}
	f.feedback = append(f.feedback, feedback)
	return nil
}

func TestInvokeAnswersAndPersists(t *testing.T) {
	repo := &fakeInteractionRepo{}
	generator := &testkit.FakeGenerator{Response: "Use terraform plan before apply."}
	svc := NewAgentService(generator, repo)

	resp, err := svc.Invoke(context.Background(), AgentRequest{
		UserID: "alice@example.com",
		Query:  "How do I review infra changes safely?",
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if resp.Reply != "Use terraform plan before apply." {
		t.Errorf("unexpected reply %q", resp.Reply)
	}
	if resp.SessionID == "" {
		t.Error("missing session id should be generated")
	}
	if resp.InteractionID == "" {
		t.Error("response must carry the interaction id")
	}

	if len(repo.interactions) != 1 {
		t.Fatalf("expected 1 persisted interaction, got %d", len(repo.interactions))
	}
	saved := repo.interactions[0]
	if saved.UserID == "alice@example.com" {
		t.Error("raw user id must not be persisted")
	}
	if saved.UserID != core.AnonymizeUserID("alice@example.com") {
		t.Errorf("unexpected persisted user id %q", saved.UserID)
	}
	if saved.InteractionType != "devops_query" {
		t.Errorf("unexpected interaction type %q", saved.InteractionType)
	}
	if saved.ErrorMessage != "" {
		t.Errorf("successful exchange should carry no error, got %q", saved.ErrorMessage)
	}
}

func TestInvokePreservesProvidedSessionID(t *testing.T) {
	repo := &fakeInteractionRepo{}
	svc := NewAgentService(&testkit.FakeGenerator{Response: "ok"}, repo)

	resp, err := svc.Invoke(context.Background(), AgentRequest{
		UserID:    "u1",
		SessionID: "sess-42",
		Query:     "q",
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if resp.SessionID != core.SessionID("sess-42") {
		t.Errorf("provided session id should survive, got %q", resp.SessionID)
	}
	if repo.interactions[0].SessionID != core.SessionID("sess-42") {
		t.Errorf("persisted session id mismatch: %q", repo.interactions[0].SessionID)
	}
}

func TestInvokeGeneratorFailureDegrades(t *testing.T) {
	repo := &fakeInteractionRepo{}
	generator := &testkit.FakeGenerator{Err: errors.New("overloaded")}
	svc := NewAgentService(generator, repo)

	resp, err := svc.Invoke(context.Background(), AgentRequest{UserID: "u1", Query: "help"})
	if err != nil {
		t.Fatalf("generator failure should not fail the invoke: %v", err)
	}
	if resp.Reply != agentUnavailableReply {
		t.Errorf("expected stock unavailable reply, got %q", resp.Reply)
	}
	if len(repo.interactions) != 1 {
		t.Fatalf("failed exchange must still be persisted")
	}
	if repo.interactions[0].ErrorMessage == "" {
		t.Error("persisted interaction should record the generation error")
	}
}

func TestInvokeRejectsEmptyQuery(t *testing.T) {
	svc := NewAgentService(&testkit.FakeGenerator{}, &fakeInteractionRepo{})
	if _, err := svc.Invoke(context.Background(), AgentRequest{UserID: "u1", Query: "  "}); err == nil {
		t.Error("expected error for blank query")
	}
}

func TestInvokePromptIncludesTrailingCLIHistory(t *testing.T) {
	generator := &testkit.FakeGenerator{Response: "ok"}
	svc := NewAgentService(generator, &fakeInteractionRepo{})

	history := []string{"cmd1", "cmd2", "cmd3", "cmd4", "cmd5", "cmd6", "cmd7"}
	_, err := svc.Invoke(context.Background(), AgentRequest{
		UserID:      "u1",
		Query:       "why did my deploy fail?",
		CLIHistory:  history,
		FileContext: map[string]interface{}{"file": "main.tf"},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if len(generator.Prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(generator.Prompts))
	}
	prompt := generator.Prompts[0]
	if !strings.Contains(prompt, "why did my deploy fail?") {
		t.Error("prompt should include the query")
	}
	if !strings.Contains(prompt, "cmd7") || strings.Contains(prompt, "cmd1") {
		t.Error("prompt should include only the trailing CLI commands")
	}
	if !strings.Contains(prompt, "main.tf") {
		t.Error("prompt should include the file context")
	}
}

func TestSaveFeedbackValidation(t *testing.T) {
	repo := &fakeInteractionRepo{}
	svc := NewAgentService(&testkit.FakeGenerator{}, repo)

	bad := 7
	err := svc.SaveFeedback(context.Background(), models.AgentFeedback{UserID: "u1", Rating: &bad})
	if err == nil {
		t.Error("expected error for out-of-range rating")
	}

	if err := svc.SaveFeedback(context.Background(), models.AgentFeedback{}); err == nil {
		t.Error("expected error for missing user id")
	}

	good := 5
	err = svc.SaveFeedback(context.Background(), models.AgentFeedback{UserID: "u1", Rating: &good})
	if err != nil {
		t.Fatalf("SaveFeedback failed: %v", err)
	}
	saved := repo.feedback[0]
	if saved.FeedbackType != "general" {
		t.Errorf("missing feedback type should default to general, got %q", saved.FeedbackType)
	}
	if saved.UserID == "u1" {
		t.Error("user id should be anonymized before storage")
	}
}

func TestInteractionsAnonymizesLookup(t *testing.T) {
	repo := &fakeInteractionRepo{}
	svc := NewAgentService(&testkit.FakeGenerator{Response: "ok"}, repo)

	if _, err := svc.Invoke(context.Background(), AgentRequest{UserID: "u1", Query: "q"}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	got, err := svc.Interactions(context.Background(), "u1", 0, 0)
	if err != nil {
		t.Fatalf("Interactions failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("lookup under the raw id should find the anonymized rows, got %d", len(got))
	}
}
