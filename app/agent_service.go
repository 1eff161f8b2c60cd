package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"careerate/domain/core"
	"careerate/internal"
	"careerate/models"
	"careerate/ports"

	"github.com/google/uuid"
)

// devopsSystemInstruction frames every agent exchange.
const devopsSystemInstruction = `You are a specialized AI assistant for DevOps Engineers and Site Reliability Engineers (SREs). Your primary goal is to enhance their productivity and efficiency by providing insightful, actionable, and context-aware assistance. Focus on:
1. AI Tool Recommendation: recommend AI-powered tools relevant to IaC (Terraform, Ansible, Pulumi), CI/CD (GitHub Actions, Jenkins, GitLab CI), containerization (Docker, Kubernetes), monitoring (Prometheus, Grafana, Datadog, ELK), cloud platforms (Azure, AWS, GCP), and DevSecOps.
2. Workflow Optimization: analyze code snippets, CLI history and task descriptions to suggest optimizations, best practices and automation opportunities.
3. Troubleshooting Assistance: diagnose issues from logs or error messages, identify root causes and suggest solutions.
4. Learning and Guidance: explain or point to resources for new DevOps tools and AI techniques.
Be concise yet thorough. Always prioritize security, reliability and automation. Indicate when a suggested tool requires cloud provider integration or has notable prerequisites.`

// maxCLIHistory limits how many trailing commands are included in a prompt.
const maxCLIHistory = 5

// AgentRequest is one incoming agent invocation from the extension.
type AgentRequest struct {
	UserID      string                 `json:"user_id"`
	SessionID   string                 `json:"session_id,omitempty"`
	Query       string                 `json:"query"`
	CLIHistory  []string               `json:"cli_history,omitempty"`
	FileContext map[string]interface{} `json:"file_context,omitempty"`
}

// AgentResponse is the reply returned to the extension.
type AgentResponse struct {
	InteractionID core.InteractionID `json:"interaction_id"`
	SessionID     core.SessionID     `json:"session_id"`
	Reply         string             `json:"reply"`
	DurationMs    int64              `json:"duration_ms"`
}

// AgentService answers DevOps queries through the text generator and records
// every exchange. Generator failures return a stock apology and still persist
// the interaction with the error attached.
type AgentService struct {
	generator       ports.TextGenerator
	interactionRepo ports.InteractionRepository
}

// NewAgentService creates an agent service
func NewAgentService(generator ports.TextGenerator, interactionRepo ports.InteractionRepository) *AgentService {
	return &AgentService{
		generator:       generator,
		interactionRepo: interactionRepo,
	}
}

// Invoke answers one query and persists the exchange.
func (s *AgentService) Invoke(ctx context.Context, req AgentRequest) (*AgentResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("missing query")
	}
	sessionID, err := core.ParseSessionID(req.SessionID)
	if err != nil {
		sessionID = core.SessionID(core.NewID())
	}
	userID := core.AnonymizeUserID(req.UserID)

	requestedAt := time.Now().UTC()
	reply, genErr := s.generate(ctx, req)
	respondedAt := time.Now().UTC()

	interaction := models.AgentInteraction{
		ID:                uuid.New(),
		UserID:            userID,
		SessionID:         sessionID,
		InteractionType:   "devops_query",
		QueryText:         req.Query,
		CLIHistory:        req.CLIHistory,
		FileContext:       req.FileContext,
		AgentReply:        reply,
		RequestTimestamp:  requestedAt,
		ResponseTimestamp: respondedAt,
	}
	if genErr != nil {
		interaction.ErrorMessage = genErr.Error()
	}

	if err := s.interactionRepo.SaveInteraction(ctx, interaction); err != nil {
		internal.Warnf("agent: failed to persist interaction for %s: %v", userID, err)
	}

	return &AgentResponse{
		InteractionID: core.InteractionID(interaction.ID.String()),
		SessionID:     sessionID,
		Reply:         reply,
		DurationMs:    respondedAt.Sub(requestedAt).Milliseconds(),
	}, nil
}

func (s *AgentService) generate(ctx context.Context, req AgentRequest) (string, error) {
	if s.generator == nil {
		return agentUnavailableReply, fmt.Errorf("agent generator not configured")
	}

	reply, err := s.generator.GenerateText(ctx, s.buildPrompt(req), 1500)
	if err != nil {
		internal.Warnf("agent: generation failed: %v", err)
		return agentUnavailableReply, err
	}
	return reply, nil
}

const agentUnavailableReply = "AI Agent is currently unavailable. Please try again later."

// buildPrompt augments the query with the trailing CLI history and observed
// file context, mirroring what the extension surfaces.
func (s *AgentService) buildPrompt(req AgentRequest) string {
	var b strings.Builder
	b.WriteString(devopsSystemInstruction)
	b.WriteString("\n\nUser query:\n")
	b.WriteString(req.Query)

	if len(req.CLIHistory) > 0 {
		history := req.CLIHistory
		if len(history) > maxCLIHistory {
			history = history[len(history)-maxCLIHistory:]
		}
		b.WriteString("\n\nRelevant CLI History:\n")
		b.WriteString(strings.Join(history, "\n"))
	}
	if len(req.FileContext) > 0 {
		if raw, err := json.Marshal(req.FileContext); err == nil {
			b.WriteString("\n\nCurrently observed file context:\n")
			b.Write(raw)
		}
	}
	return b.String()
}

// SaveFeedback records a user's verdict on an interaction.
func (s *AgentService) SaveFeedback(ctx context.Context, feedback models.AgentFeedback) error {
	if feedback.UserID == "" {
		return fmt.Errorf("missing user id")
	}
	if feedback.Rating != nil && (*feedback.Rating < 1 || *feedback.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	feedback.UserID = core.AnonymizeUserID(feedback.UserID)
	if feedback.FeedbackType == "" {
		feedback.FeedbackType = "general"
	}
	return s.interactionRepo.SaveFeedback(ctx, feedback)
}

// Interactions returns a user's exchange history, newest first.
func (s *AgentService) Interactions(ctx context.Context, rawUserID string, limit, offset int) ([]models.AgentInteraction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.interactionRepo.ListUserInteractions(ctx, core.AnonymizeUserID(rawUserID), limit, offset)
}
