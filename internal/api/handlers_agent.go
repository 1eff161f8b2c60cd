package api

import (
	"encoding/json"
	"net/http"

	"careerate/app"
	"careerate/domain/core"
	"careerate/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleAgentInvoke(w http.ResponseWriter, r *http.Request) {
	var req app.AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	resp, err := s.agentService.Invoke(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Mirror the reply onto any open stream for this session.
	if s.sseHub != nil {
		s.sseHub.Broadcast(AgentEvent{
			SessionID:     resp.SessionID.String(),
			EventType:     "agent_reply",
			InteractionID: resp.InteractionID.String(),
			Data: map[string]interface{}{
				"reply":       resp.Reply,
				"duration_ms": resp.DurationMs,
			},
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgentStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}
	s.sseHub.ServeSession(w, r, sessionID)
}

// AgentFeedbackRequest is one feedback submission.
type AgentFeedbackRequest struct {
	UserID        string `json:"user_id"`
	SessionID     string `json:"session_id,omitempty"`
	InteractionID string `json:"interaction_id,omitempty"`
	FeedbackType  string `json:"feedback_type,omitempty"`
	FeedbackText  string `json:"feedback_text,omitempty"`
	Rating        *int   `json:"rating,omitempty"`
}

func (s *Server) handleAgentFeedback(w http.ResponseWriter, r *http.Request) {
	var req AgentFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	feedback := models.AgentFeedback{
		UserID:       req.UserID,
		SessionID:    core.SessionID(req.SessionID),
		FeedbackType: req.FeedbackType,
		FeedbackText: req.FeedbackText,
		Rating:       req.Rating,
	}
	if req.InteractionID != "" {
		id, err := uuid.Parse(req.InteractionID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid interaction_id")
			return
		}
		feedback.InteractionID = &id
	}

	if err := s.agentService.SaveFeedback(r.Context(), feedback); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleAgentInteractions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	interactions, err := s.agentService.Interactions(r.Context(), userID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"interactions": interactions})
}
