package models

import (
	"time"

	"careerate/domain/core"

	"github.com/google/uuid"
)

// AgentInteraction is one stored DevOps-agent exchange.
type AgentInteraction struct {
	ID                uuid.UUID              `json:"id" db:"id"`
	UserID            string                 `json:"user_id" db:"user_id"`
	SessionID         core.SessionID         `json:"session_id" db:"session_id"`
	InteractionType   string                 `json:"interaction_type" db:"interaction_type"`
	QueryText         string                 `json:"query_text" db:"query_text"`
	CLIHistory        []string               `json:"cli_history,omitempty" db:"-"`
	FileContext       map[string]interface{} `json:"file_context,omitempty" db:"-"`
	AgentReply        string                 `json:"agent_reply" db:"agent_reply"`
	ErrorMessage      string                 `json:"error_message,omitempty" db:"error_message"`
	RequestTimestamp  time.Time              `json:"request_timestamp" db:"request_timestamp"`
	ResponseTimestamp time.Time              `json:"response_timestamp" db:"response_timestamp"`
	CreatedAt         time.Time              `json:"created_at" db:"created_at"`
}

// AgentFeedback is a user's verdict on an agent interaction or a
// recommendation surfaced through it.
type AgentFeedback struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	UserID        string         `json:"user_id" db:"user_id"`
	SessionID     core.SessionID `json:"session_id" db:"session_id"`
	InteractionID *uuid.UUID     `json:"interaction_id,omitempty" db:"interaction_id"`
	FeedbackType  string         `json:"feedback_type" db:"feedback_type"`
	FeedbackText  string         `json:"feedback_text,omitempty" db:"feedback_text"`
	Rating        *int           `json:"rating,omitempty" db:"rating"` // 1-5 when present
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}
