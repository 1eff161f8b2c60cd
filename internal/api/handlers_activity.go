package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"careerate/models"

	"github.com/go-chi/chi/v5"
)

// ActivitySyncRequest is one batch of extension activity rows.
type ActivitySyncRequest struct {
	UserID   string                   `json:"user_id"`
	Patterns []models.ActivityPattern `json:"patterns"`
}

func (s *Server) handleActivitySync(w http.ResponseWriter, r *http.Request) {
	var req ActivitySyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	stored, err := s.activityService.SyncActivity(r.Context(), req.UserID, req.Patterns)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.ActivityRowsSynced.Add(float64(stored))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "synced",
		"stored_count":  stored,
		"skipped_count": len(req.Patterns) - stored,
	})
}

func (s *Server) handleActivityStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	days := queryInt(r, "days", 7)

	stats, err := s.activityService.Stats(r.Context(), userID, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleActivityPatterns(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	days := queryInt(r, "days", 7)

	insights, err := s.activityService.Insights(r.Context(), userID, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleActivityDelete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "confirm=true is required for data deletion")
		return
	}

	deleted, err := s.activityService.DeleteUserData(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "deleted",
		"deleted_rows": deleted,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
