package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"careerate/domain/recommend"
	"careerate/models"

	"github.com/go-chi/chi/v5"
)

// AnalyzeRequest is the analyze-and-recommend input. It mirrors the user
// context shape the extension maintains.
type AnalyzeRequest struct {
	UserID            string                 `json:"user_id"`
	SkillLevel        string                 `json:"skill_level"`
	WorkDomain        string                 `json:"work_domain"`
	ToolsUsed         []string               `json:"tools_used"`
	Goals             []string               `json:"goals"`
	ProductivityScore float64                `json:"productivity_score"`
	ActivityPatterns  map[string]interface{} `json:"activity_patterns,omitempty"`
	Preferences       map[string]interface{} `json:"preferences,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	user := recommend.UserContext{
		UserID:            req.UserID,
		SkillLevel:        recommend.ParseSkillLevel(req.SkillLevel),
		WorkDomain:        req.WorkDomain,
		ToolsUsed:         req.ToolsUsed,
		Goals:             req.Goals,
		ProductivityScore: req.ProductivityScore,
		ActivityPatterns:  req.ActivityPatterns,
		Preferences:       req.Preferences,
	}

	report, err := s.recService.AnalyzeAndRecommend(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecommendationsTotal.Add(float64(len(report.Recommendations)))
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRecommendationHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	status := models.RecommendationStatus(r.URL.Query().Get("status"))
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	recs, err := s.recService.RecommendationHistory(r.Context(), userID, status, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// RecommendationStatusRequest transitions one stored recommendation.
type RecommendationStatusRequest struct {
	Status models.RecommendationStatus `json:"status"`
}

func (s *Server) handleRecommendationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recommendation id")
		return
	}

	var req RecommendationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.recService.UpdateRecommendationStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleRecommendationAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	days := queryInt(r, "days", 30)

	analytics, err := s.recService.RecommendationAnalytics(r.Context(), userID, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	var err error
	var tools []recommend.AITool
	if category := r.URL.Query().Get("category"); category != "" {
		tools, err = s.toolRepo.ToolsByCategory(r.Context(), category)
	} else {
		tools, err = s.toolRepo.ListTools(r.Context(), limit, offset)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools})
}

func (s *Server) handleSearchTools(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required")
		return
	}
	limit := queryInt(r, "limit", 20)

	tools, err := s.toolRepo.SearchTools(r.Context(), term, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools})
}
