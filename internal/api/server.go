// Package api provides the HTTP surface consumed by the browser extension.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"careerate/app"
	apperrors "careerate/internal/errors"
	"careerate/internal/metrics"
	"careerate/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router

	db              *sqlx.DB
	activityService *app.ActivityService
	recService      *app.RecommendationService
	agentService    *app.AgentService
	toolRepo        ports.ToolRepository
	sseHub          *SSEHub
	metrics         *metrics.Metrics
	allowedOrigins  []string
}

// New creates a new Server
func New(
	db *sqlx.DB,
	activityService *app.ActivityService,
	recService *app.RecommendationService,
	agentService *app.AgentService,
	toolRepo ports.ToolRepository,
	sseHub *SSEHub,
	m *metrics.Metrics,
	allowedOrigins []string,
) *Server {
	s := &Server{
		db:              db,
		activityService: activityService,
		recService:      recService,
		agentService:    agentService,
		toolRepo:        toolRepo,
		sseHub:          sseHub,
		metrics:         m,
		allowedOrigins:  allowedOrigins,
	}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/activity", func(r chi.Router) {
			r.Post("/sync", s.handleActivitySync)
			r.Get("/stats/{userID}", s.handleActivityStats)
			r.Get("/patterns/{userID}", s.handleActivityPatterns)
			r.Delete("/data/{userID}", s.handleActivityDelete)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/analyze", s.handleAnalyze)
			r.Get("/analytics/{userID}", s.handleRecommendationAnalytics)
			r.Patch("/{id}/status", s.handleRecommendationStatus)
			r.Get("/{userID}", s.handleRecommendationHistory)
		})

		r.Route("/agent", func(r chi.Router) {
			r.Post("/invoke", s.handleAgentInvoke)
			r.Get("/stream/{sessionID}", s.handleAgentStream)
			r.Post("/feedback", s.handleAgentFeedback)
			r.Get("/interactions/{userID}", s.handleAgentInteractions)
		})

		r.Route("/tools", func(r chi.Router) {
			r.Get("/", s.handleListTools)
			r.Get("/search", s.handleSearchTools)
		})
	})

	return r
}

// instrument records request duration and count per route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"route":  route,
			"method": r.Method,
			"status": strconv.Itoa(ww.Status()),
		}
		s.metrics.RequestDuration.With(labels).Observe(time.Since(start).Seconds())
		s.metrics.RequestTotal.With(labels).Inc()
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	stats := s.db.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps application error codes onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeMalformedInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeCollaboratorUnavailable:
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, err.Error())
}
