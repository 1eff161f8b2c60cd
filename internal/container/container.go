package container

import (
	"fmt"
	"time"

	"careerate/adapters/llm"
	"careerate/adapters/postgres"
	"careerate/app"
	"careerate/internal"
	"careerate/internal/api"
	"careerate/internal/config"
	"careerate/internal/metrics"
	"careerate/ports"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB      *sqlx.DB
	Metrics *metrics.Metrics
	SSEHub  *api.SSEHub

	// Repositories (data access layer)
	ToolRepo        ports.ToolRepository
	ActivityRepo    ports.ActivityRepository
	RecRepo         ports.RecommendationRepository
	InteractionRepo ports.InteractionRepository

	// AI collaborators
	Embedder      ports.Embedder
	TextGenerator ports.TextGenerator
	PathGenerator ports.StructuredGenerator
	JSONGenerator ports.StructuredGenerator

	// Application services
	Privacy         *app.PrivacyService
	PatternAnalysis *app.PatternAnalysisService
	Discovery       *app.ToolDiscoveryService
	Ranker          *app.RecommendationRanker
	Learning        *app.LearningService
	Recommendations *app.RecommendationService
	Activity        *app.ActivityService
	Agent           *app.AgentService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.initRepositories()

	if err := c.initAI(); err != nil {
		return fmt.Errorf("failed to initialize AI collaborators: %w", err)
	}

	m, err := metrics.Register(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	c.Metrics = m
	c.SSEHub = api.NewSSEHub()

	c.initServices()

	internal.Infof("container initialized with database connection")
	return nil
}

func (c *Container) initRepositories() {
	c.ToolRepo = postgres.NewToolRepository(c.DB)
	c.ActivityRepo = postgres.NewActivityRepository(c.DB)
	c.RecRepo = postgres.NewRecommendationRepository(c.DB)
	c.InteractionRepo = postgres.NewInteractionRepository(c.DB)
}

func (c *Container) initAI() error {
	llmConfig := llm.Config{
		Model:          c.Config.AI.OpenAIModel,
		EmbeddingModel: c.Config.AI.EmbeddingModel,
		APIKey:         c.Config.AI.OpenAIKey,
		Temperature:    c.Config.AI.Temperature,
		MaxTokens:      c.Config.AI.MaxTokens,
		Timeout:        30 * time.Second,
	}

	embedder, err := llm.NewEmbedderAdapter(llmConfig)
	if err != nil {
		return fmt.Errorf("embedder init failed: %w", err)
	}
	c.Embedder = embedder

	generator, err := llm.NewGeneratorAdapter(llmConfig)
	if err != nil {
		return fmt.Errorf("generator init failed: %w", err)
	}
	c.TextGenerator = generator
	c.JSONGenerator = generator

	// Learning paths prefer Claude when a key is configured; otherwise they
	// ride the OpenAI generator.
	c.PathGenerator = c.JSONGenerator
	if c.Config.AI.AnthropicKey != "" {
		claude, err := llm.NewAnthropicAdapter(llm.AnthropicConfig{
			APIKey:    c.Config.AI.AnthropicKey,
			Model:     c.Config.AI.AnthropicModel,
			MaxTokens: c.Config.AI.MaxTokens,
			Timeout:   60 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("anthropic init failed: %w", err)
		}
		c.PathGenerator = llm.NewJSONGenerator(claude)
	}

	return nil
}

func (c *Container) initServices() {
	c.Privacy = app.NewPrivacyService()
	c.PatternAnalysis = app.NewPatternAnalysisService(c.JSONGenerator, c.ActivityRepo).WithMetrics(c.Metrics)
	c.Discovery = app.NewToolDiscoveryService(c.ToolRepo)
	c.Ranker = app.NewRecommendationRanker(c.Embedder, c.TextGenerator).WithMetrics(c.Metrics)
	c.Learning = app.NewLearningService(c.PathGenerator, c.TextGenerator).WithMetrics(c.Metrics)
	c.Recommendations = app.NewRecommendationService(
		c.Privacy, c.PatternAnalysis, c.Discovery, c.Ranker, c.Learning, c.RecRepo)
	c.Activity = app.NewActivityService(c.Privacy, c.PatternAnalysis, c.ActivityRepo)
	c.Agent = app.NewAgentService(c.TextGenerator, c.InteractionRepo)
}

// Server builds the HTTP server from the wired services
func (c *Container) Server() *api.Server {
	return api.New(
		c.DB,
		c.Activity,
		c.Recommendations,
		c.Agent,
		c.ToolRepo,
		c.SSEHub,
		c.Metrics,
		c.Config.Server.AllowedOrigins,
	)
}

// Close releases container resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
