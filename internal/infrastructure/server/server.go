// Package server assembles the application: configuration, logging,
// metrics, provider clients, the AI pipeline, and the gin router.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1-RoushanKumar/SafeScribe/internal/ai"
	apihttp "github.com/1-RoushanKumar/SafeScribe/internal/api/http"
	"github.com/1-RoushanKumar/SafeScribe/internal/api/middleware"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/config"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/logging"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/monitoring"
	"github.com/1-RoushanKumar/SafeScribe/internal/notes"
)

// Server wraps the HTTP server and dependencies.
type Server struct {
	router  *gin.Engine
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New creates a new server instance.
func New(cfg *config.Config) *Server {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing SafeScribe backend",
		zap.String("port", cfg.Server.Port),
	)

	metrics := monitoring.NewMetrics()

	// Provider clients and the pipeline
	gemini := ai.NewGemini(cfg.Gemini).WithMetrics(metrics)
	searcher := ai.NewSearcher(cfg.Search, logger).WithMetrics(metrics)
	service := ai.NewService(gemini, searcher, logger).WithMetrics(metrics)

	noteStore := notes.NewManager()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(service, noteStore, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.POST("/research/process", handlers.ProcessResearch)

		api.POST("/notes", handlers.CreateNote)
		api.GET("/notes", handlers.ListNotes)
		api.GET("/notes/:id", handlers.GetNote)
		api.PUT("/notes/:id", handlers.UpdateNote)
		api.DELETE("/notes/:id", handlers.DeleteNote)

		api.POST("/notes/:id/ai/summarize", handlers.SummarizeNote)
		api.POST("/notes/:id/ai/read", handlers.ReadNote)
		api.POST("/notes/:id/ai/translate", handlers.TranslateNote)
		api.POST("/notes/:id/ai/answer", handlers.AnswerNote)
		api.POST("/notes/:id/ai/explain", handlers.ExplainNote)
	}

	logger.Info("Server initialized")

	return &Server{
		router:  router,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close flushes buffered log entries.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server")
	s.logger.Sync()
	return nil
}
