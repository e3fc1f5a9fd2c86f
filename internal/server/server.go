package server

import (
	"context"
	"log/slog"

	"tasktrack/internal/config"
	"tasktrack/internal/database"
	"tasktrack/internal/handlers"
	"tasktrack/internal/middleware"
	"tasktrack/internal/monitoring"
	"tasktrack/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server owns the gin engine and wires handlers, services, and
// middleware together.
type Server struct {
	engine  *gin.Engine
	pool    *database.DatabasePool
	logger  *slog.Logger
	limiter *middleware.RateLimiter
}

func New(cfg *config.Config, pool *database.DatabasePool, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(middleware.RequestID())
	router.Use(cors.Default())

	srv := &Server{
		engine: router,
		pool:   pool,
		logger: logger,
	}

	if cfg.RateLimit.Enabled {
		srv.limiter = middleware.NewRateLimiter(cfg.RateLimit)
		router.Use(srv.limiter.Middleware())
	}

	collector := monitoring.NewCollector()
	router.Use(collector.Middleware())
	collector.RegisterHealthCheck("database", func(ctx context.Context) error {
		return pool.Health()
	})

	srv.registerRoutes(cfg, collector)
	return srv
}

func (s *Server) registerRoutes(cfg *config.Config, collector *monitoring.Collector) {
	db := s.pool.DB

	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authHandler := handlers.NewAuthHandler(db, services.NewAuthService(), tokens)
	userHandler := handlers.NewUserHandler(db, services.NewRegisterService(cfg.Auth.BCryptCost))
	taskHandler := handlers.NewTaskHandler(db, services.NewTaskService())

	s.engine.POST("/login", authHandler.Login)
	s.engine.POST("/users", userHandler.CreateUser)

	tasks := s.engine.Group("/tasks")
	tasks.Use(middleware.AuthRequired(db, tokens))
	{
		tasks.GET("", taskHandler.GetTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTaskByID)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	s.engine.GET("/health", collector.HealthHandler())
	s.engine.GET("/metrics", collector.MetricsHandler())
}

// Engine exposes the underlying gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Close releases background resources held by middleware.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
