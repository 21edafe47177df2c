package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stoneyard/remnant-portal/internal/api/middleware"
	"github.com/stoneyard/remnant-portal/internal/api/rest"
	"github.com/stoneyard/remnant-portal/internal/api/shared/executor"
	"github.com/stoneyard/remnant-portal/internal/identity"
	"github.com/stoneyard/remnant-portal/internal/logger"
	"github.com/stoneyard/remnant-portal/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	StaticDir    string
	CookieName   string
	SessionTTL   time.Duration
	AllowOrigins []string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	resolver   identity.Resolver
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, store store.Store, resolver identity.Resolver) *Server {
	return &Server{
		config:   cfg,
		store:    store,
		resolver: resolver,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowOrigins))

	// Business logic layer
	exec := executor.NewExecutor(s.store, s.resolver)

	// REST handler and routes
	restHandler := rest.NewHandler(exec, rest.SessionCookie{
		Name:   s.config.CookieName,
		MaxAge: s.config.SessionTTL,
	})
	rest.SetupRoutes(router, restHandler, middleware.SessionConfig{
		CookieName: s.config.CookieName,
	}, s.resolver, s.store)

	// Static frontend
	if s.config.StaticDir != "" {
		router.StaticFile("/", filepath.Join(s.config.StaticDir, "index.html"))
		router.StaticFile("/admin.html", filepath.Join(s.config.StaticDir, "admin.html"))
		router.StaticFile("/login.html", filepath.Join(s.config.StaticDir, "login.html"))
		router.Static("/assets", filepath.Join(s.config.StaticDir, "assets"))
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
