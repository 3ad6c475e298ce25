package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatboard/config"
	"chatboard/internal/handler"
	"chatboard/internal/middleware"
	"chatboard/internal/redis"
	"chatboard/internal/services"
	"chatboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Messages *handler.MessageHandler
	System   *handler.SystemHandler
}

// RouteOptions carries the optional collaborators of the route table.
type RouteOptions struct {
	// DatabaseReady is false when the server started without a database;
	// persistence routes then answer 500.
	DatabaseReady bool
	// RateLimiter guards /token and /users/ when set.
	RateLimiter *redis.RateLimiter
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	handler.RegisterValidators()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.RedirectTrailingSlash = true
	// Without trusted proxies ClientIP is the peer address, so forwarded
	// headers cannot spread auth attempts over made-up IPs.
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		if l != nil {
			l.Warnf("invalid TRUSTED_PROXIES, trusting none: %v", err)
		}
		_ = engine.SetTrustedProxies(nil)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mainly for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, opts RouteOptions) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSOrigins))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/", handlers.System.Root)
	s.engine.GET("/health", handlers.System.Health)
	s.engine.GET("/db-check", handlers.System.DBCheck)

	requireDB := middleware.RequireDatabase(opts.DatabaseReady)
	requireAuth := middleware.AuthMiddleware(authService)

	credentials := s.engine.Group("")
	if opts.RateLimiter != nil {
		credentials.Use(middleware.AuthRateLimitMiddleware(opts.RateLimiter, s.logger))
	}
	credentials.Use(requireDB)
	{
		credentials.POST("/token", handlers.Auth.Token)
		credentials.POST("/users/", handlers.Users.Create)
	}

	messages := s.engine.Group("/messages", requireDB, requireAuth)
	{
		messages.POST("/", handlers.Messages.Create)
		messages.GET("/", handlers.Messages.List)
	}
}

func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if s.logger != nil {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
		return err
	case <-quit:
	}

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
