// Package httpapi exposes the authentication flows over HTTP/JSON. It maps
// structured requests onto the auth service and typed service errors onto
// status codes; all business rules live below it.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zavier/pulsetempo/internal/logging"
	"github.com/zavier/pulsetempo/internal/server/auth"
	"github.com/zavier/pulsetempo/internal/server/services"
)

// Server serves the public HTTP endpoint.
type Server struct {
	address string
	logger  logging.Logger
	auth    *services.AuthService
	tokens  *auth.Service
}

// NewServer constructs the HTTP server for the given address and services.
func NewServer(address string, logger logging.Logger, authService *services.AuthService, tokens *auth.Service) *Server {
	return &Server{
		address: address,
		logger:  logger.With("module", "http_server"),
		auth:    authService,
		tokens:  tokens,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.root)
	r.GET("/health", s.health)

	api := r.Group("/api/auth")
	api.POST("/login", s.appleLogin)
	api.POST("/register", s.register)
	api.POST("/login/email", s.login)
	api.POST("/refresh", s.refresh)
	api.GET("/me", RequireAuth(s.tokens), s.me)

	return r
}

// Run starts the server and shuts it down gracefully when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
