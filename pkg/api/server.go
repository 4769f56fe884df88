package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/marqueehq/marquee/pkg/forecast"
	"github.com/marqueehq/marquee/pkg/lifecycle"
	"github.com/marqueehq/marquee/pkg/log"
)

// Server is the operator-facing HTTP API. It reads the lifecycle
// manager's bucket state and serves the planning endpoints (forecast,
// estimates, pricing) computed from it.
type Server struct {
	manager *lifecycle.Manager
	cache   *forecast.Cache

	defaults forecast.Options
	engine   *gin.Engine
	http     *http.Server
	logger   zerolog.Logger
}

// NewServer wires the router over the given manager. cache may be nil
// when Redis is not configured; forecast reads then recompute every
// time.
func NewServer(mgr *lifecycle.Manager, cache *forecast.Cache, defaults forecast.Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		manager:  mgr,
		cache:    cache,
		defaults: defaults,
		logger:   log.WithComponent("api"),
	}
	s.engine = s.newRouter()
	return s
}

// Start begins serving on addr and blocks until the listener closes.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info().Str("addr", addr).Msg("HTTP API listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Stop gracefully drains in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
