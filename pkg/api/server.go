package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/core/services"
	"github.com/jakechorley/smart-schedule/pkg/utils/logging"
)

const shutdownTimeout = 10 * time.Second

// Pinger is implemented by stores that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves the schedule HTTP API
type Server struct {
	cfg      *config.Config
	database services.GenerateScheduleStore
	logger   *zap.Logger
	metrics  *Metrics
	router   *gin.Engine
}

// NewServer builds the router. database may be nil, in which case only the offline
// solve endpoint is usable.
func NewServer(cfg *config.Config, database services.GenerateScheduleStore, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		database: database,
		logger:   logging.OrNop(logger),
		metrics:  NewMetrics(),
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(s.logger, s.metrics))

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/schedules/solve", s.solveSchedule)
		v1.POST("/stores/:storeID/schedules/generate", s.generateSchedule)
		v1.GET("/stores/:storeID/schedules/:weekStart", s.viewSchedule)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler for the API
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
