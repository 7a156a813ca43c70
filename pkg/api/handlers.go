package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
	"github.com/jakechorley/smart-schedule/pkg/core/services"
	"github.com/jakechorley/smart-schedule/pkg/db"
)

// GenerateScheduleBody is the optional body of the store generate endpoint
type GenerateScheduleBody struct {
	// WeekStart is any date in the target week (YYYY-MM-DD). Empty means the current week.
	WeekStart string `json:"weekStart"`
	Seed      *int64 `json:"seed"`
	DryRun    bool   `json:"dryRun"`
}

// GenerateScheduleResponse is returned by the store generate endpoint
type GenerateScheduleResponse struct {
	ScheduleID string                    `json:"scheduleId,omitempty"`
	StoreID    string                    `json:"storeId"`
	StoreName  string                    `json:"storeName"`
	StaffNames map[string]string         `json:"staffNames"`
	Schedule   *scheduler.ScheduleResult `json:"schedule"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Issues []scheduler.Issue `json:"issues,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	if pinger, ok := s.database.(Pinger); ok {
		if err := pinger.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// solveSchedule runs the engine on a self-contained request without touching the database
func (s *Server) solveSchedule(c *gin.Context) {
	started := time.Now()

	var req scheduler.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := services.SolveSchedule(s.cfg, s.logger, req)
	if err != nil {
		s.writeSolveError(c, started, err)
		return
	}

	s.metrics.observeSolve(outcomeSuccess, started, result.Stats.CoveragePercent)
	c.JSON(http.StatusOK, result)
}

func (s *Server) generateSchedule(c *gin.Context) {
	started := time.Now()

	if s.database == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "database not configured"})
		return
	}

	var body GenerateScheduleBody
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	weekStart, ok := s.parseWeek(c, body.WeekStart)
	if !ok {
		return
	}

	result, err := services.GenerateSchedule(c.Request.Context(), s.database, s.cfg, s.logger, services.GenerateRequest{
		StoreID:   c.Param("storeID"),
		WeekStart: weekStart,
		Seed:      body.Seed,
		DryRun:    body.DryRun,
	})
	if err != nil {
		s.writeSolveError(c, started, err)
		return
	}

	s.metrics.observeSolve(outcomeSuccess, started, result.Schedule.Stats.CoveragePercent)
	c.JSON(http.StatusOK, GenerateScheduleResponse{
		ScheduleID: result.ScheduleID,
		StoreID:    result.Store.ID,
		StoreName:  result.Store.Name,
		StaffNames: result.StaffNames,
		Schedule:   result.Schedule,
	})
}

func (s *Server) viewSchedule(c *gin.Context) {
	if s.database == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "database not configured"})
		return
	}

	weekStart, ok := s.parseWeek(c, c.Param("weekStart"))
	if !ok {
		return
	}

	result, err := services.ViewSchedule(c.Request.Context(), s.database, s.logger, c.Param("storeID"), weekStart)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scheduleId":      result.Schedule.ID,
		"weekStart":       result.Schedule.WeekStart,
		"seed":            result.Schedule.Seed,
		"coveragePercent": result.Schedule.CoveragePercent,
		"fairnessScore":   result.Schedule.FairnessScore,
		"warningCount":    result.Schedule.WarningCount,
		"generatedAt":     result.Schedule.GeneratedAt,
		"shifts":          result.Shifts,
	})
}

// parseWeek parses a YYYY-MM-DD date, defaulting to today in the configured timezone.
// It writes a 400 and returns false on a bad date.
func (s *Server) parseWeek(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Now().In(s.cfg.Location()), true
	}
	t, err := time.Parse(allocator.DateLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "weekStart must be a date in YYYY-MM-DD format"})
		return time.Time{}, false
	}
	return t, true
}

// writeSolveError maps generation errors to status codes and records the outcome
func (s *Server) writeSolveError(c *gin.Context, started time.Time, err error) {
	_ = c.Error(err)

	var verr *scheduler.ValidationError
	switch {
	case errors.As(err, &verr):
		s.metrics.observeSolve(outcomeInvalid, started, 0)
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid schedule request", Issues: verr.Issues})
	case errors.Is(err, db.ErrNotFound):
		s.metrics.observeSolve(outcomeInvalid, started, 0)
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.metrics.observeSolve(outcomeError, started, 0)
		s.logger.Error("Schedule generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to generate schedule"})
	}
}
