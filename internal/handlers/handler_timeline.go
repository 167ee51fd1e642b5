package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/castor-coop/credit-castor/internal/core/ports/services"
	"github.com/castor-coop/credit-castor/internal/dto"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// timelineHandler handles HTTP requests for event-log replay and validation.
type timelineHandler struct {
	timelineService portssvc.TimelineSvcFacade
}

// newTimelineHandler creates a new timelineHandler.
func newTimelineHandler(ts portssvc.TimelineSvcFacade) *timelineHandler {
	return &timelineHandler{
		timelineService: ts,
	}
}

// registerTimelineRoutes registers routes related to the event timeline.
func registerTimelineRoutes(rg *gin.RouterGroup, ts portssvc.TimelineSvcFacade) {
	h := newTimelineHandler(ts)

	timeline := rg.Group("/timeline")
	{
		timeline.POST("/replay", h.replay)
		timeline.POST("/validate", h.validate)
	}
}

// replay godoc
// @Summary Replay an event log into ownership state
// @Description Applies the event log in chronological order and returns the resulting state plus per-date snapshots
// @Tags timeline
// @Accept  json
// @Produce  json
// @Param   request body dto.TimelineReplayRequest true "Event log and optional cut-off date"
// @Success 200 {object} dto.TimelineReplayResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /timeline/replay [post]
func (h *timelineHandler) replay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TimelineReplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Replay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	state := h.timelineService.Replay(req.Events, req.AsOf)

	resp := dto.TimelineReplayResponse{
		State:                state,
		CoproSnapshots:       h.timelineService.GenerateCoproSnapshots(req.Events),
		ParticipantSnapshots: h.timelineService.GenerateParticipantSnapshots(req.Events),
	}

	logger.Info("Timeline replayed", slog.Int("events", len(req.Events)))
	c.JSON(http.StatusOK, resp)
}

// validate godoc
// @Summary Validate an event log
// @Description Checks the event log for chronology and consistency problems and returns the warnings found
// @Tags timeline
// @Accept  json
// @Produce  json
// @Param   request body dto.TimelineValidateRequest true "Event log"
// @Success 200 {object} dto.TimelineValidateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /timeline/validate [post]
func (h *timelineHandler) validate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TimelineValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Validate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	warnings := h.timelineService.ValidateChronology(req.Events)
	if warnings == nil {
		warnings = []string{}
	}

	c.JSON(http.StatusOK, dto.TimelineValidateResponse{
		Valid:    len(warnings) == 0,
		Warnings: warnings,
	})
}
