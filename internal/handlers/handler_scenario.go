package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/castor-coop/credit-castor/internal/apperrors"
	portssvc "github.com/castor-coop/credit-castor/internal/core/ports/services"
	"github.com/castor-coop/credit-castor/internal/dto"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// scenarioHandler handles HTTP requests related to stored scenarios.
type scenarioHandler struct {
	scenarioService portssvc.ScenarioSvcFacade
}

// newScenarioHandler creates a new scenarioHandler.
func newScenarioHandler(ss portssvc.ScenarioSvcFacade) *scenarioHandler {
	return &scenarioHandler{
		scenarioService: ss,
	}
}

// RegisterScenarioRoutes registers routes related to scenarios.
func RegisterScenarioRoutes(rg *gin.RouterGroup, ss portssvc.ScenarioSvcFacade) {
	h := newScenarioHandler(ss)

	scenarios := rg.Group("/scenarios")
	{
		scenarios.POST("", h.createScenario)
		scenarios.GET("", h.listScenarios)
		scenarios.POST("/import", h.importScenario)
		scenarios.GET("/:scenarioID", h.getScenario)
		scenarios.PUT("/:scenarioID", h.updateScenario)
		scenarios.DELETE("/:scenarioID", h.deleteScenario)
		scenarios.GET("/:scenarioID/export", h.exportScenario)
		scenarios.PUT("/:scenarioID/pinned-participant", h.pinParticipant)
		scenarios.GET("/:scenarioID/pinned-participant", h.getPinnedParticipant)
		scenarios.DELETE("/:scenarioID/pinned-participant", h.unpinParticipant)
	}
}

// createScenario godoc
// @Summary Create a new scenario
// @Description Validates, normalizes and persists a named scenario file
// @Tags scenarios
// @Accept  json
// @Produce  json
// @Param   scenario body dto.CreateScenarioRequest true "Scenario name and file"
// @Success 201 {object} dto.ScenarioResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create scenario"
// @Router /scenarios [post]
func (h *scenarioHandler) createScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateScenario", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create scenario", slog.String("name", req.Name))

	created, err := h.scenarioService.CreateScenario(c.Request.Context(), req.Name, req.File)
	if err != nil {
		h.respondError(c, err, "Failed to create scenario")
		return
	}

	logger.Info("Scenario created successfully", slog.String("scenario_id", created.ScenarioID))
	c.JSON(http.StatusCreated, dto.ToScenarioResponse(created))
}

// getScenario godoc
// @Summary Get a scenario by ID
// @Description Retrieves a stored scenario with its full file
// @Tags scenarios
// @Produce  json
// @Param   scenarioID path string true "Scenario ID"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 404 {object} map[string]string "Scenario not found"
// @Router /scenarios/{scenarioID} [get]
func (h *scenarioHandler) getScenario(c *gin.Context) {
	scenarioID := c.Param("scenarioID")

	scenario, err := h.scenarioService.GetScenarioByID(c.Request.Context(), scenarioID)
	if err != nil {
		h.respondError(c, err, "Failed to get scenario")
		return
	}

	c.JSON(http.StatusOK, dto.ToScenarioResponse(scenario))
}

// listScenarios godoc
// @Summary List all scenarios
// @Description Lists stored scenarios, most recently updated first
// @Tags scenarios
// @Produce  json
// @Success 200 {array} dto.ScenarioSummaryResponse
// @Failure 500 {object} map[string]string "Failed to list scenarios"
// @Router /scenarios [get]
func (h *scenarioHandler) listScenarios(c *gin.Context) {
	scenarios, err := h.scenarioService.ListScenarios(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list scenarios")
		return
	}

	c.JSON(http.StatusOK, dto.ToListScenarioResponse(scenarios))
}

// updateScenario godoc
// @Summary Update a scenario
// @Description Replaces a stored scenario's name and file
// @Tags scenarios
// @Accept  json
// @Produce  json
// @Param   scenarioID path string true "Scenario ID"
// @Param   scenario body dto.UpdateScenarioRequest true "New name and file"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Router /scenarios/{scenarioID} [put]
func (h *scenarioHandler) updateScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scenarioID := c.Param("scenarioID")
	var req dto.UpdateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateScenario", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.scenarioService.UpdateScenario(c.Request.Context(), scenarioID, req.Name, req.File)
	if err != nil {
		h.respondError(c, err, "Failed to update scenario")
		return
	}

	logger.Info("Scenario updated successfully", slog.String("scenario_id", scenarioID))
	c.JSON(http.StatusOK, dto.ToScenarioResponse(updated))
}

// deleteScenario godoc
// @Summary Delete a scenario
// @Description Removes a stored scenario and its pinned participant
// @Tags scenarios
// @Param   scenarioID path string true "Scenario ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Router /scenarios/{scenarioID} [delete]
func (h *scenarioHandler) deleteScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scenarioID := c.Param("scenarioID")

	if err := h.scenarioService.DeleteScenario(c.Request.Context(), scenarioID); err != nil {
		h.respondError(c, err, "Failed to delete scenario")
		return
	}

	logger.Info("Scenario deleted successfully", slog.String("scenario_id", scenarioID))
	c.Status(http.StatusNoContent)
}

// exportScenario godoc
// @Summary Export a scenario file
// @Description Returns the scenario in its versioned on-disk JSON format
// @Tags scenarios
// @Produce  json
// @Param   scenarioID path string true "Scenario ID"
// @Success 200 {object} domain.ScenarioFile
// @Failure 404 {object} map[string]string "Scenario not found"
// @Router /scenarios/{scenarioID}/export [get]
func (h *scenarioHandler) exportScenario(c *gin.Context) {
	scenarioID := c.Param("scenarioID")

	data, err := h.scenarioService.ExportScenario(c.Request.Context(), scenarioID)
	if err != nil {
		h.respondError(c, err, "Failed to export scenario")
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

// importScenario godoc
// @Summary Import a scenario file
// @Description Migrates an older-format scenario file if needed and persists it under the given name
// @Tags scenarios
// @Accept  json
// @Produce  json
// @Param   request body dto.ImportScenarioRequest true "Name and raw scenario file"
// @Success 201 {object} dto.ScenarioResponse
// @Failure 400 {object} map[string]string "Invalid or unparsable file"
// @Router /scenarios/import [post]
func (h *scenarioHandler) importScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportScenario", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	imported, err := h.scenarioService.ImportScenario(c.Request.Context(), req.Name, []byte(req.Data))
	if err != nil {
		h.respondError(c, err, "Failed to import scenario")
		return
	}

	logger.Info("Scenario imported successfully", slog.String("scenario_id", imported.ScenarioID))
	c.JSON(http.StatusCreated, dto.ToScenarioResponse(imported))
}

// pinParticipant godoc
// @Summary Pin a participant on a scenario
// @Description Stores the participant the scenario should open on
// @Tags scenarios
// @Accept  json
// @Param   scenarioID path string true "Scenario ID"
// @Param   request body dto.PinParticipantRequest true "Participant name"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown participant"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Router /scenarios/{scenarioID}/pinned-participant [put]
func (h *scenarioHandler) pinParticipant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scenarioID := c.Param("scenarioID")
	var req dto.PinParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PinParticipant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.scenarioService.PinParticipant(c.Request.Context(), scenarioID, req.ParticipantName); err != nil {
		h.respondError(c, err, "Failed to pin participant")
		return
	}

	c.Status(http.StatusNoContent)
}

// getPinnedParticipant godoc
// @Summary Get a scenario's pinned participant
// @Description Returns the pinned participant, or 404 when none is pinned
// @Tags scenarios
// @Produce  json
// @Param   scenarioID path string true "Scenario ID"
// @Success 200 {object} domain.Participant
// @Failure 404 {object} map[string]string "No pinned participant"
// @Router /scenarios/{scenarioID}/pinned-participant [get]
func (h *scenarioHandler) getPinnedParticipant(c *gin.Context) {
	scenarioID := c.Param("scenarioID")

	participant, err := h.scenarioService.PinnedParticipant(c.Request.Context(), scenarioID)
	if err != nil {
		h.respondError(c, err, "Failed to get pinned participant")
		return
	}
	if participant == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No participant is pinned on this scenario"})
		return
	}

	c.JSON(http.StatusOK, participant)
}

// unpinParticipant godoc
// @Summary Clear a scenario's pinned participant
// @Tags scenarios
// @Param   scenarioID path string true "Scenario ID"
// @Success 204 "No Content"
// @Router /scenarios/{scenarioID}/pinned-participant [delete]
func (h *scenarioHandler) unpinParticipant(c *gin.Context) {
	scenarioID := c.Param("scenarioID")

	if err := h.scenarioService.UnpinParticipant(c.Request.Context(), scenarioID); err != nil {
		h.respondError(c, err, "Failed to unpin participant")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps service errors onto HTTP statuses.
func (h *scenarioHandler) respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrParse):
		logger.Warn("Invalid scenario input", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate scenario", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
