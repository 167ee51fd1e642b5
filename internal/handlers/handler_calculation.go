package handlers

import (
	"log/slog"
	"net/http"

	"github.com/castor-coop/credit-castor/internal/core/services"
	"github.com/castor-coop/credit-castor/internal/dto"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// calculationHandler handles HTTP requests for the cost and financing table.
type calculationHandler struct {
	calcService *services.CalculationService
}

// newCalculationHandler creates a new calculationHandler.
func newCalculationHandler(cs *services.CalculationService) *calculationHandler {
	return &calculationHandler{
		calcService: cs,
	}
}

// RegisterCalculationRoutes registers routes related to cost calculations.
func RegisterCalculationRoutes(rg *gin.RouterGroup, cs *services.CalculationService) {
	h := newCalculationHandler(cs)

	rg.POST("/calculations", h.calculate)
}

// calculate godoc
// @Summary Compute the full cost and financing table
// @Description Computes per-participant purchase shares, fees, works and loan figures plus project totals
// @Tags calculations
// @Accept  json
// @Produce  json
// @Param   request body dto.CalculateRequest true "Participants and project parameters"
// @Success 200 {object} dto.CalculationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /calculations [post]
func (h *calculationHandler) calculate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Calculate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	results := h.calcService.CalculateAll(req.Participants, req.Params, req.UnitDetails)

	logger.Info("Calculation completed", slog.Int("participants", len(req.Participants)))
	c.JSON(http.StatusOK, dto.ToCalculationResponse(results))
}
