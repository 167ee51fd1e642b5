package handlers

import (
	"log/slog"
	"net/http"

	"github.com/castor-coop/credit-castor/internal/core/services"
	"github.com/castor-coop/credit-castor/internal/dto"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashFlowHandler handles HTTP requests for per-participant cash flows.
type cashFlowHandler struct {
	cashFlowService *services.CashFlowService
}

// newCashFlowHandler creates a new cashFlowHandler.
func newCashFlowHandler(cs *services.CashFlowService) *cashFlowHandler {
	return &cashFlowHandler{
		cashFlowService: cs,
	}
}

// registerCashFlowRoutes registers routes related to cash flow projections.
func registerCashFlowRoutes(rg *gin.RouterGroup, cs *services.CashFlowService) {
	h := newCashFlowHandler(cs)

	cashflow := rg.Group("/cashflow")
	{
		cashflow.POST("/projection", h.projection)
	}
}

// projection godoc
// @Summary Project one participant's cash flow
// @Description Reconstructs the month-by-month outflows of a participant from the event log
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   request body dto.CashFlowProjectionRequest true "Event log and participant name"
// @Success 200 {object} domain.ParticipantCashFlow
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /cashflow/projection [post]
func (h *cashFlowHandler) projection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CashFlowProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Projection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	flow := h.cashFlowService.BuildParticipantCashFlow(req.Events, req.ParticipantName, req.EndDate)

	logger.Info("Cash flow projected",
		slog.String("participant", req.ParticipantName),
		slog.Int("transactions", len(flow.Transactions)),
	)
	c.JSON(http.StatusOK, flow)
}
