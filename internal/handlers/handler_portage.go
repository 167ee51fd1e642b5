package handlers

import (
	"log/slog"
	"net/http"

	"github.com/castor-coop/credit-castor/internal/core/services"
	"github.com/castor-coop/credit-castor/internal/dto"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// portageHandler handles HTTP requests for carried-lot pricing.
type portageHandler struct {
	portageService *services.PortageService
}

// newPortageHandler creates a new portageHandler.
func newPortageHandler(ps *services.PortageService) *portageHandler {
	return &portageHandler{
		portageService: ps,
	}
}

// registerPortageRoutes registers routes related to portage pricing.
func registerPortageRoutes(rg *gin.RouterGroup, ps *services.PortageService) {
	h := newPortageHandler(ps)

	portage := rg.Group("/portage")
	{
		portage.POST("/price", h.resalePrice)
		portage.POST("/carrying-costs", h.carryingCosts)
	}
}

// resalePrice godoc
// @Summary Price a carried lot for resale
// @Description Computes base price plus indexation and carrying cost recovery for a lot carried by a founder
// @Tags portage
// @Accept  json
// @Produce  json
// @Param   request body dto.PortagePriceRequest true "Lot price and holding period"
// @Success 200 {object} domain.PortagePriceBreakdown
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /portage/price [post]
func (h *portageHandler) resalePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PortagePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResalePrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	breakdown := h.portageService.ResalePrice(
		req.BasePrice,
		req.FeesRecovery,
		req.AcquiredDate,
		req.SaleDate,
		req.FormulaParamsOrDefault(),
	)

	c.JSON(http.StatusOK, breakdown)
}

// carryingCosts godoc
// @Summary Estimate the monthly carrying cost of a held lot
// @Description Breaks down interest, insurance and management cost of a lot held by the copropriété
// @Tags portage
// @Accept  json
// @Produce  json
// @Param   request body dto.CarryingCostRequest true "Loan and duration"
// @Success 200 {object} domain.CarryingCostBreakdown
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /portage/carrying-costs [post]
func (h *portageHandler) carryingCosts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CarryingCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CarryingCosts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	breakdown := h.portageService.CarryingCostEstimate(req.LoanAmount, req.AnnualRate, req.DurationMonths)

	c.JSON(http.StatusOK, breakdown)
}
