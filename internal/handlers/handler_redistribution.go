package handlers

import (
	"log/slog"
	"net/http"

	"github.com/castor-coop/credit-castor/internal/core/services"
	"github.com/castor-coop/credit-castor/internal/dto"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// redistributionHandler handles HTTP requests for splitting sale proceeds.
type redistributionHandler struct {
	redistributionService *services.RedistributionService
	portageService        *services.PortageService
}

// newRedistributionHandler creates a new redistributionHandler.
func newRedistributionHandler(rs *services.RedistributionService, ps *services.PortageService) *redistributionHandler {
	return &redistributionHandler{
		redistributionService: rs,
		portageService:        ps,
	}
}

// registerRedistributionRoutes registers routes related to proceeds redistribution.
func registerRedistributionRoutes(rg *gin.RouterGroup, rs *services.RedistributionService, ps *services.PortageService) {
	h := newRedistributionHandler(rs, ps)

	redistribution := rg.Group("/redistribution")
	{
		redistribution.POST("/copro-sale", h.coproSale)
	}
}

// coproSale godoc
// @Summary Split the proceeds of a copropriété sale
// @Description Takes the reserves cut off the total price and splits the remainder between participants by quotité
// @Tags redistribution
// @Accept  json
// @Produce  json
// @Param   request body dto.CoproSaleRedistributionRequest true "Sale details"
// @Success 200 {object} dto.CoproSaleRedistributionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /redistribution/copro-sale [post]
func (h *redistributionHandler) coproSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CoproSaleRedistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CoproSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	toReserves, toParticipants := h.portageService.SplitCoproSale(req.TotalPrice, req.ReservesSharePct)
	shares := h.redistributionService.RedistributeCoproSale(
		req.Participants,
		req.BuyerName,
		req.SaleDate,
		req.DeedDate,
		toParticipants,
	)

	logger.Info("Copro sale redistributed",
		slog.String("buyer", req.BuyerName),
		slog.Int("participants", len(req.Participants)),
	)
	c.JSON(http.StatusOK, dto.CoproSaleRedistributionResponse{
		ToReserves:     toReserves,
		ToParticipants: toParticipants,
		Shares:         shares,
	})
}
