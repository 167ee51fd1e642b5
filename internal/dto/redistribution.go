package dto

import (
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// CoproSaleRedistributionRequest describes a sale by the copropriété whose
// proceeds must be split between reserves and the participants.
type CoproSaleRedistributionRequest struct {
	Participants     []domain.Participant `json:"participants" binding:"required,min=1"`
	BuyerName        string               `json:"buyerName" binding:"required"`
	SaleDate         time.Time            `json:"saleDate" binding:"required"`
	DeedDate         time.Time            `json:"deedDate" binding:"required"`
	TotalPrice       float64              `json:"totalPrice" binding:"required,gt=0"`
	ReservesSharePct float64              `json:"reservesSharePct" binding:"gte=0,lte=100"`
}

// CoproSaleRedistributionResponse returns the reserves cut and each
// participant's share of the remainder.
type CoproSaleRedistributionResponse struct {
	ToReserves     float64            `json:"toReserves"`
	ToParticipants float64            `json:"toParticipants"`
	Shares         map[string]float64 `json:"shares"`
}
