package dto

import (
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// PortagePriceRequest asks for the resale price of a carried lot.
// Params may be omitted, in which case the formula defaults apply.
type PortagePriceRequest struct {
	BasePrice    float64                      `json:"basePrice" binding:"required,gt=0"`
	FeesRecovery float64                      `json:"feesRecovery" binding:"gte=0"`
	AcquiredDate time.Time                    `json:"acquiredDate" binding:"required"`
	SaleDate     time.Time                    `json:"saleDate" binding:"required,gtefield=AcquiredDate"`
	Params       *domain.PortageFormulaParams `json:"params"`
}

// FormulaParamsOrDefault resolves the optional formula override.
func (r PortagePriceRequest) FormulaParamsOrDefault() domain.PortageFormulaParams {
	if r.Params != nil {
		return *r.Params
	}
	return domain.DefaultPortageFormulaParams()
}

// CarryingCostRequest asks for the monthly carrying cost estimate of a lot
// held by the copropriété while it waits for a buyer.
type CarryingCostRequest struct {
	LoanAmount     float64 `json:"loanAmount" binding:"required,gt=0"`
	AnnualRate     float64 `json:"annualRate" binding:"gte=0"`
	DurationMonths float64 `json:"durationMonths" binding:"required,gt=0"`
}
