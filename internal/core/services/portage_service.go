package services

import (
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/utils"
)

// PortageService prices lots held in deferred ownership and surface sold out
// of the copropriété's inventory.
type PortageService struct{}

func NewPortageService() *PortageService {
	return &PortageService{}
}

// ResalePrice prices a portage lot at its sale date. Indexation scales
// linearly with the holding period; carrying cost recovery is a flat monthly
// amount per month held.
func (s *PortageService) ResalePrice(basePrice, feesRecovery float64, acquiredDate, saleDate time.Time, params domain.PortageFormulaParams) domain.PortagePriceBreakdown {
	yearsHeld := utils.YearsBetween(acquiredDate, saleDate)
	monthsHeld := utils.YearsToMonths(yearsHeld)

	indexation := basePrice * params.IndexationRate / 100 * yearsHeld
	carrying := params.CarryingCostRecovery * monthsHeld

	return domain.PortagePriceBreakdown{
		BasePrice:            basePrice,
		Indexation:           indexation,
		CarryingCostRecovery: carrying,
		FeesRecovery:         feesRecovery,
		TotalPrice:           basePrice + indexation + carrying + feesRecovery,
		YearsHeld:            yearsHeld,
		MonthsHeld:           monthsHeld,
	}
}

// CarryingCostEstimate breaks down what holding a lot costs each month: loan
// interest plus the lot's share of précompte and insurance.
func (s *PortageService) CarryingCostEstimate(loanAmount, annualRate, durationMonths float64) domain.CarryingCostBreakdown {
	monthlyInterest := loanAmount * annualRate / 100 / 12
	monthlyPrecompte := PrecompteImmobilierYearly / 12
	monthlyInsurance := AssuranceYearly / 12
	monthlyTotal := monthlyInterest + monthlyPrecompte + monthlyInsurance

	return domain.CarryingCostBreakdown{
		MonthlyInterest:  monthlyInterest,
		MonthlyPrecompte: monthlyPrecompte,
		MonthlyInsurance: monthlyInsurance,
		MonthlyTotal:     monthlyTotal,
		DurationMonths:   durationMonths,
		TotalOverPeriod:  monthlyTotal * durationMonths,
	}
}

// CoproSaleInput describes surface sold out of the copropriété's inventory.
type CoproSaleInput struct {
	TotalProjectCost        float64
	RenovationCost          float64
	RenovationStartDate     *time.Time
	TotalSurface            float64
	SurfacePurchased        float64
	AcquiredDate            time.Time
	SaleDate                time.Time
	AccumulatedCarrying     float64
	CoproRemainingSurface   float64
	Params                  domain.PortageFormulaParams
}

// CoproSalePrice prices surface bought from the copropriété. Before the
// renovation starts the buyer does not pay for works that have not begun.
// Accumulated carrying costs are recovered proportionally to the surface sold.
func (s *PortageService) CoproSalePrice(in CoproSaleInput) domain.CoproSalePriceBreakdown {
	if in.TotalSurface <= 0 || in.SurfacePurchased <= 0 {
		return domain.CoproSalePriceBreakdown{}
	}

	cost := in.TotalProjectCost
	if in.RenovationStartDate != nil && in.SaleDate.Before(*in.RenovationStartDate) {
		cost -= in.RenovationCost
	}
	pricePerM2 := cost / in.TotalSurface
	base := pricePerM2 * in.SurfacePurchased

	yearsHeld := utils.YearsBetween(in.AcquiredDate, in.SaleDate)
	indexation := base * in.Params.IndexationRate / 100 * yearsHeld

	var carrying float64
	if in.CoproRemainingSurface > 0 {
		carrying = in.AccumulatedCarrying * in.SurfacePurchased / in.CoproRemainingSurface
	}

	return domain.CoproSalePriceBreakdown{
		BasePrice:            base,
		Indexation:           indexation,
		CarryingCostRecovery: carrying,
		TotalPrice:           base + indexation + carrying,
		PricePerM2:           pricePerM2,
		SurfacePurchased:     in.SurfacePurchased,
	}
}

// NewcomerPriceFromCopro prices a full lot bought from the copropriété by
// quotité: the buyer pays their share of the project cost plus indexation and
// their quotité of the monthly carrying cost over the holding period.
func (s *PortageService) NewcomerPriceFromCopro(quotite, totalProjectCost float64, acquiredDate, saleDate time.Time, params domain.PortageFormulaParams) domain.PortagePriceBreakdown {
	base := quotite * totalProjectCost
	yearsHeld := utils.YearsBetween(acquiredDate, saleDate)
	monthsHeld := utils.YearsToMonths(yearsHeld)

	indexation := base * params.IndexationRate / 100 * yearsHeld
	carrying := domain.CoproMonthlyCarryingCost * monthsHeld * quotite

	return domain.PortagePriceBreakdown{
		BasePrice:            base,
		Indexation:           indexation,
		CarryingCostRecovery: carrying,
		TotalPrice:           base + indexation + carrying,
		YearsHeld:            yearsHeld,
		MonthsHeld:           monthsHeld,
	}
}

// SplitCoproSale splits sale proceeds between reserves and the amount left to
// redistribute to participants.
func (s *PortageService) SplitCoproSale(totalPrice, reservesSharePct float64) (toReserves, toParticipants float64) {
	toReserves = totalPrice * reservesSharePct / 100
	return toReserves, totalPrice - toReserves
}
