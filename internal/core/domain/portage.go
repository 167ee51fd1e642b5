package domain

// Copro pricing constants for lots the copropriété carries itself.
const (
	CoproBasePricePerM2      = 1377
	CoproCarryingCostRate    = 0.05 // Annual, fraction
	CoproMonthlyCarryingCost = 500  // EUR per month, newcomer-from-copro pricing
)

// PortagePriceBreakdown decomposes the resale price of a lot held in portage.
type PortagePriceBreakdown struct {
	BasePrice            float64 `json:"basePrice"`
	Indexation           float64 `json:"indexation"`
	CarryingCostRecovery float64 `json:"carryingCostRecovery"`
	FeesRecovery         float64 `json:"feesRecovery"`
	TotalPrice           float64 `json:"totalPrice"`
	YearsHeld            float64 `json:"yearsHeld"`
	MonthsHeld           float64 `json:"monthsHeld"`
}

// CarryingCostBreakdown estimates what holding a lot costs per month.
type CarryingCostBreakdown struct {
	MonthlyInterest  float64 `json:"monthlyInterest"`
	MonthlyPrecompte float64 `json:"monthlyPrecompte"`
	MonthlyInsurance float64 `json:"monthlyInsurance"`
	MonthlyTotal     float64 `json:"monthlyTotal"`
	DurationMonths   float64 `json:"durationMonths"`
	TotalOverPeriod  float64 `json:"totalOverPeriod"`
}

// CoproSalePriceBreakdown decomposes the price of surface bought from the copropriété.
type CoproSalePriceBreakdown struct {
	BasePrice            float64 `json:"basePrice"`
	Indexation           float64 `json:"indexation"`
	CarryingCostRecovery float64 `json:"carryingCostRecovery"`
	TotalPrice           float64 `json:"totalPrice"`
	PricePerM2           float64 `json:"pricePerM2"`
	SurfacePurchased     float64 `json:"surfacePurchased"`
}

// CoproSaleDistribution splits copro sale proceeds between reserves and participants.
type CoproSaleDistribution struct {
	ToCoproReserves float64            `json:"toCoproReserves"`
	ToParticipants  map[string]float64 `json:"toParticipants"`
}
