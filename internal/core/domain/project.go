package domain

// DefaultMaxTotalLots caps how many lots a project may carry when the
// project params do not say otherwise.
const DefaultMaxTotalLots = 10

// DefaultParachevementsPerM2 applies when neither the participant nor the
// unit details carry a finishing price.
const DefaultParachevementsPerM2 = 500

// NotaryFixedFeePerLot is the flat notary fee charged per lot.
const NotaryFixedFeePerLot = 1000

// TravauxCommunsItem is one shared-works line item. New-style items carry
// sqm and per-m² prices; legacy items only carry a flat Amount.
type TravauxCommunsItem struct {
	Label                    string  `json:"label"`
	Sqm                      float64 `json:"sqm"`
	CascoPricePerSqm         float64 `json:"cascoPricePerSqm"`
	ParachevementPricePerSqm float64 `json:"parachevementPricePerSqm"`
	Amount                   float64 `json:"amount"` // Legacy flat amount, kept for back-compat
}

// TravauxCommuns groups the shared-works line items.
type TravauxCommuns struct {
	Enabled bool                 `json:"enabled"`
	Items   []TravauxCommunsItem `json:"items"`
}

// ProjectParams holds the collective, rarely-changing project-level costs.
// Absent numeric fields are zero.
type ProjectParams struct {
	TotalPurchasePrice float64        `json:"totalPurchasePrice"`
	DemolitionCost     float64        `json:"demolitionCost"`
	InfrastructureCost float64        `json:"infrastructureCost"`
	CascoPricePerM2    float64        `json:"cascoPricePerM2"`
	TVARate            float64        `json:"tvaRate"` // Percent
	TravauxCommuns     TravauxCommuns `json:"travauxCommuns"`
	MaxTotalLots       int            `json:"maxTotalLots"`
	RenovationCost     float64        `json:"renovationCost"`
}

// PortageFormulaParams parameterizes the deferred-purchase resale formula.
type PortageFormulaParams struct {
	IndexationRate       float64 `json:"indexationRate"`       // Annual percent
	CarryingCostRecovery float64 `json:"carryingCostRecovery"` // Flat EUR per month held
	AverageInterestRate  float64 `json:"averageInterestRate"`  // Annual percent
	CoproReservesShare   float64 `json:"coproReservesShare"`   // Percent of a copro sale kept as reserves
}

// DefaultPortageFormulaParams returns the formula defaults used when a
// scenario does not pin its own values.
func DefaultPortageFormulaParams() PortageFormulaParams {
	return PortageFormulaParams{
		IndexationRate:       2,
		CarryingCostRecovery: 699,
		AverageInterestRate:  4,
		CoproReservesShare:   30,
	}
}

// UnitDetail carries per-unit price overrides.
type UnitDetail struct {
	ParachevementsPricePerSqm *float64 `json:"parachevementsPricePerSqm,omitempty"`
}
