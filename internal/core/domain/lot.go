package domain

import "time"

// Lot is a unit of surface tracked for ownership and resale.
type Lot struct {
	LotID            string     `json:"lotID"`
	Surface          float64    `json:"surface"`
	UnitID           string     `json:"unitID,omitempty"`
	IsPortage        bool       `json:"isPortage"`
	AcquiredDate     time.Time  `json:"acquiredDate"`
	SoldDate         *time.Time `json:"soldDate,omitempty"`
	SoldTo           string     `json:"soldTo,omitempty"`
	SalePrice        *float64   `json:"salePrice,omitempty"`
	CarryingCosts    float64    `json:"carryingCosts"`
	AllocatedSurface *float64   `json:"allocatedSurface,omitempty"`

	// Original acquisition figures, used by the cash flow projection.
	OriginalPrice      float64 `json:"originalPrice"`
	OriginalNotaryFees float64 `json:"originalNotaryFees"`
}

// CoproLot is a lot held by the copropriété, not yet allocated to a participant.
type CoproLot struct {
	LotID              string     `json:"lotID"`
	Surface            float64    `json:"surface"`
	AcquiredDate       time.Time  `json:"acquiredDate"`
	SoldDate           *time.Time `json:"soldDate,omitempty"`
	SoldTo             string     `json:"soldTo,omitempty"`
	SalePrice          *float64   `json:"salePrice,omitempty"`
	TotalCarryingCosts float64    `json:"totalCarryingCosts"`
	Hidden             bool       `json:"hidden"` // Not yet revealed as buildable/sellable
}

// CoproLoan is a loan taken out by the copropriété itself.
type CoproLoan struct {
	Amount         float64   `json:"amount"`
	InterestRate   float64   `json:"interestRate"`
	DurationYears  int       `json:"durationYears"`
	MonthlyPayment float64   `json:"monthlyPayment"`
	Purpose        string    `json:"purpose,omitempty"`
	StartDate      time.Time `json:"startDate"`
}

// CoproEntity is the co-ownership's own holdings: unsold lots, cash reserves
// and any loans it services.
type CoproEntity struct {
	LotsOwned          []CoproLot  `json:"lotsOwned"`
	CashReserve        float64     `json:"cashReserve"`
	Loans              []CoproLoan `json:"loans"`
	MonthlyObligations float64     `json:"monthlyObligations"`
}

// TotalSurface sums the surface of all lots still held by the copropriété.
func (c CoproEntity) TotalSurface() float64 {
	var total float64
	for _, lot := range c.LotsOwned {
		total += lot.Surface
	}
	return total
}
