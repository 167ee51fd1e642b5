package domain

import "time"

// BuyerType identifies who takes over a lot when a participant exits.
type BuyerType string

const (
	BuyerNewcomer            BuyerType = "NEWCOMER"
	BuyerExistingParticipant BuyerType = "EXISTING_PARTICIPANT"
	BuyerCopro               BuyerType = "COPRO"
)

// CoproprieteName is the reserved seller name for lots bought from the co-ownership.
const CoproprieteName = "Copropriété"

// PurchaseDetails records where a non-founder's lot came from.
type PurchaseDetails struct {
	BuyingFrom    string                 `json:"buyingFrom"` // Founder name or CoproprieteName
	LotID         string                 `json:"lotID"`
	PurchasePrice float64                `json:"purchasePrice"`
	Breakdown     *PortagePriceBreakdown `json:"breakdown,omitempty"`
}

// Participant represents a person or entity holding one or more lots.
// Surface/Quantity is the legacy flat model; LotsOwned is the itemized model.
type Participant struct {
	Name                 string           `json:"name"` // Unique key within a project
	IsFounder            bool             `json:"isFounder"`
	Enabled              bool             `json:"enabled"`
	EntryDate            *time.Time       `json:"entryDate,omitempty"`
	Surface              float64          `json:"surface"`
	Quantity             int              `json:"quantity"`
	CapitalApporte       float64          `json:"capitalApporte"`
	RegistrationFeesRate float64          `json:"registrationFeesRate"` // Percent
	InterestRate         float64          `json:"interestRate"`         // Annual percent
	DurationYears        int              `json:"durationYears"`
	CascoSqm             *float64         `json:"cascoSqm,omitempty"`            // Override; defaults to Surface
	ParachevementsSqm    *float64         `json:"parachevementsSqm,omitempty"`   // Override; defaults to Surface
	ParachevementsPerM2  *float64         `json:"parachevementsPerM2,omitempty"` // Override; defaults per unit, then 500
	UnitID               string           `json:"unitID,omitempty"`
	LotsOwned            []Lot            `json:"lotsOwned,omitempty"`
	PurchaseDetails      *PurchaseDetails `json:"purchaseDetails,omitempty"`

	// Two-loan financing: loan 1 covers signature costs, loan 2 the
	// construction phase, released after Loan2DelayYears.
	UseTwoLoans           bool     `json:"useTwoLoans"`
	CapitalForLoan2       float64  `json:"capitalForLoan2"`
	Loan2DelayYears       *int     `json:"loan2DelayYears,omitempty"` // Defaults to 2
	Loan2RenovationAmount *float64 `json:"loan2RenovationAmount,omitempty"`
}

// QuantityOrOne returns the lot quantity, treating the unset legacy value as one lot.
func (p Participant) QuantityOrOne() int {
	if p.Quantity <= 0 {
		return 1
	}
	return p.Quantity
}

// EffectiveEntryDate returns the participant's entry date, falling back to the
// deed date for founders and deed date + 1 day for non-founders.
func (p Participant) EffectiveEntryDate(deedDate time.Time) time.Time {
	if p.EntryDate != nil && !p.EntryDate.IsZero() {
		return *p.EntryDate
	}
	if p.IsFounder {
		return deedDate
	}
	return deedDate.AddDate(0, 0, 1)
}
