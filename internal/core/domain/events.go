package domain

import "time"

// EventType discriminates the DomainEvent union.
type EventType string

const (
	EventInitialPurchase       EventType = "INITIAL_PURCHASE"
	EventNewcomerJoins         EventType = "NEWCOMER_JOINS"
	EventHiddenLotRevealed     EventType = "HIDDEN_LOT_REVEALED"
	EventPortageSettlement     EventType = "PORTAGE_SETTLEMENT"
	EventCoproTakesLoan        EventType = "COPRO_TAKES_LOAN"
	EventParticipantExits      EventType = "PARTICIPANT_EXITS"
	EventCoproSale             EventType = "COPRO_SALE"
	EventFraisGenerauxYear1    EventType = "FRAIS_GENERAUX_YEAR_1"
	EventFraisGenerauxYear2    EventType = "FRAIS_GENERAUX_YEAR_2"
	EventFraisGenerauxYear3    EventType = "FRAIS_GENERAUX_YEAR_3"
	EventNewcomerReimbursement EventType = "NEWCOMER_FRAIS_GENERAUX_REIMBURSEMENT"
)

// DomainEvent is the tagged union over all timeline events. Events are
// immutable once created; the event log is the source of truth and every
// projection is a pure function of (events, asOfDate).
type DomainEvent interface {
	EventID() string
	EventType() EventType
	When() time.Time
}

// BaseEvent carries the fields shared by every event.
type BaseEvent struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}

func (e BaseEvent) EventID() string { return e.ID }

func (e BaseEvent) When() time.Time { return e.Date }

// CoproSetup describes the copropriété's initial inventory at purchase time.
type CoproSetup struct {
	HiddenLots         []CoproLot `json:"hiddenLots"`
	InitialCashReserve float64    `json:"initialCashReserve"`
}

// InitialPurchaseEvent founds the project: deed signature, founders and
// project parameters.
type InitialPurchaseEvent struct {
	BaseEvent
	Participants       []Participant `json:"participants"`
	ProjectParams      ProjectParams `json:"projectParams"`
	DeedDate           time.Time     `json:"deedDate"`
	CoproSetup         *CoproSetup   `json:"coproSetup,omitempty"`
	CoproReservesShare float64       `json:"coproReservesShare"`
}

func (e InitialPurchaseEvent) EventType() EventType { return EventInitialPurchase }

// Acquisition describes where and at what price a newcomer bought in.
type Acquisition struct {
	From      string                 `json:"from"` // Seller name or CoproprieteName
	LotID     string                 `json:"lotID"`
	Price     float64                `json:"price"`
	Breakdown *PortagePriceBreakdown `json:"breakdown,omitempty"`
}

// NewcomerFinancing is the financing snapshot attached to a purchase event.
type NewcomerFinancing struct {
	LoanAmount     float64 `json:"loanAmount"`
	CapitalApporte float64 `json:"capitalApporte"`
	MonthlyPayment float64 `json:"monthlyPayment"`
}

// NewcomerJoinsEvent records a newcomer buying a lot from a founder or the copropriété.
type NewcomerJoinsEvent struct {
	BaseEvent
	Buyer             Participant        `json:"buyer"`
	Acquisition       Acquisition        `json:"acquisition"`
	RegistrationFees  float64            `json:"registrationFees"`
	Financing         *NewcomerFinancing `json:"financing,omitempty"`
}

func (e NewcomerJoinsEvent) EventType() EventType { return EventNewcomerJoins }

// HiddenLotRevealedEvent records a hidden copro lot becoming buildable and sold.
type HiddenLotRevealedEvent struct {
	BaseEvent
	Buyer            Participant        `json:"buyer"`
	LotID            string             `json:"lotID"`
	SalePrice        float64            `json:"salePrice"`
	Redistribution   map[string]float64 `json:"redistribution"`
	RegistrationFees float64            `json:"registrationFees"`
}

func (e HiddenLotRevealedEvent) EventType() EventType { return EventHiddenLotRevealed }

// PortageSettlementEvent closes a private portage: the holder sells to the
// buyer and recovers carrying costs.
type PortageSettlementEvent struct {
	BaseEvent
	Seller               string  `json:"seller"`
	Buyer                string  `json:"buyer"`
	LotID                string  `json:"lotID"`
	CarryingPeriodMonths float64 `json:"carryingPeriodMonths"`
	CarryingCosts        float64 `json:"carryingCosts"`
	SaleProceeds         float64 `json:"saleProceeds"`
	NetPosition          float64 `json:"netPosition"`
}

func (e PortageSettlementEvent) EventType() EventType { return EventPortageSettlement }

// CoproTakesLoanEvent records the copropriété borrowing for shared works.
type CoproTakesLoanEvent struct {
	BaseEvent
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interestRate"`
	DurationYears  int     `json:"durationYears"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	Purpose        string  `json:"purpose,omitempty"`
}

func (e CoproTakesLoanEvent) EventType() EventType { return EventCoproTakesLoan }

// ParticipantExitsEvent records a participant leaving; their lot goes to a
// newcomer, an existing participant or back to the copropriété.
type ParticipantExitsEvent struct {
	BaseEvent
	ParticipantName string    `json:"participantName"`
	BuyerType       BuyerType `json:"buyerType"`
	BuyerName       string    `json:"buyerName,omitempty"`
	LotID           string    `json:"lotID,omitempty"`
	SalePrice       float64   `json:"salePrice"`
}

func (e ParticipantExitsEvent) EventType() EventType { return EventParticipantExits }

// CoproSaleEvent records surface sold out of the copropriété's inventory.
type CoproSaleEvent struct {
	BaseEvent
	Buyer            Participant             `json:"buyer"`
	LotID            string                  `json:"lotID,omitempty"`
	SurfacePurchased float64                 `json:"surfacePurchased"`
	Breakdown        CoproSalePriceBreakdown `json:"breakdown"`
	Distribution     CoproSaleDistribution   `json:"distribution"`
	Financing        *NewcomerFinancing      `json:"financing,omitempty"`
}

func (e CoproSaleEvent) EventType() EventType { return EventCoproSale }

// FraisGenerauxYearlyEvent splits one project year's shared running costs
// equally among the participants active that year.
type FraisGenerauxYearlyEvent struct {
	BaseEvent
	Year                 int       `json:"year"` // 1, 2 or 3
	Type                 EventType `json:"type"`
	TotalAmount          float64   `json:"totalAmount"`
	AmountPerParticipant float64   `json:"amountPerParticipant"`
	Participants         []string  `json:"participants"`
}

func (e FraisGenerauxYearlyEvent) EventType() EventType { return e.Type }

// NewcomerReimbursementEvent compensates founders when a newcomer joins after
// a yearly frais généraux split was already paid.
type NewcomerReimbursementEvent struct {
	BaseEvent
	Newcomer       string             `json:"newcomer"`
	Year           int                `json:"year"`
	TotalAmount    float64            `json:"totalAmount"`
	Reimbursements map[string]float64 `json:"reimbursements"` // Founder name to amount received
}

func (e NewcomerReimbursementEvent) EventType() EventType { return EventNewcomerReimbursement }
