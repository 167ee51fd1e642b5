package domain

import "time"

// CashFlowType tags a cash flow transaction by what it pays for.
type CashFlowType string

const (
	CashFlowLotPurchase CashFlowType = "LOT_PURCHASE"
	CashFlowNotaryFees  CashFlowType = "NOTARY_FEES"
	CashFlowLoanPayment CashFlowType = "LOAN_PAYMENT"
	CashFlowSaleProceed CashFlowType = "SALE_PROCEEDS"
)

// CashFlowCategory distinguishes one-shot from recurring transactions.
type CashFlowCategory string

const (
	CashFlowOneShot   CashFlowCategory = "one-shot"
	CashFlowRecurring CashFlowCategory = "recurring"
)

// CashFlowTransaction is one ledger line. Negative amounts are cash out.
type CashFlowTransaction struct {
	Date      time.Time        `json:"date"`
	Type      CashFlowType     `json:"type"`
	Category  CashFlowCategory `json:"category"`
	Label     string           `json:"label"`
	Amount    float64          `json:"amount"`
	Principal float64          `json:"principal,omitempty"`
	Interest  float64          `json:"interest,omitempty"`
	Balance   float64          `json:"balance"` // Running balance after this line
	LotID     string           `json:"lotID,omitempty"`
}

// CashFlowSummary aggregates a participant's ledger.
type CashFlowSummary struct {
	TotalInvested   float64 `json:"totalInvested"`
	TotalReceived   float64 `json:"totalReceived"`
	NetPosition     float64 `json:"netPosition"`
	MonthlyBurnRate float64 `json:"monthlyBurnRate"`
}

// ParticipantCashFlow is the full projected ledger for one participant.
type ParticipantCashFlow struct {
	ParticipantName string                `json:"participantName"`
	Transactions    []CashFlowTransaction `json:"transactions"`
	Summary         CashFlowSummary       `json:"summary"`
}
