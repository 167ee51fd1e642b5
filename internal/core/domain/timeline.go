package domain

import "time"

// DefaultDeedDate anchors timelines when no deed date was recorded.
var DefaultDeedDate = time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

// DefaultCoproReservesShare is the percentage of a copro sale retained as reserves.
const DefaultCoproReservesShare = 30.0

// TransactionType tags timeline money movements.
type TransactionKind string

const (
	TransactionPortageSale TransactionKind = "portage_sale"
	TransactionCoproSale   TransactionKind = "copro_sale"
)

// TransactionDelta is applied additively to a participant's running totals.
type TransactionDelta struct {
	TotalCost  float64 `json:"totalCost"`
	LoanNeeded float64 `json:"loanNeeded"`
	Reason     string  `json:"reason"`
}

// TimelineTransaction records a sale affecting participant totals on a date.
type TimelineTransaction struct {
	Date   time.Time        `json:"date"`
	Kind   TransactionKind  `json:"kind"`
	Buyer  string           `json:"buyer"`
	Seller string           `json:"seller"`
	Amount float64          `json:"amount"`
	Delta  TransactionDelta `json:"delta"`
}

// ProjectionState is the point-in-time state derived by folding events.
// It is never persisted; replay is the source of truth.
type ProjectionState struct {
	CurrentDate        time.Time             `json:"currentDate"`
	Participants       []Participant         `json:"participants"`
	Copropriete        CoproEntity           `json:"copropriete"`
	ProjectParams      ProjectParams         `json:"projectParams"`
	DeedDate           time.Time             `json:"deedDate"`
	CoproReservesShare float64               `json:"coproReservesShare"`
	TransactionHistory []TimelineTransaction `json:"transactionHistory"`
}

// FindParticipant returns the named participant, or nil.
func (s *ProjectionState) FindParticipant(name string) *Participant {
	for i := range s.Participants {
		if s.Participants[i].Name == name {
			return &s.Participants[i]
		}
	}
	return nil
}

// CoproSnapshot captures the copropriété's inventory at a date where it changed.
type CoproSnapshot struct {
	Date            time.Time `json:"date"`
	AvailableLots   int       `json:"availableLots"`
	TotalSurface    float64   `json:"totalSurface"`
	SoldThisDate    int       `json:"soldThisDate"`
	ReserveIncrease float64   `json:"reserveIncrease"`
	ColorZone       string    `json:"colorZone"`
}

// ParticipantSnapshot is one participant's point-in-time financial position.
type ParticipantSnapshot struct {
	Date                 time.Time `json:"date"`
	Name                 string    `json:"name"`
	TotalCost            float64   `json:"totalCost"`
	LoanNeeded           float64   `json:"loanNeeded"`
	MonthlyPayment       float64   `json:"monthlyPayment"`
	ShowFinancingDetails bool      `json:"showFinancingDetails"`
}

// TimelineSnapshot groups everything the timeline shows for one date.
type TimelineSnapshot struct {
	Date         time.Time             `json:"date"`
	Participants []ParticipantSnapshot `json:"participants"`
	Copro        *CoproSnapshot        `json:"copro,omitempty"`
	Transactions []TimelineTransaction `json:"transactions,omitempty"`
}
