package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/utils"
)

// Loan terms assumed when a participant has none recorded.
const (
	DefaultLoanRate  = 4.0
	DefaultLoanYears = 20
)

// CashFlowService projects a participant's ledger of one-shot and recurring
// transactions from the deed date forward.
type CashFlowService struct {
	calc *CalculationService
}

func NewCashFlowService(calc *CalculationService) *CashFlowService {
	return &CashFlowService{calc: calc}
}

// BuildParticipantCashFlow builds the ledger for one participant out of the
// event log. An unknown participant, or a log without an initial purchase,
// yields an empty zeroed cash flow rather than an error.
func (s *CashFlowService) BuildParticipantCashFlow(events []domain.DomainEvent, participantName string, endDate *time.Time) domain.ParticipantCashFlow {
	empty := domain.ParticipantCashFlow{
		ParticipantName: participantName,
		Transactions:    []domain.CashFlowTransaction{},
	}

	var initial *domain.InitialPurchaseEvent
	for _, ev := range events {
		if e, ok := ev.(domain.InitialPurchaseEvent); ok {
			initial = &e
			break
		}
	}
	if initial == nil {
		return empty
	}

	var participant *domain.Participant
	for i := range initial.Participants {
		if initial.Participants[i].Name == participantName {
			participant = &initial.Participants[i]
			break
		}
	}
	if participant == nil {
		return empty
	}

	deedDate := initial.DeedDate
	if deedDate.IsZero() {
		deedDate = initial.Date
	}
	end := utils.DateOrDefault(endDate, time.Now())

	lots := participant.LotsOwned
	if len(lots) == 0 {
		lots = s.synthesizeLot(*participant, *initial)
	}

	var transactions []domain.CashFlowTransaction
	for _, lot := range lots {
		if lot.OriginalPrice > 0 {
			transactions = append(transactions, domain.CashFlowTransaction{
				Date:     deedDate,
				Type:     domain.CashFlowLotPurchase,
				Category: domain.CashFlowOneShot,
				Label:    fmt.Sprintf("Achat lot %s", lot.LotID),
				Amount:   -lot.OriginalPrice,
				LotID:    lot.LotID,
			})
		}
		if lot.OriginalNotaryFees > 0 {
			transactions = append(transactions, domain.CashFlowTransaction{
				Date:     deedDate,
				Type:     domain.CashFlowNotaryFees,
				Category: domain.CashFlowOneShot,
				Label:    fmt.Sprintf("Frais de notaire lot %s", lot.LotID),
				Amount:   -lot.OriginalNotaryFees,
				LotID:    lot.LotID,
			})
		}
	}

	months := int(math.Ceil(utils.MonthsBetween(deedDate, end)))
	rate := participant.InterestRate
	if rate <= 0 {
		rate = DefaultLoanRate
	}
	years := participant.DurationYears
	if years <= 0 {
		years = DefaultLoanYears
	}
	r := rate / 100 / 12
	n := float64(years * 12)

	for _, lot := range lots {
		borrowed := lot.OriginalPrice - participant.CapitalApporte
		if borrowed <= 0 {
			continue
		}
		pmt := s.calc.MonthlyPayment(borrowed, rate, years)
		factor := math.Pow(1+r, n)

		for m := 1; m <= months; m++ {
			date := deedDate.AddDate(0, m, 0)

			// Remaining balance at the start of month m.
			balance := borrowed * (factor - math.Pow(1+r, float64(m-1))) / (factor - 1)
			interest := balance * r

			tx := domain.CashFlowTransaction{
				Date:     date,
				Type:     domain.CashFlowLoanPayment,
				Category: domain.CashFlowRecurring,
				LotID:    lot.LotID,
				Interest: interest,
			}
			if lot.IsPortage {
				// Principal deferred to the eventual sale.
				tx.Label = fmt.Sprintf("Intérêts portage lot %s", lot.LotID)
				tx.Amount = -interest
			} else {
				tx.Label = fmt.Sprintf("Mensualité lot %s", lot.LotID)
				tx.Amount = -pmt
				tx.Principal = pmt - interest
			}
			transactions = append(transactions, tx)
		}
	}

	sortTransactions(transactions)

	var balance float64
	for i := range transactions {
		balance += transactions[i].Amount
		transactions[i].Balance = balance
	}

	return domain.ParticipantCashFlow{
		ParticipantName: participantName,
		Transactions:    transactions,
		Summary:         summarize(transactions),
	}
}

func (s *CashFlowService) synthesizeLot(p domain.Participant, initial domain.InitialPurchaseEvent) []domain.Lot {
	results := s.calc.CalculateAll(initial.Participants, initial.ProjectParams, nil)
	for _, r := range results.Participants {
		if r.Name != p.Name {
			continue
		}
		return []domain.Lot{{
			LotID:              fmt.Sprintf("%s-lot-1", p.Name),
			Surface:            p.Surface,
			AcquiredDate:       initial.Date,
			OriginalPrice:      r.PurchaseShare,
			OriginalNotaryFees: r.DroitEnregistrements + r.FraisNotaireFixe,
		}}
	}
	return nil
}

// sortTransactions orders the ledger by date, keeping same-day lines in
// insertion order so one-shots stay ahead of recurring payments.
func sortTransactions(txs []domain.CashFlowTransaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

func summarize(txs []domain.CashFlowTransaction) domain.CashFlowSummary {
	var summary domain.CashFlowSummary
	var recurringOut float64
	var recurringCount int
	for _, tx := range txs {
		if tx.Amount < 0 {
			summary.TotalInvested += -tx.Amount
			if tx.Category == domain.CashFlowRecurring {
				recurringOut += -tx.Amount
				recurringCount++
			}
		} else {
			summary.TotalReceived += tx.Amount
		}
	}
	summary.NetPosition = summary.TotalReceived - summary.TotalInvested
	if recurringCount > 0 {
		summary.MonthlyBurnRate = recurringOut / float64(recurringCount)
	}
	return summary
}
