package services

import (
	"sort"
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// ExitedLotSurface is the placeholder surface booked when an exiting
// participant's lot returns to the copropriété without itemized lot data.
const ExitedLotSurface = 85.0

// ProjectionService folds the event log into point-in-time state. Replay is
// deterministic and never mutates its input.
type ProjectionService struct{}

func NewProjectionService() *ProjectionService {
	return &ProjectionService{}
}

// SortEvents returns the events ordered by date, stable on ties.
func (s *ProjectionService) SortEvents(events []domain.DomainEvent) []domain.DomainEvent {
	sorted := make([]domain.DomainEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].When().Before(sorted[j].When())
	})
	return sorted
}

// Replay folds events up to asOf (inclusive) into a ProjectionState.
// A nil asOf replays the whole log.
func (s *ProjectionService) Replay(events []domain.DomainEvent, asOf *time.Time) domain.ProjectionState {
	state := domain.ProjectionState{
		DeedDate:           domain.DefaultDeedDate,
		CoproReservesShare: domain.DefaultCoproReservesShare,
	}

	for _, ev := range s.SortEvents(events) {
		if asOf != nil && ev.When().After(*asOf) {
			break
		}
		s.apply(&state, ev)
		state.CurrentDate = ev.When()
	}
	return state
}

func (s *ProjectionService) apply(state *domain.ProjectionState, ev domain.DomainEvent) {
	switch e := ev.(type) {
	case domain.InitialPurchaseEvent:
		s.applyInitialPurchase(state, e)
	case domain.NewcomerJoinsEvent:
		s.applyNewcomerJoins(state, e)
	case domain.HiddenLotRevealedEvent:
		s.applyHiddenLotRevealed(state, e)
	case domain.PortageSettlementEvent:
		s.applyPortageSettlement(state, e)
	case domain.CoproTakesLoanEvent:
		state.Copropriete.Loans = append(state.Copropriete.Loans, domain.CoproLoan{
			Amount:         e.Amount,
			InterestRate:   e.InterestRate,
			DurationYears:  e.DurationYears,
			MonthlyPayment: e.MonthlyPayment,
			Purpose:        e.Purpose,
			StartDate:      e.Date,
		})
		state.Copropriete.CashReserve += e.Amount
		state.Copropriete.MonthlyObligations += e.MonthlyPayment
	case domain.ParticipantExitsEvent:
		s.applyParticipantExits(state, e)
	case domain.CoproSaleEvent:
		s.applyCoproSale(state, e)
	case domain.FraisGenerauxYearlyEvent, domain.NewcomerReimbursementEvent:
		// Money flows between participants and external parties; no
		// ownership or copro inventory change to fold in.
	}
}

// cloneParticipant copies a participant with its own LotsOwned backing
// array so later lot mutations stay inside the projection state.
func cloneParticipant(p domain.Participant) domain.Participant {
	if p.LotsOwned != nil {
		p.LotsOwned = append([]domain.Lot(nil), p.LotsOwned...)
	}
	return p
}

func (s *ProjectionService) applyInitialPurchase(state *domain.ProjectionState, e domain.InitialPurchaseEvent) {
	state.Participants = make([]domain.Participant, 0, len(e.Participants))
	for _, p := range e.Participants {
		state.Participants = append(state.Participants, cloneParticipant(p))
	}
	state.ProjectParams = e.ProjectParams
	if !e.DeedDate.IsZero() {
		state.DeedDate = e.DeedDate
	} else {
		state.DeedDate = e.Date
	}
	if e.CoproReservesShare > 0 {
		state.CoproReservesShare = e.CoproReservesShare
	}
	if e.CoproSetup != nil {
		state.Copropriete.LotsOwned = append([]domain.CoproLot(nil), e.CoproSetup.HiddenLots...)
		state.Copropriete.CashReserve = e.CoproSetup.InitialCashReserve
	}
}

func (s *ProjectionService) applyNewcomerJoins(state *domain.ProjectionState, e domain.NewcomerJoinsEvent) {
	buyer := cloneParticipant(e.Buyer)
	if buyer.EntryDate == nil {
		date := e.Date
		buyer.EntryDate = &date
	}
	state.Participants = append(state.Participants, buyer)

	if e.Acquisition.From == domain.CoproprieteName {
		s.removeCoproLot(state, e.Acquisition.LotID)
		return
	}

	if seller := state.FindParticipant(e.Acquisition.From); seller != nil {
		if seller.Quantity > 1 {
			seller.Quantity--
		} else {
			s.markLotSold(seller, e.Acquisition.LotID, e.Buyer.Name, e.Date, e.Acquisition.Price)
		}
	}
	// An unknown seller name leaves the seller side untouched on purpose:
	// the buyer still joins, the payback just never materializes.
}

func (s *ProjectionService) applyHiddenLotRevealed(state *domain.ProjectionState, e domain.HiddenLotRevealedEvent) {
	buyer := cloneParticipant(e.Buyer)
	if buyer.EntryDate == nil {
		date := e.Date
		buyer.EntryDate = &date
	}
	state.Participants = append(state.Participants, buyer)
	s.removeCoproLot(state, e.LotID)

	state.Copropriete.CashReserve += e.SalePrice
	for _, amount := range e.Redistribution {
		state.Copropriete.CashReserve -= amount
	}
}

func (s *ProjectionService) applyPortageSettlement(state *domain.ProjectionState, e domain.PortageSettlementEvent) {
	if seller := state.FindParticipant(e.Seller); seller != nil {
		s.markLotSold(seller, e.LotID, e.Buyer, e.Date, e.SaleProceeds)
	}
	state.TransactionHistory = append(state.TransactionHistory, domain.TimelineTransaction{
		Date:   e.Date,
		Kind:   domain.TransactionPortageSale,
		Buyer:  e.Buyer,
		Seller: e.Seller,
		Amount: e.SaleProceeds,
		Delta: domain.TransactionDelta{
			TotalCost:  -e.SaleProceeds,
			LoanNeeded: -e.SaleProceeds,
			Reason:     "portage settlement",
		},
	})
}

func (s *ProjectionService) applyParticipantExits(state *domain.ProjectionState, e domain.ParticipantExitsEvent) {
	idx := -1
	for i := range state.Participants {
		if state.Participants[i].Name == e.ParticipantName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	leaver := &state.Participants[idx]

	surface := leaver.Surface
	if surface <= 0 {
		surface = ExitedLotSurface
	}
	if leaver.Quantity > 1 {
		leaver.Quantity--
	} else {
		state.Participants = append(state.Participants[:idx], state.Participants[idx+1:]...)
	}

	if e.BuyerType == domain.BuyerCopro {
		state.Copropriete.LotsOwned = append(state.Copropriete.LotsOwned, domain.CoproLot{
			LotID:        e.LotID,
			Surface:      surface,
			AcquiredDate: e.Date,
		})
		state.Copropriete.CashReserve -= e.SalePrice
	}
}

func (s *ProjectionService) applyCoproSale(state *domain.ProjectionState, e domain.CoproSaleEvent) {
	buyer := cloneParticipant(e.Buyer)
	if buyer.EntryDate == nil {
		date := e.Date
		buyer.EntryDate = &date
	}
	state.Participants = append(state.Participants, buyer)

	remaining := e.SurfacePurchased
	lots := state.Copropriete.LotsOwned[:0]
	for _, lot := range state.Copropriete.LotsOwned {
		if remaining <= 0 || (e.LotID != "" && lot.LotID != e.LotID) {
			lots = append(lots, lot)
			continue
		}
		if lot.Surface > remaining {
			lot.Surface -= remaining
			remaining = 0
			lots = append(lots, lot)
			continue
		}
		remaining -= lot.Surface
	}
	state.Copropriete.LotsOwned = lots
	state.Copropriete.CashReserve += e.Distribution.ToCoproReserves

	state.TransactionHistory = append(state.TransactionHistory, domain.TimelineTransaction{
		Date:   e.Date,
		Kind:   domain.TransactionCoproSale,
		Buyer:  e.Buyer.Name,
		Seller: domain.CoproprieteName,
		Amount: e.Breakdown.TotalPrice,
		Delta: domain.TransactionDelta{
			TotalCost:  -e.Breakdown.TotalPrice,
			LoanNeeded: -e.Breakdown.TotalPrice,
			Reason:     "copro sale redistribution",
		},
	})
}

func (s *ProjectionService) removeCoproLot(state *domain.ProjectionState, lotID string) {
	lots := state.Copropriete.LotsOwned[:0]
	removed := false
	for _, lot := range state.Copropriete.LotsOwned {
		if !removed && (lotID == "" || lot.LotID == lotID) {
			removed = true
			continue
		}
		lots = append(lots, lot)
	}
	state.Copropriete.LotsOwned = lots
}

func (s *ProjectionService) markLotSold(seller *domain.Participant, lotID, buyerName string, date time.Time, price float64) {
	for i := range seller.LotsOwned {
		lot := &seller.LotsOwned[i]
		if lotID != "" && lot.LotID != lotID {
			continue
		}
		if lot.SoldDate != nil {
			continue
		}
		soldDate := date
		lot.SoldDate = &soldDate
		lot.SoldTo = buyerName
		lot.SalePrice = &price
		return
	}
}
