package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/utils"
)

// TimelineService derives chronological views from the event log: the set of
// relevant dates, copro inventory snapshots and per-participant positions.
type TimelineService struct {
	calc       *CalculationService
	projection *ProjectionService
}

func NewTimelineService(calc *CalculationService, projection *ProjectionService) *TimelineService {
	return &TimelineService{calc: calc, projection: projection}
}

// Replay folds events up to asOf into a ProjectionState.
func (s *TimelineService) Replay(events []domain.DomainEvent, asOf *time.Time) domain.ProjectionState {
	return s.projection.Replay(events, asOf)
}

// UniqueSortedDates unions all event dates and participant entry dates,
// deduplicated by calendar day, ascending.
func (s *TimelineService) UniqueSortedDates(events []domain.DomainEvent) []time.Time {
	state := s.projection.Replay(events, nil)

	seen := make(map[string]time.Time)
	add := func(t time.Time) {
		day := utils.DayStart(t)
		seen[day.Format("2006-01-02")] = day
	}
	for _, ev := range events {
		add(ev.When())
	}
	for _, p := range state.Participants {
		add(p.EffectiveEntryDate(state.DeedDate))
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ValidateChronology reports ordering and referential problems in the event
// log: participants acting before they joined, duplicate joins, and seller
// lots whose sold date does not match the buyer's entry date. An unknown
// seller name is reported as a warning, not an error, because replay
// tolerates it.
func (s *TimelineService) ValidateChronology(events []domain.DomainEvent) []string {
	var issues []string

	sorted := s.projection.SortEvents(events)
	known := make(map[string]bool)
	known[domain.CoproprieteName] = true

	for _, ev := range sorted {
		switch e := ev.(type) {
		case domain.InitialPurchaseEvent:
			for _, p := range e.Participants {
				known[p.Name] = true
			}
		case domain.NewcomerJoinsEvent:
			if known[e.Buyer.Name] {
				issues = append(issues, fmt.Sprintf("%s: buyer %q already joined", e.Date.Format("2006-01-02"), e.Buyer.Name))
			}
			if !known[e.Acquisition.From] {
				issues = append(issues, fmt.Sprintf("%s: seller %q is not a known participant, payback will be zero", e.Date.Format("2006-01-02"), e.Acquisition.From))
			}
			known[e.Buyer.Name] = true
		case domain.HiddenLotRevealedEvent:
			known[e.Buyer.Name] = true
		case domain.CoproSaleEvent:
			known[e.Buyer.Name] = true
		case domain.PortageSettlementEvent:
			if !known[e.Seller] {
				issues = append(issues, fmt.Sprintf("%s: settlement seller %q acts before joining", e.Date.Format("2006-01-02"), e.Seller))
			}
			if !known[e.Buyer] {
				issues = append(issues, fmt.Sprintf("%s: settlement buyer %q acts before joining", e.Date.Format("2006-01-02"), e.Buyer))
			}
		case domain.ParticipantExitsEvent:
			if !known[e.ParticipantName] {
				issues = append(issues, fmt.Sprintf("%s: exit of unknown participant %q", e.Date.Format("2006-01-02"), e.ParticipantName))
			}
		}
	}

	issues = append(issues, s.checkSoldDates(sorted)...)
	return issues
}

// checkSoldDates verifies that a seller lot's sold date equals the buyer's
// entry date for the corresponding purchase.
func (s *TimelineService) checkSoldDates(events []domain.DomainEvent) []string {
	var issues []string
	state := s.projection.Replay(events, nil)
	for _, p := range state.Participants {
		for _, lot := range p.LotsOwned {
			if lot.SoldDate == nil || lot.SoldTo == "" {
				continue
			}
			buyer := state.FindParticipant(lot.SoldTo)
			if buyer == nil {
				continue
			}
			entry := buyer.EffectiveEntryDate(state.DeedDate)
			if !utils.SameDay(*lot.SoldDate, entry) {
				issues = append(issues, fmt.Sprintf("lot %s of %s: sold date %s does not match buyer %s entry date %s",
					lot.LotID, p.Name, lot.SoldDate.Format("2006-01-02"), lot.SoldTo, entry.Format("2006-01-02")))
			}
		}
	}
	return issues
}

func coproColorZone(available, initial int) string {
	if initial <= 0 {
		return "green"
	}
	ratio := float64(available) / float64(initial)
	switch {
	case ratio > 0.5:
		return "green"
	case ratio > 0.2:
		return "orange"
	default:
		return "red"
	}
}

// GenerateCoproSnapshots emits one snapshot per date where the copropriété's
// inventory or reserves changed, plus the starting position.
func (s *TimelineService) GenerateCoproSnapshots(events []domain.DomainEvent) []domain.CoproSnapshot {
	sorted := s.projection.SortEvents(events)
	full := s.projection.Replay(sorted, nil)

	initialLots := full.ProjectParams.MaxTotalLots
	if initialLots <= 0 {
		initialLots = len(full.Participants)
	}

	var snapshots []domain.CoproSnapshot
	available := initialLots
	first := true

	for _, day := range s.UniqueSortedDates(sorted) {
		sold := 0
		var reserveIncrease float64
		for _, ev := range sorted {
			if !utils.SameDay(ev.When(), day) {
				continue
			}
			switch e := ev.(type) {
			case domain.NewcomerJoinsEvent:
				if e.Acquisition.From == domain.CoproprieteName {
					sold++
				}
			case domain.HiddenLotRevealedEvent:
				sold++
				reserveIncrease += e.SalePrice * full.CoproReservesShare / 100
			case domain.CoproSaleEvent:
				sold++
				reserveIncrease += e.Distribution.ToCoproReserves
			}
		}

		if sold == 0 && reserveIncrease == 0 && !first {
			continue
		}
		available -= sold
		if available < 0 {
			available = 0
		}

		asOf := day
		state := s.projection.Replay(sorted, &asOf)
		snapshots = append(snapshots, domain.CoproSnapshot{
			Date:            day,
			AvailableLots:   available,
			TotalSurface:    state.Copropriete.TotalSurface(),
			SoldThisDate:    sold,
			ReserveIncrease: reserveIncrease,
			ColorZone:       coproColorZone(available, initialLots),
		})
		first = false
	}
	return snapshots
}

// GenerateParticipantSnapshots emits, per date, the point-in-time position of
// every participant that date affects: founders at the deed, buyer and seller
// on a portage settlement, everyone on a copro sale redistribution.
func (s *TimelineService) GenerateParticipantSnapshots(events []domain.DomainEvent) []domain.TimelineSnapshot {
	sorted := s.projection.SortEvents(events)
	adjust := make(map[string]float64)

	var out []domain.TimelineSnapshot
	first := true

	for _, day := range s.UniqueSortedDates(sorted) {
		affected := make(map[string]bool)
		buyers := make(map[string]bool)
		var dayTransactions []domain.TimelineTransaction

		asOf := day
		state := s.projection.Replay(sorted, &asOf)

		for _, ev := range sorted {
			if !utils.SameDay(ev.When(), day) {
				continue
			}
			switch e := ev.(type) {
			case domain.InitialPurchaseEvent:
				for _, p := range e.Participants {
					if p.IsFounder {
						affected[p.Name] = true
					}
				}
			case domain.NewcomerJoinsEvent:
				affected[e.Buyer.Name] = true
				buyers[e.Buyer.Name] = true
				if e.Acquisition.From != domain.CoproprieteName {
					affected[e.Acquisition.From] = true
				}
			case domain.PortageSettlementEvent:
				affected[e.Seller] = true
				affected[e.Buyer] = true
				buyers[e.Buyer] = true
				adjust[e.Seller] -= e.SaleProceeds
			case domain.HiddenLotRevealedEvent:
				affected[e.Buyer.Name] = true
				buyers[e.Buyer.Name] = true
				for name, share := range e.Redistribution {
					affected[name] = true
					adjust[name] -= share
				}
			case domain.CoproSaleEvent:
				buyers[e.Buyer.Name] = true
				for _, p := range state.Participants {
					affected[p.Name] = true
				}
				for name, share := range e.Distribution.ToParticipants {
					adjust[name] -= share
				}
			}
		}
		for _, tx := range state.TransactionHistory {
			if utils.SameDay(tx.Date, day) {
				dayTransactions = append(dayTransactions, tx)
			}
		}

		if len(affected) == 0 && !first {
			continue
		}

		results := s.calc.CalculateAll(state.Participants, state.ProjectParams, nil)
		byName := make(map[string]domain.ParticipantResult, len(results.Participants))
		for _, r := range results.Participants {
			byName[r.Name] = r
		}

		snap := domain.TimelineSnapshot{Date: day, Transactions: dayTransactions}
		names := make([]string, 0, len(affected))
		for name := range affected {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			base := byName[name]
			totalCost := base.TotalCost + adjust[name]
			loanNeeded := base.LoanAmount + adjust[name]
			if loanNeeded < 0 {
				loanNeeded = 0
			}
			snap.Participants = append(snap.Participants, domain.ParticipantSnapshot{
				Date:                 day,
				Name:                 name,
				TotalCost:            totalCost,
				LoanNeeded:           loanNeeded,
				MonthlyPayment:       base.MonthlyPayment,
				ShowFinancingDetails: first || buyers[name],
			})
		}
		out = append(out, snap)
		first = false
	}
	return out
}
