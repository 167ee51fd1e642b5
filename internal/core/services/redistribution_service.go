package services

import (
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/utils"
)

// RedistributionService splits copro sale proceeds among participants and
// computes each founder's expected paybacks from later arrivals.
type RedistributionService struct {
	portage *PortageService
}

func NewRedistributionService(portage *PortageService) *RedistributionService {
	return &RedistributionService{portage: portage}
}

// RedistributeCoproSale splits the participant portion of a copro sale by
// quotité. The buyer's surface stays in the denominator but the buyer
// receives nothing. When several newcomers buy on the same day, each buyer is
// priced as if the others were absent: the other same-day buyers drop out of
// the denominator entirely.
func (s *RedistributionService) RedistributeCoproSale(participants []domain.Participant, buyerName string, saleDate, deedDate time.Time, netAmount float64) map[string]float64 {
	sameDayBuyers := make(map[string]bool)
	for _, p := range participants {
		if p.IsFounder || p.Name == buyerName {
			continue
		}
		if utils.SameDay(p.EffectiveEntryDate(deedDate), saleDate) {
			sameDayBuyers[p.Name] = true
		}
	}
	buyerSoloThatDay := len(sameDayBuyers) == 0

	var totalSurface float64
	recipients := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		if !p.Enabled || sameDayBuyers[p.Name] {
			continue
		}
		surface := p.Surface * float64(p.QuantityOrOne())
		if p.Name == buyerName {
			if buyerSoloThatDay {
				totalSurface += surface
			}
			continue
		}
		totalSurface += surface
		recipients = append(recipients, p)
	}

	out := make(map[string]float64)
	if totalSurface <= 0 {
		return out
	}
	for _, p := range recipients {
		surface := p.Surface * float64(p.QuantityOrOne())
		out[p.Name] = netAmount * surface / totalSurface
	}
	return out
}

// MonthsWeightedSplit splits an amount among participants who joined before
// the sale date, weighted by each one's months in the project up to that date.
// This is the copro portage settlement split.
func (s *RedistributionService) MonthsWeightedSplit(participants []domain.Participant, saleDate, deedDate time.Time, amount float64) map[string]float64 {
	type eligible struct {
		name   string
		months float64
	}
	var pool []eligible
	var totalMonths float64
	for _, p := range participants {
		if !p.Enabled {
			continue
		}
		entry := p.EffectiveEntryDate(deedDate)
		if !entry.Before(saleDate) {
			continue
		}
		months := utils.MonthsBetween(entry, saleDate)
		pool = append(pool, eligible{name: p.Name, months: months})
		totalMonths += months
	}

	out := make(map[string]float64)
	if totalMonths <= 0 {
		return out
	}
	for _, e := range pool {
		out[e.name] = amount * e.months / totalMonths
	}
	return out
}

// ExpectedPaybacks sums what sellerName should receive from later arrivals:
// the full price from buyers acquiring directly from them, plus their quotité
// share of copro sale redistributions. A buyer whose BuyingFrom names an
// unknown participant contributes nothing.
func (s *RedistributionService) ExpectedPaybacks(sellerName string, participants []domain.Participant, reservesSharePct float64, deedDate time.Time) float64 {
	known := false
	for _, p := range participants {
		if p.Name == sellerName {
			known = true
			break
		}
	}
	if !known {
		return 0
	}

	var total float64
	for _, p := range participants {
		if !p.Enabled || p.PurchaseDetails == nil {
			continue
		}
		pd := p.PurchaseDetails
		if pd.BuyingFrom == sellerName {
			total += pd.PurchasePrice
			continue
		}
		if pd.BuyingFrom != domain.CoproprieteName {
			continue
		}
		_, net := s.portage.SplitCoproSale(pd.PurchasePrice, reservesSharePct)
		shares := s.RedistributeCoproSale(participants, p.Name, p.EffectiveEntryDate(deedDate), deedDate, net)
		total += shares[sellerName]
	}
	return total
}
