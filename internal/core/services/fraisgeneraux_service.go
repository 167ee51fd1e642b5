package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// Recurring shared costs, per project year, in EUR.
const (
	PrecompteImmobilierYearly = 388.38
	ComptableYearly           = 1000.0
	PodioYearly               = 600.0
	AssuranceYearly           = 2000.0
	ReservationYearly         = 2000.0
	ImprevusYearly            = 2000.0
)

// One-time project setup costs, in EUR.
const (
	ConstitutionCost = 500.0
	PublicationCost  = 45.0
	EtudesCost       = 5000.0
)

// Architect and engineering fees: 15% of the CASCO cost excluding TVA, of
// which 30% falls due during the first three project years.
const (
	HonorairesRate          = 0.15
	HonorairesFirstYearsPct = 0.30
)

// FraisGenerauxService computes the recurring shared project costs and the
// yearly events that split them among active participants.
type FraisGenerauxService struct{}

func NewFraisGenerauxService() *FraisGenerauxService {
	return &FraisGenerauxService{}
}

// RecurringYearly is one project year's recurring shared cost.
func (s *FraisGenerauxService) RecurringYearly() float64 {
	return PrecompteImmobilierYearly + ComptableYearly + PodioYearly +
		AssuranceYearly + ReservationYearly + ImprevusYearly
}

// OneTimeCosts are the setup costs due in year one only.
func (s *FraisGenerauxService) OneTimeCosts() float64 {
	return ConstitutionCost + PublicationCost + EtudesCost
}

// HonorairesTotal3Years is the architect fee portion due over the first three
// years, computed on the CASCO cost excluding TVA.
func (s *FraisGenerauxService) HonorairesTotal3Years(participants []domain.Participant, params domain.ProjectParams) float64 {
	var cascoHorsTva float64
	for _, p := range participants {
		if !p.Enabled {
			continue
		}
		sqm := p.Surface * float64(p.QuantityOrOne())
		if p.CascoSqm != nil {
			sqm = *p.CascoSqm
		}
		cascoHorsTva += sqm * params.CascoPricePerM2
	}
	if params.TravauxCommuns.Enabled {
		for _, item := range params.TravauxCommuns.Items {
			cascoHorsTva += item.Sqm * item.CascoPricePerSqm
		}
	}
	return cascoHorsTva * HonorairesRate * HonorairesFirstYearsPct
}

// Total3Years is the full shared cost over the first three project years.
func (s *FraisGenerauxService) Total3Years(participants []domain.Participant, params domain.ProjectParams) float64 {
	return s.OneTimeCosts() + 3*s.RecurringYearly() + s.HonorairesTotal3Years(participants, params)
}

func fraisGenerauxEventID(year int, date time.Time) string {
	return fmt.Sprintf("frais-generaux-year-%d-%d", year, date.UnixMilli())
}

var fraisGenerauxYearTypes = [...]domain.EventType{
	domain.EventFraisGenerauxYear1,
	domain.EventFraisGenerauxYear2,
	domain.EventFraisGenerauxYear3,
}

// GenerateYearlyEvents builds the three yearly frais généraux events. Year one
// falls on the deed date and is split among founders; years two and three fall
// on the deed anniversaries and are split among participants active by then.
func (s *FraisGenerauxService) GenerateYearlyEvents(participants []domain.Participant, params domain.ProjectParams, deedDate time.Time) []domain.FraisGenerauxYearlyEvent {
	honorairesPerYear := s.HonorairesTotal3Years(participants, params) / 3
	recurring := s.RecurringYearly()

	events := make([]domain.FraisGenerauxYearlyEvent, 0, 3)
	for year := 1; year <= 3; year++ {
		date := deedDate.AddDate(year-1, 0, 0)
		total := recurring + honorairesPerYear
		if year == 1 {
			total += s.OneTimeCosts()
		}

		var names []string
		for _, p := range participants {
			if !p.Enabled {
				continue
			}
			if year == 1 && !p.IsFounder {
				continue
			}
			if !p.EffectiveEntryDate(deedDate).After(date) {
				names = append(names, p.Name)
			}
		}

		perHead := total
		if len(names) > 0 {
			perHead = total / float64(len(names))
		}

		events = append(events, domain.FraisGenerauxYearlyEvent{
			BaseEvent:            domain.BaseEvent{ID: fraisGenerauxEventID(year, date), Date: date},
			Year:                 year,
			Type:                 fraisGenerauxYearTypes[year-1],
			TotalAmount:          total,
			AmountPerParticipant: perHead,
			Participants:         names,
		})
	}
	return events
}

// GenerateNewcomerReimbursements walks newcomers in entry order. Each arrival
// lowers the fair share for that year; everyone who already paid more gets
// reimbursed down to the new fair share, funded by the newcomer.
func (s *FraisGenerauxService) GenerateNewcomerReimbursements(participants []domain.Participant, yearly []domain.FraisGenerauxYearlyEvent, deedDate time.Time) []domain.NewcomerReimbursementEvent {
	var out []domain.NewcomerReimbursementEvent

	newcomers := make([]domain.Participant, 0)
	for _, p := range participants {
		if p.Enabled && !p.IsFounder {
			newcomers = append(newcomers, p)
		}
	}
	sort.SliceStable(newcomers, func(i, j int) bool {
		return newcomers[i].EffectiveEntryDate(deedDate).Before(newcomers[j].EffectiveEntryDate(deedDate))
	})

	for _, yearEvent := range yearly {
		yearEnd := yearEvent.Date.AddDate(1, 0, 0)

		// What each payer has put in for this year so far.
		payments := make(map[string]float64)
		for _, name := range yearEvent.Participants {
			payments[name] = yearEvent.AmountPerParticipant
		}

		for _, nc := range newcomers {
			entry := nc.EffectiveEntryDate(deedDate)
			if entry.Before(yearEvent.Date) || !entry.Before(yearEnd) {
				continue
			}
			if _, alreadyPaying := payments[nc.Name]; alreadyPaying {
				continue
			}

			fairShare := yearEvent.TotalAmount / float64(len(payments)+1)
			reimbursements := make(map[string]float64)
			var total float64
			for name, paid := range payments {
				over := paid - fairShare
				if over <= 0 {
					continue
				}
				reimbursements[name] = over
				total += over
				payments[name] = fairShare
			}
			payments[nc.Name] = fairShare

			if total <= 0 {
				continue
			}
			out = append(out, domain.NewcomerReimbursementEvent{
				BaseEvent: domain.BaseEvent{
					ID:   fmt.Sprintf("frais-generaux-reimbursement-%s-%d", nc.Name, entry.UnixMilli()),
					Date: entry,
				},
				Newcomer:       nc.Name,
				Year:           yearEvent.Year,
				TotalAmount:    total,
				Reimbursements: reimbursements,
			})
		}
	}
	return out
}

// GenerateAllEvents returns the yearly splits plus the newcomer reimbursements.
func (s *FraisGenerauxService) GenerateAllEvents(participants []domain.Participant, params domain.ProjectParams, deedDate time.Time) []domain.DomainEvent {
	yearly := s.GenerateYearlyEvents(participants, params, deedDate)
	reimb := s.GenerateNewcomerReimbursements(participants, yearly, deedDate)

	events := make([]domain.DomainEvent, 0, len(yearly)+len(reimb))
	for _, e := range yearly {
		events = append(events, e)
	}
	for _, e := range reimb {
		events = append(events, e)
	}
	return events
}
