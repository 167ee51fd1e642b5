package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/core/services"
)

func TestRecurringYearly(t *testing.T) {
	svc := services.NewFraisGenerauxService()
	assert.InDelta(t, 388.38+1000+600+2000+2000+2000, svc.RecurringYearly(), 1e-9)
}

func TestHonorairesTotal3Years(t *testing.T) {
	svc := services.NewFraisGenerauxService()
	params := domain.ProjectParams{
		CascoPricePerM2: 1000,
		TravauxCommuns: domain.TravauxCommuns{
			Enabled: true,
			Items:   []domain.TravauxCommunsItem{{Sqm: 50, CascoPricePerSqm: 600}},
		},
	}
	participants := []domain.Participant{founder("Alice", 100)}

	// (100×1000 + 50×600) × 15% × 30%
	assert.InDelta(t, 130000*0.15*0.30, svc.HonorairesTotal3Years(participants, params), 1e-6)
}

func TestGenerateYearlyEvents(t *testing.T) {
	svc := services.NewFraisGenerauxService()
	deed := day(2026, time.February, 1)

	late := founder("Carla", 90)
	late.IsFounder = false
	entry := deed.AddDate(0, 6, 0)
	late.EntryDate = &entry

	participants := []domain.Participant{founder("Alice", 100), founder("Bob", 150), late}
	params := domain.ProjectParams{CascoPricePerM2: 1000}

	events := svc.GenerateYearlyEvents(participants, params, deed)
	require.Len(t, events, 3)

	year1 := events[0]
	assert.Equal(t, domain.EventFraisGenerauxYear1, year1.EventType())
	assert.Equal(t, deed, year1.Date)
	// Year one falls on the deed and is split among founders only.
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, year1.Participants)
	honoraires := svc.HonorairesTotal3Years(participants, params) / 3
	assert.InDelta(t, svc.OneTimeCosts()+svc.RecurringYearly()+honoraires, year1.TotalAmount, 1e-6)
	assert.InDelta(t, year1.TotalAmount/2, year1.AmountPerParticipant, 1e-6)

	year2 := events[1]
	assert.Equal(t, domain.EventFraisGenerauxYear2, year2.EventType())
	assert.Equal(t, deed.AddDate(1, 0, 0), year2.Date)
	// Carla joined mid-year one, so she shares from year two on.
	assert.ElementsMatch(t, []string{"Alice", "Bob", "Carla"}, year2.Participants)
	assert.InDelta(t, svc.RecurringYearly()+honoraires, year2.TotalAmount, 1e-6)

	assert.Equal(t, domain.EventFraisGenerauxYear3, events[2].EventType())
}

func TestGenerateNewcomerReimbursements(t *testing.T) {
	svc := services.NewFraisGenerauxService()
	deed := day(2026, time.February, 1)

	nc := founder("Nina", 80)
	nc.IsFounder = false
	entry := deed.AddDate(0, 4, 0)
	nc.EntryDate = &entry

	participants := []domain.Participant{founder("Alice", 100), founder("Bob", 150), nc}
	yearly := svc.GenerateYearlyEvents(participants, domain.ProjectParams{CascoPricePerM2: 1000}, deed)

	events := svc.GenerateNewcomerReimbursements(participants, yearly, deed)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "Nina", ev.Newcomer)
	assert.Equal(t, 1, ev.Year)
	assert.Equal(t, entry, ev.Date)

	// Two founders paid total/2 each; the fair three-way share is total/3.
	total := yearly[0].TotalAmount
	expectedPerFounder := total/2 - total/3
	require.Len(t, ev.Reimbursements, 2)
	assert.InDelta(t, expectedPerFounder, ev.Reimbursements["Alice"], 1e-6)
	assert.InDelta(t, expectedPerFounder, ev.Reimbursements["Bob"], 1e-6)
	assert.InDelta(t, 2*expectedPerFounder, ev.TotalAmount, 1e-6)
}

func TestGenerateNewcomerReimbursements_SequentialArrivals(t *testing.T) {
	svc := services.NewFraisGenerauxService()
	deed := day(2026, time.February, 1)

	first := founder("Nina", 80)
	first.IsFounder = false
	firstEntry := deed.AddDate(0, 3, 0)
	first.EntryDate = &firstEntry

	second := founder("Omar", 70)
	second.IsFounder = false
	secondEntry := deed.AddDate(0, 8, 0)
	second.EntryDate = &secondEntry

	participants := []domain.Participant{founder("Alice", 100), first, second}
	yearly := svc.GenerateYearlyEvents(participants, domain.ProjectParams{}, deed)

	events := svc.GenerateNewcomerReimbursements(participants, yearly, deed)
	require.Len(t, events, 2)
	assert.Equal(t, "Nina", events[0].Newcomer)
	assert.Equal(t, "Omar", events[1].Newcomer)

	// After both rounds everyone effectively paid total/3.
	total := yearly[0].TotalAmount
	aliceNet := total - events[0].Reimbursements["Alice"] - events[1].Reimbursements["Alice"]
	assert.InDelta(t, total/3, aliceNet, 1e-6)
}

func TestGenerateAllEvents_CombinesYearlyAndReimbursements(t *testing.T) {
	svc := services.NewFraisGenerauxService()
	deed := day(2026, time.February, 1)

	nc := founder("Nina", 80)
	nc.IsFounder = false
	entry := deed.AddDate(0, 4, 0)
	nc.EntryDate = &entry

	participants := []domain.Participant{founder("Alice", 100), nc}
	events := svc.GenerateAllEvents(participants, domain.ProjectParams{}, deed)

	assert.Len(t, events, 4)
	assert.Equal(t, domain.EventFraisGenerauxYear1, events[0].EventType())
	assert.Equal(t, domain.EventNewcomerReimbursement, events[3].EventType())
}
