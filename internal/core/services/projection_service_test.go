package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/core/services"
)

func initialPurchase(deed time.Time, participants ...domain.Participant) domain.InitialPurchaseEvent {
	return domain.InitialPurchaseEvent{
		BaseEvent:     domain.BaseEvent{ID: "initial", Date: deed},
		Participants:  participants,
		ProjectParams: domain.ProjectParams{TotalPurchasePrice: 650000, MaxTotalLots: 10},
		DeedDate:      deed,
		CoproSetup: &domain.CoproSetup{
			HiddenLots: []domain.CoproLot{
				{LotID: "copro-1", Surface: 85, AcquiredDate: deed, Hidden: true},
				{LotID: "copro-2", Surface: 60, AcquiredDate: deed, Hidden: true},
			},
		},
	}
}

func TestReplay_InitialPurchase(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)
	events := []domain.DomainEvent{initialPurchase(deed, founder("Alice", 100), founder("Bob", 150))}

	state := svc.Replay(events, nil)

	assert.Equal(t, deed, state.DeedDate)
	require.Len(t, state.Participants, 2)
	assert.Len(t, state.Copropriete.LotsOwned, 2)
	assert.InDelta(t, 145, state.Copropriete.TotalSurface(), 1e-9)
	assert.Equal(t, domain.DefaultCoproReservesShare, state.CoproReservesShare)
}

func TestReplay_EmptyLogYieldsDefaults(t *testing.T) {
	svc := services.NewProjectionService()
	state := svc.Replay(nil, nil)
	assert.Equal(t, domain.DefaultDeedDate, state.DeedDate)
	assert.Empty(t, state.Participants)
}

func TestReplay_NewcomerJoinsFromCopro(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)
	joinDate := deed.AddDate(1, 0, 0)

	events := []domain.DomainEvent{
		initialPurchase(deed, founder("Alice", 100)),
		domain.NewcomerJoinsEvent{
			BaseEvent: domain.BaseEvent{ID: "join-nina", Date: joinDate},
			Buyer:     domain.Participant{Name: "Nina", Enabled: true, Surface: 85},
			Acquisition: domain.Acquisition{
				From:  domain.CoproprieteName,
				LotID: "copro-1",
				Price: 160000,
			},
		},
	}

	state := svc.Replay(events, nil)

	require.Len(t, state.Participants, 2)
	assert.Equal(t, "Nina", state.Participants[1].Name)
	require.NotNil(t, state.Participants[1].EntryDate)
	assert.Equal(t, joinDate, *state.Participants[1].EntryDate)
	require.Len(t, state.Copropriete.LotsOwned, 1)
	assert.Equal(t, "copro-2", state.Copropriete.LotsOwned[0].LotID)
}

func TestReplay_NewcomerJoinsDecrementsSellerQuantity(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)

	alice := founder("Alice", 100)
	alice.Quantity = 2
	events := []domain.DomainEvent{
		initialPurchase(deed, alice),
		domain.NewcomerJoinsEvent{
			BaseEvent:   domain.BaseEvent{ID: "join", Date: deed.AddDate(1, 0, 0)},
			Buyer:       domain.Participant{Name: "Nina", Enabled: true, Surface: 50},
			Acquisition: domain.Acquisition{From: "Alice", Price: 120000},
		},
	}

	state := svc.Replay(events, nil)
	assert.Equal(t, 1, state.FindParticipant("Alice").Quantity)
}

func TestReplay_CoproSaleAddsReservesAndShrinksInventory(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)
	saleDate := deed.AddDate(1, 4, 0)

	events := []domain.DomainEvent{
		initialPurchase(deed, founder("Alice", 100)),
		domain.CoproSaleEvent{
			BaseEvent:        domain.BaseEvent{ID: "sale", Date: saleDate},
			Buyer:            domain.Participant{Name: "Nina", Enabled: true, Surface: 40},
			LotID:            "copro-1",
			SurfacePurchased: 40,
			Breakdown:        domain.CoproSalePriceBreakdown{TotalPrice: 40000},
			Distribution: domain.CoproSaleDistribution{
				ToCoproReserves: 12000,
				ToParticipants:  map[string]float64{"Alice": 28000},
			},
		},
	}

	state := svc.Replay(events, nil)

	assert.InDelta(t, 12000, state.Copropriete.CashReserve, 1e-9)
	require.Len(t, state.Copropriete.LotsOwned, 2)
	assert.InDelta(t, 45, state.Copropriete.LotsOwned[0].Surface, 1e-9)
	require.Len(t, state.TransactionHistory, 1)
	assert.Equal(t, domain.TransactionCoproSale, state.TransactionHistory[0].Kind)
}

func TestReplay_HiddenLotRevealedMovesMoneyThroughReserve(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)

	events := []domain.DomainEvent{
		initialPurchase(deed, founder("Alice", 100)),
		domain.HiddenLotRevealedEvent{
			BaseEvent:      domain.BaseEvent{ID: "reveal", Date: deed.AddDate(2, 0, 0)},
			Buyer:          domain.Participant{Name: "Omar", Enabled: true, Surface: 85},
			LotID:          "copro-1",
			SalePrice:      40000,
			Redistribution: map[string]float64{"Alice": 28000},
		},
	}

	state := svc.Replay(events, nil)

	// 40k in, 28k redistributed out: 12k stays in the reserve.
	assert.InDelta(t, 12000, state.Copropriete.CashReserve, 1e-9)
	assert.Len(t, state.Copropriete.LotsOwned, 1)
	assert.NotNil(t, state.FindParticipant("Omar"))
}

func TestReplay_ParticipantExitsToCopro(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)

	events := []domain.DomainEvent{
		initialPurchase(deed, founder("Alice", 100), founder("Bob", 150)),
		domain.ParticipantExitsEvent{
			BaseEvent:       domain.BaseEvent{ID: "exit", Date: deed.AddDate(3, 0, 0)},
			ParticipantName: "Bob",
			BuyerType:       domain.BuyerCopro,
			LotID:           "bob-lot",
			SalePrice:       200000,
		},
	}

	state := svc.Replay(events, nil)

	assert.Nil(t, state.FindParticipant("Bob"))
	require.Len(t, state.Copropriete.LotsOwned, 3)
	took := state.Copropriete.LotsOwned[2]
	assert.Equal(t, "bob-lot", took.LotID)
	assert.InDelta(t, 150, took.Surface, 1e-9)
	assert.InDelta(t, -200000, state.Copropriete.CashReserve, 1e-9)
}

func TestReplay_AsOfStopsEarly(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)
	joinDate := deed.AddDate(1, 0, 0)

	events := []domain.DomainEvent{
		initialPurchase(deed, founder("Alice", 100)),
		domain.NewcomerJoinsEvent{
			BaseEvent:   domain.BaseEvent{ID: "join", Date: joinDate},
			Buyer:       domain.Participant{Name: "Nina", Enabled: true},
			Acquisition: domain.Acquisition{From: domain.CoproprieteName, LotID: "copro-1"},
		},
	}

	asOf := deed.AddDate(0, 6, 0)
	state := svc.Replay(events, &asOf)
	assert.Len(t, state.Participants, 1)
	assert.Len(t, state.Copropriete.LotsOwned, 2)
}

func TestReplay_IsDeterministicAndPure(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)
	events := []domain.DomainEvent{
		domain.NewcomerJoinsEvent{
			BaseEvent:   domain.BaseEvent{ID: "join", Date: deed.AddDate(1, 0, 0)},
			Buyer:       domain.Participant{Name: "Nina", Enabled: true},
			Acquisition: domain.Acquisition{From: domain.CoproprieteName, LotID: "copro-1"},
		},
		initialPurchase(deed, founder("Alice", 100)),
	}

	first := svc.Replay(events, nil)
	second := svc.Replay(events, nil)
	assert.Equal(t, first, second)

	// Out-of-order input is sorted by date, not by slice position.
	assert.Equal(t, "Alice", first.Participants[0].Name)

	// Replay must not mutate the input events.
	assert.Equal(t, "join", events[0].EventID())
}

func TestReplay_PortageSettlementLeavesEventLotsUntouched(t *testing.T) {
	svc := services.NewProjectionService()
	deed := day(2026, time.February, 1)

	alice := founder("Alice", 100)
	alice.LotsOwned = []domain.Lot{
		{LotID: "lot-1", Surface: 85, IsPortage: true, AcquiredDate: deed},
		{LotID: "lot-2", Surface: 60, IsPortage: true, AcquiredDate: deed},
	}
	purchase := initialPurchase(deed, alice)
	events := []domain.DomainEvent{
		purchase,
		domain.PortageSettlementEvent{
			BaseEvent:    domain.BaseEvent{ID: "settle", Date: deed.AddDate(1, 0, 0)},
			Seller:       "Alice",
			Buyer:        "Nina",
			SaleProceeds: 180000,
		},
	}

	state := svc.Replay(events, nil)

	// The settlement carries no lot ID, so the first open lot is marked
	// sold inside the projection state only.
	sold := state.FindParticipant("Alice").LotsOwned[0]
	require.NotNil(t, sold.SoldDate)
	assert.Equal(t, "Nina", sold.SoldTo)

	for _, lot := range purchase.Participants[0].LotsOwned {
		assert.Nil(t, lot.SoldDate)
		assert.Empty(t, lot.SoldTo)
		assert.Nil(t, lot.SalePrice)
	}

	// A second replay over the same log sees the same world.
	assert.Equal(t, state, svc.Replay(events, nil))
}
