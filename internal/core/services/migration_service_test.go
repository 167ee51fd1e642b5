package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/core/services"
)

func TestMigrateTravauxCommuns_LegacyFlatAmount(t *testing.T) {
	migration := services.NewMigrationService()
	calc := newCalcService()

	tc := domain.TravauxCommuns{
		Enabled: false,
		Items:   []domain.TravauxCommunsItem{{Label: "X", Amount: 270000}},
	}

	migrated := migration.MigrateTravauxCommuns(tc)
	require.Len(t, migrated.Items, 1)
	item := migrated.Items[0]

	assert.Greater(t, item.Sqm, 0.0)
	assert.Equal(t, 600.0, item.CascoPricePerSqm)
	assert.Equal(t, 200.0, item.ParachevementPricePerSqm)
	assert.Equal(t, 270000.0, item.Amount, "the original amount is preserved")

	// Recombining the back-solved split reproduces the stored amount.
	assert.InDelta(t, 270000, calc.TravauxCommunsItemAmount(item), 0.5)
	assert.InDelta(t, 270000, item.Sqm*item.CascoPricePerSqm+item.Sqm*item.ParachevementPricePerSqm, 0.5)
}

func TestMigrateTravauxCommuns_NewItemsPassThrough(t *testing.T) {
	migration := services.NewMigrationService()
	tc := domain.TravauxCommuns{
		Enabled: true,
		Items:   []domain.TravauxCommunsItem{{Label: "Façade", Sqm: 50, CascoPricePerSqm: 700, ParachevementPricePerSqm: 100}},
	}
	migrated := migration.MigrateTravauxCommuns(tc)
	assert.Equal(t, tc.Items[0], migrated.Items[0])
}

func TestMigrateProjectParams_Idempotent(t *testing.T) {
	migration := services.NewMigrationService()
	params := domain.ProjectParams{
		TotalPurchasePrice: 650000,
		TravauxCommuns: domain.TravauxCommuns{
			Items: []domain.TravauxCommunsItem{{Label: "X", Amount: 270000}},
		},
	}

	once := migration.MigrateProjectParams(params)
	twice := migration.MigrateProjectParams(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, domain.DefaultMaxTotalLots, once.MaxTotalLots)
}

func TestMigrateProjectParams_KeepsExplicitMaxLots(t *testing.T) {
	migration := services.NewMigrationService()
	params := domain.ProjectParams{MaxTotalLots: 14}
	assert.Equal(t, 14, migration.MigrateProjectParams(params).MaxTotalLots)
}

func TestMigrateParticipant_TwoLoanCapitalCollapses(t *testing.T) {
	migration := services.NewMigrationService()

	raw := map[string]any{
		"name":                        "Alice",
		"useTwoLoans":                 true,
		"capitalForLoan1":             50000.0,
		"loan2IncludesParachevements": true,
	}

	out := migration.MigrateParticipant(raw)

	assert.Equal(t, 50000.0, out["capitalApporte"])
	assert.NotContains(t, out, "capitalForLoan1")
	assert.NotContains(t, out, "loan2IncludesParachevements")
	assert.Equal(t, 1, out["quantity"])
}

func TestMigrateParticipant_SingleLoanDropsLegacyField(t *testing.T) {
	migration := services.NewMigrationService()

	raw := map[string]any{
		"name":            "Bob",
		"useTwoLoans":     false,
		"capitalForLoan1": 30000.0,
		"capitalApporte":  10000.0,
	}

	out := migration.MigrateParticipant(raw)

	// Without two-loan financing the legacy field is simply dropped.
	assert.Equal(t, 10000.0, out["capitalApporte"])
	assert.NotContains(t, out, "capitalForLoan1")
}

func TestLotService_Capacity(t *testing.T) {
	lots := services.NewLotService()
	params := domain.ProjectParams{MaxTotalLots: 4}

	alice := founder("Alice", 100)
	alice.Quantity = 2
	participants := []domain.Participant{alice, founder("Bob", 150)}
	copro := domain.CoproEntity{LotsOwned: []domain.CoproLot{{LotID: "c1", Surface: 85}}}

	assert.Equal(t, 4, lots.CountLots(participants, copro))
	assert.Equal(t, 0, lots.RemainingCapacity(participants, copro, params))
	assert.True(t, lots.WouldExceed(participants, copro, params, 1))
	assert.Error(t, lots.ValidateAddPortageLot(participants, copro, params))
	assert.Error(t, lots.ValidateAddCoproLot(participants, copro, params))

	params.MaxTotalLots = 6
	assert.Equal(t, 2, lots.RemainingCapacity(participants, copro, params))
	assert.NoError(t, lots.ValidateAddPortageLot(participants, copro, params))
}

func TestLotService_ItemizedLotsCountOverQuantity(t *testing.T) {
	lots := services.NewLotService()
	alice := founder("Alice", 100)
	alice.Quantity = 3
	alice.LotsOwned = []domain.Lot{{LotID: "a1"}, {LotID: "a2"}}

	assert.Equal(t, 2, lots.CountLots([]domain.Participant{alice}, domain.CoproEntity{}))
}
