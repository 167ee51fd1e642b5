package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/core/services"
)

func newCashFlow() *services.CashFlowService {
	return services.NewCashFlowService(newCalcService())
}

func cashFlowEvents(deed time.Time) []domain.DomainEvent {
	alice := founder("Alice", 100)
	alice.LotsOwned = []domain.Lot{
		{
			LotID:              "alice-1",
			Surface:            100,
			AcquiredDate:       deed,
			OriginalPrice:      260000,
			OriginalNotaryFees: 33500,
		},
	}
	return []domain.DomainEvent{initialPurchase(deed, alice, founder("Bob", 150))}
}

func TestBuildParticipantCashFlow_UnknownParticipantIsEmpty(t *testing.T) {
	svc := newCashFlow()
	deed := day(2026, time.February, 1)

	flow := svc.BuildParticipantCashFlow(cashFlowEvents(deed), "Nobody", nil)

	assert.Equal(t, "Nobody", flow.ParticipantName)
	assert.Empty(t, flow.Transactions)
	assert.Zero(t, flow.Summary.TotalInvested)
	assert.Zero(t, flow.Summary.NetPosition)
}

func TestBuildParticipantCashFlow_NoInitialPurchaseIsEmpty(t *testing.T) {
	svc := newCashFlow()
	flow := svc.BuildParticipantCashFlow(nil, "Alice", nil)
	assert.Empty(t, flow.Transactions)
}

func TestBuildParticipantCashFlow_OneShotAndMonthlyLines(t *testing.T) {
	svc := newCashFlow()
	deed := day(2026, time.February, 1)
	end := deed.AddDate(0, 6, 0)

	flow := svc.BuildParticipantCashFlow(cashFlowEvents(deed), "Alice", &end)

	require.NotEmpty(t, flow.Transactions)
	assert.Equal(t, domain.CashFlowLotPurchase, flow.Transactions[0].Type)
	assert.InDelta(t, -260000, flow.Transactions[0].Amount, 1e-6)
	assert.Equal(t, domain.CashFlowNotaryFees, flow.Transactions[1].Type)
	assert.InDelta(t, -33500, flow.Transactions[1].Amount, 1e-6)

	var monthly []domain.CashFlowTransaction
	for _, tx := range flow.Transactions {
		if tx.Category == domain.CashFlowRecurring {
			monthly = append(monthly, tx)
		}
	}
	require.Len(t, monthly, 6)

	// Alice borrowed the full 260k at her 4%/20y terms.
	pmt := newCalcService().MonthlyPayment(260000, 4, 20)
	assert.InDelta(t, -pmt, monthly[0].Amount, 1e-6)
	assert.InDelta(t, 260000*0.04/12, monthly[0].Interest, 0.01)
	assert.InDelta(t, pmt-monthly[0].Interest, monthly[0].Principal, 1e-6)

	// Interest decreases as principal amortizes.
	assert.Less(t, monthly[5].Interest, monthly[0].Interest)

	// Running balance is the cumulative sum.
	assert.InDelta(t, -260000-33500-6*pmt, flow.Transactions[len(flow.Transactions)-1].Balance, 1e-6)
}

func TestBuildParticipantCashFlow_PortageLotIsInterestOnly(t *testing.T) {
	svc := newCashFlow()
	deed := day(2026, time.February, 1)
	end := deed.AddDate(0, 3, 0)

	alice := founder("Alice", 100)
	alice.LotsOwned = []domain.Lot{
		{LotID: "portage-1", Surface: 85, IsPortage: true, AcquiredDate: deed, OriginalPrice: 152500},
	}
	events := []domain.DomainEvent{initialPurchase(deed, alice)}

	flow := svc.BuildParticipantCashFlow(events, "Alice", &end)

	var monthly []domain.CashFlowTransaction
	for _, tx := range flow.Transactions {
		if tx.Category == domain.CashFlowRecurring {
			monthly = append(monthly, tx)
		}
	}
	require.Len(t, monthly, 3)
	for _, tx := range monthly {
		assert.InDelta(t, -tx.Interest, tx.Amount, 1e-9, "portage lots pay interest only")
		assert.Zero(t, tx.Principal)
	}
}

func TestBuildParticipantCashFlow_SynthesizesLotFromFlatModel(t *testing.T) {
	svc := newCashFlow()
	deed := day(2026, time.February, 1)
	end := deed.AddDate(0, 1, 0)

	events := []domain.DomainEvent{initialPurchase(deed, founder("Alice", 100), founder("Bob", 150))}
	flow := svc.BuildParticipantCashFlow(events, "Alice", &end)

	require.NotEmpty(t, flow.Transactions)
	// 40% of the 650k purchase.
	assert.InDelta(t, -260000, flow.Transactions[0].Amount, 1e-6)
}

func TestBuildParticipantCashFlow_Summary(t *testing.T) {
	svc := newCashFlow()
	deed := day(2026, time.February, 1)
	end := deed.AddDate(0, 2, 0)

	flow := svc.BuildParticipantCashFlow(cashFlowEvents(deed), "Alice", &end)

	assert.InDelta(t, flow.Summary.TotalReceived-flow.Summary.TotalInvested, flow.Summary.NetPosition, 1e-9)
	pmt := newCalcService().MonthlyPayment(260000, 4, 20)
	assert.InDelta(t, pmt, flow.Summary.MonthlyBurnRate, 1e-6)
}
