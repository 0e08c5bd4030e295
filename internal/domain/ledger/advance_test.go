package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/ledger"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Customer has an advance of 100, buys 60 on credit: exactly one advance_used
// entry of 60 leaving -40, and no credit entry.
func TestPlanCreditSale_AdvanceCoversPartOfIt(t *testing.T) {
	plans := ledger.PlanCreditSale(d(-100), d(60))

	require.Len(t, plans, 1)
	assert.Equal(t, entity.EntryAdvanceUsed, plans[0].Type)
	assert.True(t, plans[0].Amount.Equal(d(60)))
	assert.True(t, plans[0].BalanceAfter.Equal(d(-40)))
}

// Advance of 100, sale of exactly 100: one advance_used entry closing the
// balance at 0. The tie-break must not produce a zero-amount credit entry.
func TestPlanCreditSale_AdvanceExactCoverage(t *testing.T) {
	plans := ledger.PlanCreditSale(d(-100), d(100))

	require.Len(t, plans, 1)
	assert.Equal(t, entity.EntryAdvanceUsed, plans[0].Type)
	assert.True(t, plans[0].Amount.Equal(d(100)))
	assert.True(t, plans[0].BalanceAfter.IsZero())
}

// Advance of 100, sale of 150: advance_used 100 -> 0, then credit 50 -> 50.
func TestPlanCreditSale_AdvancePartialCoverage(t *testing.T) {
	plans := ledger.PlanCreditSale(d(-100), d(150))

	require.Len(t, plans, 2)
	assert.Equal(t, entity.EntryAdvanceUsed, plans[0].Type)
	assert.True(t, plans[0].Amount.Equal(d(100)))
	assert.True(t, plans[0].BalanceAfter.IsZero())
	assert.Equal(t, entity.EntryCredit, plans[1].Type)
	assert.True(t, plans[1].Amount.Equal(d(50)))
	assert.True(t, plans[1].BalanceAfter.Equal(d(50)))
}

// No advance (balance 30), credit sale of 70: one credit entry -> 100.
func TestPlanCreditSale_NoAdvance(t *testing.T) {
	plans := ledger.PlanCreditSale(d(30), d(70))

	require.Len(t, plans, 1)
	assert.Equal(t, entity.EntryCredit, plans[0].Type)
	assert.True(t, plans[0].Amount.Equal(d(70)))
	assert.True(t, plans[0].BalanceAfter.Equal(d(100)))
}

// Fresh customer (balance 0) behaves like the no-advance path.
func TestPlanCreditSale_ZeroBalance(t *testing.T) {
	plans := ledger.PlanCreditSale(decimal.Zero, d(250))

	require.Len(t, plans, 1)
	assert.Equal(t, entity.EntryCredit, plans[0].Type)
	assert.True(t, plans[0].BalanceAfter.Equal(d(250)))
}

// A fully-discounted (zero-total) credit sale appends nothing.
func TestPlanCreditSale_ZeroAmount(t *testing.T) {
	assert.Empty(t, ledger.PlanCreditSale(d(100), decimal.Zero))
	assert.Empty(t, ledger.PlanCreditSale(d(-100), decimal.Zero))
}

// The planner is a pure function: same inputs, same plan.
func TestPlanCreditSale_Deterministic(t *testing.T) {
	a := ledger.PlanCreditSale(d(-75), d(120))
	b := ledger.PlanCreditSale(d(-75), d(120))
	assert.Equal(t, a, b)
}

func TestPlanPayment_ReducesDebt(t *testing.T) {
	plan := ledger.PlanPayment(d(200), d(80))

	assert.Equal(t, entity.EntryPayment, plan.Type)
	assert.True(t, plan.Amount.Equal(d(80)))
	assert.True(t, plan.BalanceAfter.Equal(d(120)))
}

// Overpayment is clamped at 0, never turned into an advance.
func TestPlanPayment_OverpaymentClampsAtZero(t *testing.T) {
	plan := ledger.PlanPayment(d(50), d(90))

	assert.True(t, plan.BalanceAfter.IsZero())
	assert.True(t, plan.Amount.Equal(d(90)))
}

func TestPlanAdvanceDeposit_GoesNegative(t *testing.T) {
	plan := ledger.PlanAdvanceDeposit(decimal.Zero, d(500))

	assert.Equal(t, entity.EntryAdvance, plan.Type)
	assert.True(t, plan.BalanceAfter.Equal(d(-500)))
}

func TestPlanAdvanceDeposit_OnTopOfDebt(t *testing.T) {
	// A deposit while still owing reduces the debt first; no clamping here,
	// a big enough deposit flips the balance into an advance.
	plan := ledger.PlanAdvanceDeposit(d(100), d(300))
	assert.True(t, plan.BalanceAfter.Equal(d(-200)))
}
