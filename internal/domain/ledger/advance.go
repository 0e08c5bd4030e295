// Package ledger holds the pure balance arithmetic of the customer credit
// ledger, isolated from storage so it can be tested as plain functions.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
)

// EntryPlan is one ledger append computed by the planner. The caller persists
// it as a LedgerEntry inside the sale/payment transaction.
type EntryPlan struct {
	Type         entity.LedgerEntryType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
}

// PlanCreditSale computes the ledger appends for a credit sale of saleAmount
// against the customer's current balance. An existing advance (negative
// balance) is consumed before new debt accrues:
//
//   - balance < 0: an advance_used entry for min(advance, saleAmount), then a
//     credit entry for the remainder if any. When the advance exactly covers
//     the sale only the advance_used entry is produced.
//   - balance >= 0: a single credit entry for the full amount.
//
// At most two entries are ever returned; a zero saleAmount yields none.
func PlanCreditSale(balance, saleAmount decimal.Decimal) []EntryPlan {
	if !saleAmount.IsPositive() {
		return nil
	}
	if balance.IsNegative() {
		advance := balance.Neg()
		used := decimal.Min(advance, saleAmount)
		remainder := saleAmount.Sub(used)

		var plans []EntryPlan
		after := balance
		if used.IsPositive() {
			after = after.Add(used)
			plans = append(plans, EntryPlan{
				Type:         entity.EntryAdvanceUsed,
				Amount:       used,
				BalanceAfter: after,
			})
		}
		if remainder.IsPositive() {
			after = after.Add(remainder)
			plans = append(plans, EntryPlan{
				Type:         entity.EntryCredit,
				Amount:       remainder,
				BalanceAfter: after,
			})
		}
		return plans
	}
	return []EntryPlan{{
		Type:         entity.EntryCredit,
		Amount:       saleAmount,
		BalanceAfter: balance.Add(saleAmount),
	}}
}

// PlanPayment computes the entry for a standalone debt collection. The
// resulting balance is clamped at 0: an overpayment is not converted into an
// advance. Use PlanAdvanceDeposit when the customer is deliberately paying ahead.
func PlanPayment(balance, amount decimal.Decimal) EntryPlan {
	after := balance.Sub(amount)
	if after.IsNegative() {
		after = decimal.Zero
	}
	return EntryPlan{
		Type:         entity.EntryPayment,
		Amount:       amount,
		BalanceAfter: after,
	}
}

// PlanAdvanceDeposit computes the entry for a customer depositing money ahead
// of purchases. The balance goes down and may become negative (an advance).
func PlanAdvanceDeposit(balance, amount decimal.Decimal) EntryPlan {
	return EntryPlan{
		Type:         entity.EntryAdvance,
		Amount:       amount,
		BalanceAfter: balance.Sub(amount),
	}
}
