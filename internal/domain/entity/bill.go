package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment modes accepted at the counter.
const (
	PaymentModeCash   = "cash"
	PaymentModeUPI    = "upi"
	PaymentModeCard   = "card"
	PaymentModeCredit = "credit" // udhar: no money now, ledger entry instead
)

// Bill statuses. A bill is created completed; the only later transition is to cancelled.
const (
	BillStatusCompleted = "completed"
	BillStatusCancelled = "cancelled"
)

// ValidPaymentMode reports whether m is one of the accepted payment modes.
func ValidPaymentMode(m string) bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard, PaymentModeCredit:
		return true
	}
	return false
}

// Bill is the header of one sale. Invariants: GrandTotal = max(0, Subtotal - DiscountTotal),
// Subtotal = sum of item totals. CustomerID is empty for walk-in sales.
type Bill struct {
	ID            string
	BillNumber    string // human readable, e.g. KB-20260828-00042
	CustomerID    string
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	GrandTotal    decimal.Decimal
	PaymentMode   string
	Status        string
	CreatedAt     time.Time
}

// BillItem is one line of a bill. ProductName and UnitPrice are snapshots taken
// at sale time so later product edits do not rewrite history. Immutable after creation.
type BillItem struct {
	ID          string
	BillID      string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal // Quantity*UnitPrice - Discount
}
