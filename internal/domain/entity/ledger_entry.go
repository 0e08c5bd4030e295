package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType is the closed set of balance-affecting entry kinds.
type LedgerEntryType string

const (
	EntryCredit      LedgerEntryType = "credit"       // udhar extended by a credit sale
	EntryPayment     LedgerEntryType = "payment"      // customer paid down their debt
	EntryAdvance     LedgerEntryType = "advance"      // customer deposited money ahead
	EntryAdvanceUsed LedgerEntryType = "advance_used" // existing advance consumed by a sale
)

// LedgerEntry is one immutable row of a customer's credit history. Append-only:
// entries are never updated or deleted. Amount is always non-negative;
// BalanceAfter is the signed balance resulting from this entry (positive =
// customer owes the store, negative = advance).
type LedgerEntry struct {
	ID           string
	CustomerID   string
	BillID       string // set when the entry was produced by a sale
	Type         LedgerEntryType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Note         string
	CreatedAt    time.Time
}
