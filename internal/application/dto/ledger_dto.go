package dto

import "github.com/shopspring/decimal"

// RecordPaymentRequest input for collecting udhar from a customer.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode"` // cash/upi/card, defaults to cash
	Note        string          `json:"note"`
}

// RecordAdvanceRequest input for a customer depositing money ahead.
type RecordAdvanceRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode"`
	Note        string          `json:"note"`
}

// LedgerEntryResponse one row of a customer's credit history.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	BillID       string          `json:"bill_id,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// BalanceResponse the customer's signed outstanding balance.
type BalanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"` // positive = owes the store, negative = advance
}
