package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is one money-received event: the immediate payment of a bill
// (cash/upi/card), a standalone udhar collection, or an advance deposit.
// BillID and CustomerID are optional. Immutable.
type PaymentRecord struct {
	ID          string
	BillID      string
	CustomerID  string
	Amount      decimal.Decimal
	PaymentMode string
	CreatedAt   time.Time
}
