package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a shop customer (udhar/credit account holder).
// CurrentBalance is materialized from the ledger: positive = customer owes the
// store, negative = advance (store owes the customer). It is updated in the
// same transaction as every ledger append.
type Customer struct {
	ID             string
	Name           string
	Phone          string
	Active         bool
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
