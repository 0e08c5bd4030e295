package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one item sold by the shop.
// CurrentStock is the quantity on hand; it is only mutated inside the
// billing/adjustment transactions and never goes negative on a sale.
type Product struct {
	ID                string
	Name              string
	UnitMeasure       string // pcs, kg, litre, packet...
	Price             decimal.Decimal // default selling price, overridable per cart line
	CurrentStock      decimal.Decimal
	LowStockThreshold decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
