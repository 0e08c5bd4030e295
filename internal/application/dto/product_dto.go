package dto

import "github.com/shopspring/decimal"

// CreateProductRequest input for creating a product.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	UnitMeasure       string          `json:"unit_measure"`
	Price             decimal.Decimal `json:"price"`
	InitialStock      decimal.Decimal `json:"initial_stock"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// UpdateProductRequest input for editing product profile fields. Stock is not
// editable here: it only moves through sales, cancellations and adjustments.
type UpdateProductRequest struct {
	Name              string          `json:"name"`
	UnitMeasure       string          `json:"unit_measure"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// AdjustStockRequest input for an explicit stock correction.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"` // positive adds, negative removes
	Reason string          `json:"reason"`
}

// ProductResponse a product with its current stock.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	UnitMeasure       string          `json:"unit_measure"`
	Price             decimal.Decimal `json:"price"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}
