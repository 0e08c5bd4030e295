package dto

import "github.com/shopspring/decimal"

// CartLine is one line of the cart sent to bill creation. Transient: it is
// never persisted as-is, the bill item snapshots it.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateBillRequest input for creating a bill. Totals are computed server-side
// from the lines and the bill-level discount.
type CreateBillRequest struct {
	CustomerID    string          `json:"customer_id"`
	PaymentMode   string          `json:"payment_mode"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Items         []CartLine      `json:"items"`
}

// BillItemResponse one line of a bill.
type BillItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// BillResponse a bill with its lines.
type BillResponse struct {
	ID            string             `json:"id"`
	BillNumber    string             `json:"bill_number"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	PaymentMode   string             `json:"payment_mode"`
	Status        string             `json:"status"`
	CreatedAt     string             `json:"created_at"`
	Items         []BillItemResponse `json:"items,omitempty"`
}
