package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest input for creating a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateCustomerRequest input for editing profile fields. The balance is
// core-managed and not editable through this path.
type UpdateCustomerRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
}

// CustomerResponse a customer with their materialized balance.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Active         bool            `json:"active"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}
