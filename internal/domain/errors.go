package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate resource")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrCustomerRequired = errors.New("credit sale requires a customer")
	ErrCustomerInactive = errors.New("customer is inactive")
	ErrBillCancelled    = errors.New("bill is already cancelled")
	ErrNegativeStock    = errors.New("adjustment would leave stock negative")
)
