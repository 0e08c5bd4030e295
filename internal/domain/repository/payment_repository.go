package repository

import "github.com/kiranapos/kirana-api/internal/domain/entity"

// PaymentRepository is the persistence port for payment records. Records are
// immutable; there is no update or delete.
type PaymentRepository interface {
	Create(p *entity.PaymentRecord) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.PaymentRecord, error)
}
