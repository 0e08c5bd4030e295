package postgres

import (
	"context"
	"fmt"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository on PostgreSQL (usable with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass a pool or tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persists a payment record. Insert-only: records are immutable.
func (r *PaymentRepo) Create(p *entity.PaymentRecord) error {
	query := `
		INSERT INTO payments (id, bill_id, customer_id, amount, payment_mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nullIfEmpty(p.BillID), nullIfEmpty(p.CustomerID), p.Amount, p.PaymentMode, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByCustomer returns a customer's payment records, newest first.
func (r *PaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.PaymentRecord, error) {
	query := `
		SELECT id, bill_id, customer_id, amount, payment_mode, created_at
		FROM payments WHERE customer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentRecord
	for rows.Next() {
		var p entity.PaymentRecord
		var billID, custID *string
		if err := rows.Scan(&p.ID, &billID, &custID, &p.Amount, &p.PaymentMode, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.BillID = derefStr(billID)
		p.CustomerID = derefStr(custID)
		list = append(list, &p)
	}
	return list, rows.Err()
}
