package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/billnumber"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implements BillRepository on PostgreSQL (usable with pool or tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository builds the adapter. Pass a pool or tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, bill_number, customer_id, subtotal, discount_total, grand_total, payment_mode, status, created_at`

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	var customerID *string
	err := row.Scan(&b.ID, &b.BillNumber, &customerID, &b.Subtotal, &b.DiscountTotal,
		&b.GrandTotal, &b.PaymentMode, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.CustomerID = derefStr(customerID)
	return &b, nil
}

// Create persists the bill header.
func (r *BillRepo) Create(b *entity.Bill) error {
	query := `
		INSERT INTO bills (id, bill_number, customer_id, subtotal, discount_total, grand_total, payment_mode, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.BillNumber, nullIfEmpty(b.CustomerID), b.Subtotal, b.DiscountTotal,
		b.GrandTotal, b.PaymentMode, b.Status, b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bill number already exists: %w", err)
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateItem persists one line item.
func (r *BillRepo) CreateItem(item *entity.BillItem) error {
	query := `
		INSERT INTO bill_items (id, bill_id, product_id, product_name, quantity, unit_price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.BillID, item.ProductID, item.ProductName,
		item.Quantity, item.UnitPrice, item.Discount, item.Total)
	if err != nil {
		return fmt.Errorf("insert bill item: %w", err)
	}
	return nil
}

// GetByID returns a bill header, or nil when it does not exist.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRow(context.Background(),
		`SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// GetForUpdate returns the bill and locks the row so the status check and the
// cancellation flip happen under one lock.
func (r *BillRepo) GetForUpdate(id string) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRow(context.Background(),
		`SELECT `+billColumns+` FROM bills WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill for update: %w", err)
	}
	return b, nil
}

// GetItemsByBillID returns all lines of a bill in insertion order.
func (r *BillRepo) GetItemsByBillID(billID string) ([]*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, product_id, product_name, quantity, unit_price, discount, total
		FROM bill_items WHERE bill_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillItem
	for rows.Next() {
		var item entity.BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Discount, &item.Total); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateStatus flips the bill status (the only mutation a bill ever gets).
func (r *BillRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bills SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update bill status: %w", err)
	}
	return nil
}

// List returns bill headers, newest first.
func (r *BillRepo) List(limit, offset int) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// NextBillNumber bumps the day's counter row and formats the number. The
// upsert takes a row lock, so concurrent sales get distinct sequences.
func (r *BillRepo) NextBillNumber(prefix string, day time.Time) (string, error) {
	query := `
		INSERT INTO bill_counters (day, last_seq) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = bill_counters.last_seq + 1
		RETURNING last_seq`
	var seq int64
	if err := r.q.QueryRow(context.Background(), query, day.Format("2006-01-02")).Scan(&seq); err != nil {
		return "", fmt.Errorf("next bill number: %w", err)
	}
	return billnumber.Format(prefix, day, seq), nil
}
