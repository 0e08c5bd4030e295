package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implements LedgerRepository on PostgreSQL (usable with pool or tx).
// The table carries a bigserial seq so entries created in the same instant
// still have a total order.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the adapter. Pass a pool or tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append inserts a ledger entry. Insert-only: there is no update or delete
// path for ledger rows anywhere in the codebase.
func (r *LedgerRepo) Append(e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, customer_id, bill_id, entry_type, amount, balance_after, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.CustomerID, nullIfEmpty(e.BillID), string(e.Type), e.Amount, e.BalanceAfter, e.Note, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// GetLatestByCustomer returns the newest entry, or nil with no history.
func (r *LedgerRepo) GetLatestByCustomer(customerID string) (*entity.LedgerEntry, error) {
	query := `
		SELECT id, customer_id, bill_id, entry_type, amount, balance_after, note, created_at
		FROM ledger_entries WHERE customer_id = $1
		ORDER BY seq DESC LIMIT 1`
	e, err := scanLedgerEntry(r.q.QueryRow(context.Background(), query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest ledger entry: %w", err)
	}
	return e, nil
}

// ListByCustomer returns entries newest first.
func (r *LedgerRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, customer_id, bill_id, entry_type, amount, balance_after, note, created_at
		FROM ledger_entries WHERE customer_id = $1
		ORDER BY seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanLedgerEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	var billID *string
	var entryType string
	err := row.Scan(&e.ID, &e.CustomerID, &billID, &entryType, &e.Amount, &e.BalanceAfter, &e.Note, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.BillID = derefStr(billID)
	e.Type = entity.LedgerEntryType(entryType)
	return &e, nil
}
