package repository

import "github.com/kiranapos/kirana-api/internal/domain/entity"

// LedgerRepository is the persistence port for the append-only credit ledger.
type LedgerRepository interface {
	Append(e *entity.LedgerEntry) error
	// GetLatestByCustomer returns the most recent entry, or nil when the
	// customer has no history.
	GetLatestByCustomer(customerID string) (*entity.LedgerEntry, error)
	// ListByCustomer returns entries newest first.
	ListByCustomer(customerID string, limit, offset int) ([]*entity.LedgerEntry, error)
}
