package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
)

// CustomerRepository is the persistence port for customers.
// GetForUpdate locks the row so the materialized balance (the ledger tail)
// is read and written under the same lock.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetForUpdate(id string) (*entity.Customer, error)
	Update(c *entity.Customer) error
	UpdateBalance(id string, balance decimal.Decimal, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Customer, error)
}
