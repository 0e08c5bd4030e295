package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
)

// ProductRepository is the persistence port for products and their stock.
// GetForUpdate locks the row (SELECT FOR UPDATE) so stock mutations inside a
// transaction cannot race.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	UpdateStock(id string, quantity decimal.Decimal, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
}
