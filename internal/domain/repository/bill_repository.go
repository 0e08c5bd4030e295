package repository

import (
	"time"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
)

// BillRepository is the persistence port for bill headers and line items.
type BillRepository interface {
	Create(b *entity.Bill) error
	CreateItem(item *entity.BillItem) error
	GetByID(id string) (*entity.Bill, error)
	// GetForUpdate locks the bill row; cancellation reads the status and
	// flips it under the same lock.
	GetForUpdate(id string) (*entity.Bill, error)
	GetItemsByBillID(billID string) ([]*entity.BillItem, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Bill, error)
	// NextBillNumber increments the day's counter and returns the formatted
	// bill number. Must be called inside the sale transaction.
	NextBillNumber(prefix string, day time.Time) (string, error)
}
