// Package inventory holds the explicit stock-adjustment use case. Sale-driven
// deductions live in the billing transaction; this path is for corrections
// (breakage, recount, received goods).
package inventory

import (
	"context"
	"time"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

// TxRunner runs fn inside one transaction with a tx-bound product repository.
type TxRunner interface {
	Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}

// AdjustStockUseCase applies explicit stock corrections under the same row
// lock discipline as sales.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase builds the use case.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustStock adds delta to the product's stock. Unlike a sale, an adjustment
// that would leave stock negative is rejected: a recount cannot produce less
// than nothing.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, productID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if productID == "" || in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var adjusted *entity.Product

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.CurrentStock.Add(in.Delta)
		if newStock.IsNegative() {
			return domain.ErrNegativeStock
		}
		if err := productRepo.UpdateStock(productID, newStock, now); err != nil {
			return err
		}
		product.CurrentStock = newStock
		product.UpdatedAt = now
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(adjusted), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		UnitMeasure:       p.UnitMeasure,
		Price:             p.Price,
		CurrentStock:      p.CurrentStock,
		LowStockThreshold: p.LowStockThreshold,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
