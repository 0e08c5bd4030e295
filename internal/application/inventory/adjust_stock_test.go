package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/application/inventory"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/infrastructure/memory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedProduct(t *testing.T, store *memory.Store, id string, stock int64) {
	t.Helper()
	now := time.Now()
	err := store.Products().Create(&entity.Product{
		ID:           id,
		Name:         "Dal 1kg",
		UnitMeasure:  "packet",
		Price:        d(90),
		CurrentStock: d(stock),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
}

func TestAdjustStock_AddAndRemove(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10)
	uc := inventory.NewAdjustStockUseCase(store)
	ctx := context.Background()

	out, err := uc.AdjustStock(ctx, "p1", dto.AdjustStockRequest{Delta: d(5), Reason: "received goods"})
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.Equal(d(15)))

	out, err = uc.AdjustStock(ctx, "p1", dto.AdjustStockRequest{Delta: d(-3), Reason: "breakage"})
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.Equal(d(12)))
}

// Unlike a sale, an adjustment below zero is rejected, not floored.
func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 4)
	uc := inventory.NewAdjustStockUseCase(store)

	_, err := uc.AdjustStock(context.Background(), "p1", dto.AdjustStockRequest{Delta: d(-5), Reason: "recount"})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(d(4)))
}

func TestAdjustStock_Validation(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 4)
	uc := inventory.NewAdjustStockUseCase(store)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, "p1", dto.AdjustStockRequest{Delta: d(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(ctx, "missing", dto.AdjustStockRequest{Delta: d(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
