package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranapos/kirana-api/internal/application/billing"
	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/infrastructure/memory"
)

func newCancelBillUC(store *memory.Store) *billing.CancelBillUseCase {
	return billing.NewCancelBillUseCase(store, store.Bills())
}

// Cancelling restores each line's quantity and flips the status.
func TestCancelBill_RestoresStock(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Parle-G", 50, 10)
	seedProduct(t, store, "p2", "Tata Salt", 100, 5)
	create := newCreateBillUC(store)
	cancel := newCancelBillUC(store)
	ctx := context.Background()

	bill, err := create.CreateBill(ctx, dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(3), UnitPrice: d(50)},
			{ProductID: "p2", Quantity: d(2), UnitPrice: d(100)},
		},
	})
	require.NoError(t, err)

	out, err := cancel.CancelBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusCancelled, out.Status)

	p1, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p1.CurrentStock.Equal(d(10)))
	p2, err := store.Products().GetByID("p2")
	require.NoError(t, err)
	assert.True(t, p2.CurrentStock.Equal(d(5)))
}

// Stock restored on cancellation may exceed what was deducted when the sale
// floored at zero. That is accepted; an explicit adjustment fixes the count.
func TestCancelBill_RestoreAfterFlooredSale(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Milk 500ml", 30, 3)
	create := newCreateBillUC(store)
	cancel := newCancelBillUC(store)
	ctx := context.Background()

	bill, err := create.CreateBill(ctx, dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items:       []dto.CartLine{{ProductID: "p1", Quantity: d(5), UnitPrice: d(30)}},
	})
	require.NoError(t, err)

	_, err = cancel.CancelBill(ctx, bill.ID)
	require.NoError(t, err)

	p1, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p1.CurrentStock.Equal(d(5)))
}

// Cancelling twice fails and must not restore stock a second time.
func TestCancelBill_AlreadyCancelled(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Bread", 25, 10)
	create := newCreateBillUC(store)
	cancel := newCancelBillUC(store)
	ctx := context.Background()

	bill, err := create.CreateBill(ctx, dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items:       []dto.CartLine{{ProductID: "p1", Quantity: d(4), UnitPrice: d(25)}},
	})
	require.NoError(t, err)

	_, err = cancel.CancelBill(ctx, bill.ID)
	require.NoError(t, err)
	_, err = cancel.CancelBill(ctx, bill.ID)
	assert.ErrorIs(t, err, domain.ErrBillCancelled)

	p1, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p1.CurrentStock.Equal(d(10)), "stock restored exactly once")
}

// Cancelling a credit bill leaves the ledger and balance untouched.
func TestCancelBill_KeepsLedger(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Atta 10kg", 450, 8)
	seedCustomer(t, store, "c1", 0)
	create := newCreateBillUC(store)
	cancel := newCancelBillUC(store)
	ctx := context.Background()

	bill, err := create.CreateBill(ctx, dto.CreateBillRequest{
		CustomerID:  "c1",
		PaymentMode: entity.PaymentModeCredit,
		Items:       []dto.CartLine{{ProductID: "p1", Quantity: d(1), UnitPrice: d(450)}},
	})
	require.NoError(t, err)

	_, err = cancel.CancelBill(ctx, bill.ID)
	require.NoError(t, err)

	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(d(450)))
	entries, err := store.Ledger().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCancelBill_NotFound(t *testing.T) {
	store := memory.NewStore()
	cancel := newCancelBillUC(store)

	_, err := cancel.CancelBill(context.Background(), "no-such-bill")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// A failure while restoring stock rolls back the whole cancellation: the bill
// stays completed.
func TestCancelBill_Atomicity(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Soap", 40, 10)
	create := newCreateBillUC(store)
	cancel := newCancelBillUC(store)
	ctx := context.Background()

	bill, err := create.CreateBill(ctx, dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items:       []dto.CartLine{{ProductID: "p1", Quantity: d(2), UnitPrice: d(40)}},
	})
	require.NoError(t, err)

	boom := errors.New("disk full")
	store.FailOnce("product.updateStock", boom)
	_, err = cancel.CancelBill(ctx, bill.ID)
	require.ErrorIs(t, err, boom)

	got, err := store.Bills().GetByID(bill.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusCompleted, got.Status)
	p1, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p1.CurrentStock.Equal(d(8)))
}
