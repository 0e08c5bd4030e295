package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranapos/kirana-api/internal/application/billing"
	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/infrastructure/memory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedProduct(t *testing.T, store *memory.Store, id, name string, price, stock int64) {
	t.Helper()
	now := time.Now()
	err := store.Products().Create(&entity.Product{
		ID:           id,
		Name:         name,
		UnitMeasure:  "pcs",
		Price:        d(price),
		CurrentStock: d(stock),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
}

func seedCustomer(t *testing.T, store *memory.Store, id string, balance int64) {
	t.Helper()
	now := time.Now()
	err := store.Customers().Create(&entity.Customer{
		ID:             id,
		Name:           "Ramesh",
		Phone:          "9876543210",
		Active:         true,
		CurrentBalance: d(balance),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
}

func newCreateBillUC(store *memory.Store) *billing.CreateBillUseCase {
	return billing.NewCreateBillUseCase(store, store.Products(), store.Customers(), store.Bills(), "KB")
}

// Cash sale of 2x50 + 1x100: totals are computed from the lines, stock is
// deducted, a payment record exists and the ledger stays empty.
func TestCreateBill_CashSale(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Parle-G", 50, 10)
	seedProduct(t, store, "p2", "Tata Salt", 100, 5)
	uc := newCreateBillUC(store)

	out, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(2), UnitPrice: d(50)},
			{ProductID: "p2", Quantity: d(1), UnitPrice: d(100)},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(d(200)))
	assert.True(t, out.GrandTotal.Equal(d(200)))
	assert.Equal(t, entity.BillStatusCompleted, out.Status)
	assert.NotEmpty(t, out.BillNumber)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Parle-G", out.Items[0].ProductName)

	p1, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p1.CurrentStock.Equal(d(8)))
	p2, err := store.Products().GetByID("p2")
	require.NoError(t, err)
	assert.True(t, p2.CurrentStock.Equal(d(4)))

	payments, err := store.Payments().ListByCustomer("", 10, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(d(200)))
}

// Line discounts and the bill-level discount both reduce the grand total.
func TestCreateBill_Discounts(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Rice 5kg", 400, 20)
	uc := newCreateBillUC(store)

	out, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		PaymentMode:   entity.PaymentModeUPI,
		DiscountTotal: d(30),
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(2), UnitPrice: d(400), Discount: d(50)},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(d(750)))
	assert.True(t, out.GrandTotal.Equal(d(720)))
}

// A discount larger than the subtotal floors the grand total at zero.
func TestCreateBill_DiscountFloorsGrandTotal(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Matchbox", 5, 100)
	uc := newCreateBillUC(store)

	out, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		PaymentMode:   entity.PaymentModeCash,
		DiscountTotal: d(50),
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(2), UnitPrice: d(5)},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.GrandTotal.IsZero())
}

// Selling more than is on hand floors the stock at zero instead of failing.
func TestCreateBill_StockFloorsAtZero(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Milk 500ml", 30, 3)
	uc := newCreateBillUC(store)

	_, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(5), UnitPrice: d(30)},
		},
	})
	require.NoError(t, err)

	p1, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p1.CurrentStock.IsZero())
}

// Credit sale with no prior balance: one credit entry for the grand total and
// the materialized balance moves with it.
func TestCreateBill_CreditSale(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Atta 10kg", 450, 8)
	seedCustomer(t, store, "c1", 0)
	uc := newCreateBillUC(store)

	out, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		CustomerID:  "c1",
		PaymentMode: entity.PaymentModeCredit,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(1), UnitPrice: d(450)},
		},
	})
	require.NoError(t, err)

	entries, err := store.Ledger().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.EntryCredit, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(d(450)))
	assert.True(t, entries[0].BalanceAfter.Equal(d(450)))
	assert.Equal(t, out.ID, entries[0].BillID)

	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(d(450)))

	// Credit sales never create a payment record.
	payments, err := store.Payments().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

// Credit sale against an advance larger than the sale: a single advance_used
// entry, no credit entry.
func TestCreateBill_CreditSaleConsumesAdvance(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Sugar 1kg", 60, 10)
	seedCustomer(t, store, "c1", -100)
	uc := newCreateBillUC(store)

	_, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		CustomerID:  "c1",
		PaymentMode: entity.PaymentModeCredit,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(1), UnitPrice: d(60)},
		},
	})
	require.NoError(t, err)

	entries, err := store.Ledger().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.EntryAdvanceUsed, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(d(60)))
	assert.True(t, entries[0].BalanceAfter.Equal(d(-40)))

	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(d(-40)))
}

// Credit sale larger than the advance: advance_used down to zero, then a
// credit entry for the remainder, appended in that order.
func TestCreateBill_CreditSaleExceedsAdvance(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Oil 1L", 150, 10)
	seedCustomer(t, store, "c1", -100)
	uc := newCreateBillUC(store)

	_, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		CustomerID:  "c1",
		PaymentMode: entity.PaymentModeCredit,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(1), UnitPrice: d(150)},
		},
	})
	require.NoError(t, err)

	// ListByCustomer is newest first.
	entries, err := store.Ledger().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.EntryCredit, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(d(50)))
	assert.True(t, entries[0].BalanceAfter.Equal(d(50)))
	assert.Equal(t, entity.EntryAdvanceUsed, entries[1].Type)
	assert.True(t, entries[1].Amount.Equal(d(100)))
	assert.True(t, entries[1].BalanceAfter.IsZero())
}

// Cash sale by a customer holding an advance: the advance is not touched.
func TestCreateBill_CashSaleIgnoresAdvance(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Soap", 40, 10)
	seedCustomer(t, store, "c1", -100)
	uc := newCreateBillUC(store)

	_, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		CustomerID:  "c1",
		PaymentMode: entity.PaymentModeCash,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(1), UnitPrice: d(40)},
		},
	})
	require.NoError(t, err)

	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(d(-100)))
	entries, err := store.Ledger().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// A storage failure mid-transaction leaves nothing behind: no bill, no stock
// deduction, no ledger entry, balance untouched.
func TestCreateBill_Atomicity(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Biscuit", 20, 10)
	seedCustomer(t, store, "c1", 0)
	uc := newCreateBillUC(store)

	boom := errors.New("connection reset")
	store.FailOnce("ledger.append", boom)

	_, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		CustomerID:  "c1",
		PaymentMode: entity.PaymentModeCredit,
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: d(2), UnitPrice: d(20)},
		},
	})
	require.ErrorIs(t, err, boom)

	p1, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p1.CurrentStock.Equal(d(10)), "stock must be rolled back")
	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.IsZero())
	bills, err := store.Bills().List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestCreateBill_Validation(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Tea", 120, 10)
	seedCustomer(t, store, "c1", 0)
	uc := newCreateBillUC(store)
	ctx := context.Background()
	line := dto.CartLine{ProductID: "p1", Quantity: d(1), UnitPrice: d(120)}

	_, err := uc.CreateBill(ctx, dto.CreateBillRequest{PaymentMode: entity.PaymentModeCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empty cart")

	_, err = uc.CreateBill(ctx, dto.CreateBillRequest{PaymentMode: "cheque", Items: []dto.CartLine{line}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown payment mode")

	_, err = uc.CreateBill(ctx, dto.CreateBillRequest{PaymentMode: entity.PaymentModeCredit, Items: []dto.CartLine{line}})
	assert.ErrorIs(t, err, domain.ErrCustomerRequired, "credit sale without customer")

	_, err = uc.CreateBill(ctx, dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items:       []dto.CartLine{{ProductID: "p1", Quantity: d(0), UnitPrice: d(120)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero quantity")

	_, err = uc.CreateBill(ctx, dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items:       []dto.CartLine{{ProductID: "missing", Quantity: d(1), UnitPrice: d(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown product")

	_, err = uc.CreateBill(ctx, dto.CreateBillRequest{
		CustomerID:  "nobody",
		PaymentMode: entity.PaymentModeCredit,
		Items:       []dto.CartLine{line},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown customer")
}

// A deactivated customer cannot buy on credit.
func TestCreateBill_InactiveCustomer(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Tea", 120, 10)
	now := time.Now()
	require.NoError(t, store.Customers().Create(&entity.Customer{
		ID: "c1", Name: "Left town", Active: false, CurrentBalance: d(0), CreatedAt: now, UpdatedAt: now,
	}))
	uc := newCreateBillUC(store)

	_, err := uc.CreateBill(context.Background(), dto.CreateBillRequest{
		CustomerID:  "c1",
		PaymentMode: entity.PaymentModeCredit,
		Items:       []dto.CartLine{{ProductID: "p1", Quantity: d(1), UnitPrice: d(120)}},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerInactive)
}

// Bill numbers from the same day share the date part and increment the
// sequence.
func TestCreateBill_SequentialBillNumbers(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "Bread", 25, 100)
	uc := newCreateBillUC(store)
	ctx := context.Background()
	req := dto.CreateBillRequest{
		PaymentMode: entity.PaymentModeCash,
		Items:       []dto.CartLine{{ProductID: "p1", Quantity: d(1), UnitPrice: d(25)}},
	}

	first, err := uc.CreateBill(ctx, req)
	require.NoError(t, err)
	second, err := uc.CreateBill(ctx, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.BillNumber, second.BillNumber)
	assert.Equal(t, first.BillNumber[:len(first.BillNumber)-5], second.BillNumber[:len(second.BillNumber)-5])
}
