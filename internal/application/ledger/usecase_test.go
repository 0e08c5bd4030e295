package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/application/ledger"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/infrastructure/memory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedCustomer(t *testing.T, store *memory.Store, id string, balance int64) {
	t.Helper()
	now := time.Now()
	err := store.Customers().Create(&entity.Customer{
		ID:             id,
		Name:           "Sunita",
		Phone:          "9812345678",
		Active:         true,
		CurrentBalance: d(balance),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
}

func newLedgerUC(store *memory.Store) *ledger.UseCase {
	return ledger.NewUseCase(store, store.Customers(), store.Ledger())
}

// A payment reduces the outstanding balance and leaves a payment entry plus a
// money-received record.
func TestRecordPayment(t *testing.T) {
	store := memory.NewStore()
	seedCustomer(t, store, "c1", 250)
	uc := newLedgerUC(store)

	out, err := uc.RecordPayment(context.Background(), "c1", dto.RecordPaymentRequest{
		Amount: d(100),
		Note:   "partial",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.EntryPayment), out.Type)
	assert.True(t, out.Amount.Equal(d(100)))
	assert.True(t, out.BalanceAfter.Equal(d(150)))

	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(d(150)))

	payments, err := store.Payments().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentModeCash, payments[0].PaymentMode, "mode defaults to cash")
}

// Paying more than is owed clamps the balance at zero; the surplus does not
// become an advance.
func TestRecordPayment_ClampsAtZero(t *testing.T) {
	store := memory.NewStore()
	seedCustomer(t, store, "c1", 80)
	uc := newLedgerUC(store)

	out, err := uc.RecordPayment(context.Background(), "c1", dto.RecordPaymentRequest{Amount: d(200)})
	require.NoError(t, err)
	assert.True(t, out.BalanceAfter.IsZero())

	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.IsZero())
}

// An advance pushes the balance negative; the deposit is explicit, not a
// side effect of overpaying.
func TestRecordAdvance(t *testing.T) {
	store := memory.NewStore()
	seedCustomer(t, store, "c1", 0)
	uc := newLedgerUC(store)

	out, err := uc.RecordAdvance(context.Background(), "c1", dto.RecordAdvanceRequest{
		Amount:      d(500),
		PaymentMode: entity.PaymentModeUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.EntryAdvance), out.Type)
	assert.True(t, out.BalanceAfter.Equal(d(-500)))

	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(d(-500)))
}

func TestLedger_Validation(t *testing.T) {
	store := memory.NewStore()
	seedCustomer(t, store, "c1", 100)
	uc := newLedgerUC(store)
	ctx := context.Background()

	_, err := uc.RecordPayment(ctx, "c1", dto.RecordPaymentRequest{Amount: d(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero amount")

	_, err = uc.RecordPayment(ctx, "c1", dto.RecordPaymentRequest{Amount: d(-10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative amount")

	_, err = uc.RecordPayment(ctx, "c1", dto.RecordPaymentRequest{Amount: d(10), PaymentMode: entity.PaymentModeCredit})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "credit is not a settlement mode")

	_, err = uc.RecordPayment(ctx, "nobody", dto.RecordPaymentRequest{Amount: d(10)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.OutstandingBalance(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// The materialized balance always equals the BalanceAfter of the latest entry.
func TestLedger_BalanceMatchesLatestEntry(t *testing.T) {
	store := memory.NewStore()
	seedCustomer(t, store, "c1", 0)
	uc := newLedgerUC(store)
	ctx := context.Background()

	_, err := uc.RecordAdvance(ctx, "c1", dto.RecordAdvanceRequest{Amount: d(300)})
	require.NoError(t, err)
	_, err = uc.RecordAdvance(ctx, "c1", dto.RecordAdvanceRequest{Amount: d(200)})
	require.NoError(t, err)

	latest, err := store.Ledger().GetLatestByCustomer("c1")
	require.NoError(t, err)
	balance, err := uc.OutstandingBalance(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(latest.BalanceAfter))
	assert.True(t, balance.Balance.Equal(d(-500)))
}

// History is newest first and paginates.
func TestLedger_History(t *testing.T) {
	store := memory.NewStore()
	seedCustomer(t, store, "c1", 1000)
	uc := newLedgerUC(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.RecordPayment(ctx, "c1", dto.RecordPaymentRequest{Amount: d(100)})
		require.NoError(t, err)
	}

	entries, err := uc.History(ctx, "c1", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].BalanceAfter.Equal(d(700)), "newest entry first")
	assert.True(t, entries[1].BalanceAfter.Equal(d(800)))

	rest, err := uc.History(ctx, "c1", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.True(t, rest[0].BalanceAfter.Equal(d(900)))
}

// A failure materializing the balance rolls back the appended entry.
func TestLedger_Atomicity(t *testing.T) {
	store := memory.NewStore()
	seedCustomer(t, store, "c1", 300)
	uc := newLedgerUC(store)

	boom := errors.New("connection reset")
	store.FailOnce("customer.updateBalance", boom)

	_, err := uc.RecordPayment(context.Background(), "c1", dto.RecordPaymentRequest{Amount: d(100)})
	require.ErrorIs(t, err, boom)

	entries, err := store.Ledger().ListByCustomer("c1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	c, err := store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(d(300)))
}
