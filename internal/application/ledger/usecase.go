// Package ledger (application) exposes the credit-ledger operations: udhar
// collection, advance deposits and balance/history reads.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	domledger "github.com/kiranapos/kirana-api/internal/domain/ledger"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

// UseCase handles standalone ledger operations (not tied to a new sale).
type UseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
}

// NewUseCase builds the use case. customerRepo and ledgerRepo are pool-bound
// and used for reads only; writes go through the TxRunner.
func NewUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository, ledgerRepo repository.LedgerRepository) *UseCase {
	return &UseCase{txRunner: txRunner, customerRepo: customerRepo, ledgerRepo: ledgerRepo}
}

// RecordPayment collects udhar from a customer: appends a payment entry with
// the balance clamped at zero (an overpayment is not converted into an
// advance) and creates a PaymentRecord. Returns the appended entry.
func (uc *UseCase) RecordPayment(ctx context.Context, customerID string, in dto.RecordPaymentRequest) (*dto.LedgerEntryResponse, error) {
	entry, err := uc.appendStandalone(ctx, customerID, in.Amount, in.PaymentMode, in.Note, domledger.PlanPayment)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// RecordAdvance registers money the customer deposits ahead of purchases. The
// balance may go negative; future credit sales consume it first.
func (uc *UseCase) RecordAdvance(ctx context.Context, customerID string, in dto.RecordAdvanceRequest) (*dto.LedgerEntryResponse, error) {
	entry, err := uc.appendStandalone(ctx, customerID, in.Amount, in.PaymentMode, in.Note, domledger.PlanAdvanceDeposit)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// appendStandalone validates, locks the customer row, appends the planned
// entry, materializes the new balance and records the money received — all in
// one transaction.
func (uc *UseCase) appendStandalone(
	ctx context.Context,
	customerID string,
	amount decimal.Decimal,
	paymentMode, note string,
	plan func(balance, amount decimal.Decimal) domledger.EntryPlan,
) (*entity.LedgerEntry, error) {
	if customerID == "" || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if paymentMode == "" {
		paymentMode = entity.PaymentModeCash
	}
	if !entity.ValidPaymentMode(paymentMode) || paymentMode == entity.PaymentModeCredit {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var entry *entity.LedgerEntry

	err := uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		ledgerRepo repository.LedgerRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		customer, err := customerRepo.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		p := plan(customer.CurrentBalance, amount)
		entry = &entity.LedgerEntry{
			ID:           uuid.New().String(),
			CustomerID:   customerID,
			Type:         p.Type,
			Amount:       p.Amount,
			BalanceAfter: p.BalanceAfter,
			Note:         note,
			CreatedAt:    now,
		}
		if err := ledgerRepo.Append(entry); err != nil {
			return err
		}
		if err := customerRepo.UpdateBalance(customerID, p.BalanceAfter, now); err != nil {
			return err
		}
		return paymentRepo.Create(&entity.PaymentRecord{
			ID:          uuid.New().String(),
			CustomerID:  customerID,
			Amount:      amount,
			PaymentMode: paymentMode,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// OutstandingBalance returns the customer's signed balance: positive = owes
// the store, negative = advance. Reads the materialized balance, which equals
// the BalanceAfter of the latest ledger entry (or 0 with no history).
func (uc *UseCase) OutstandingBalance(ctx context.Context, customerID string) (*dto.BalanceResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.BalanceResponse{CustomerID: customerID, Balance: customer.CurrentBalance}, nil
}

// History returns the customer's ledger entries, newest first.
func (uc *UseCase) History(ctx context.Context, customerID string, page dto.PageRequest) ([]*dto.LedgerEntryResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	entries, err := uc.ledgerRepo.ListByCustomer(customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out, nil
}

func toEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		BillID:       e.BillID,
		Type:         string(e.Type),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Note:         e.Note,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
