package billing

import (
	"context"
	"time"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

// CancelBillUseCase voids a bill and restores its stock. Ledger entries of a
// credit bill are left untouched: the history is append-only, so undoing the
// udhar is done by recording a payment.
type CancelBillUseCase struct {
	txRunner TxRunner
	billRepo repository.BillRepository
}

// NewCancelBillUseCase builds the use case.
func NewCancelBillUseCase(txRunner TxRunner, billRepo repository.BillRepository) *CancelBillUseCase {
	return &CancelBillUseCase{txRunner: txRunner, billRepo: billRepo}
}

// CancelBill atomically restores each line's quantity to its product's stock
// (plain increment, no clamping needed) and flips the status to cancelled.
// Cancelling an already-cancelled bill fails with ErrBillCancelled so stock is
// never restored twice.
func (uc *CancelBillUseCase) CancelBill(ctx context.Context, billID string) (*dto.BillResponse, error) {
	if billID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var bill *entity.Bill
	var items []*entity.BillItem

	err := uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		billRepo repository.BillRepository,
		_ repository.PaymentRepository,
		_ repository.LedgerRepository,
		_ repository.CustomerRepository,
	) error {
		var err error
		bill, err = billRepo.GetForUpdate(billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return domain.ErrNotFound
		}
		if bill.Status == entity.BillStatusCancelled {
			return domain.ErrBillCancelled
		}

		items, err = billRepo.GetItemsByBillID(billID)
		if err != nil {
			return err
		}
		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.UpdateStock(product.ID, product.CurrentStock.Add(item.Quantity), now); err != nil {
				return err
			}
		}

		bill.Status = entity.BillStatusCancelled
		return billRepo.UpdateStatus(billID, entity.BillStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	return toBillResponse(bill, items), nil
}
