package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/ledger"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

// CreateBillUseCase creates a bill, deducts stock and records the payment or
// udhar ledger entries in a single transaction.
type CreateBillUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	billPrefix   string
}

// NewCreateBillUseCase builds the use case. billPrefix is prepended to
// generated bill numbers.
func NewCreateBillUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	billPrefix string,
) *CreateBillUseCase {
	return &CreateBillUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		billRepo:     billRepo,
		billPrefix:   billPrefix,
	}
}

// CreateBill validates the cart, then atomically: generates the bill number,
// creates the header and line items (snapshotting product names and agreed
// prices), deducts stock floored at zero, and records either a PaymentRecord
// (cash/upi/card) or the credit-ledger entries produced by the
// advance-consumption planner (credit).
func (uc *CreateBillUseCase) CreateBill(ctx context.Context, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMode(in.PaymentMode) {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountTotal.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMode == entity.PaymentModeCredit && in.CustomerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsNegative() || item.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	// Read-only validation outside the transaction; rows are re-read with
	// locks inside it.
	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		if !c.Active {
			return nil, domain.ErrCustomerInactive
		}
	}
	for _, item := range in.Items {
		p, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	billID := uuid.New().String()
	var bill *entity.Bill
	var items []*entity.BillItem

	err := uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		billRepo repository.BillRepository,
		paymentRepo repository.PaymentRepository,
		ledgerRepo repository.LedgerRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// 1) Per line: lock the product row, snapshot name/price, deduct
		// stock floored at zero. A sale is allowed to exceed stock; the
		// shop floor is the source of truth, the counter never blocks.
		subtotal := decimal.Zero
		for _, item := range in.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			newStock := product.CurrentStock.Sub(item.Quantity)
			if newStock.IsNegative() {
				newStock = decimal.Zero
			}
			if err := productRepo.UpdateStock(product.ID, newStock, now); err != nil {
				return err
			}
			lineTotal := item.Quantity.Mul(item.UnitPrice).Sub(item.Discount)
			items = append(items, &entity.BillItem{
				ID:          uuid.New().String(),
				BillID:      billID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Discount:    item.Discount,
				Total:       lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		grandTotal := subtotal.Sub(in.DiscountTotal)
		if grandTotal.IsNegative() {
			grandTotal = decimal.Zero
		}

		// 2) Bill number from the day's counter, then header and lines.
		number, err := billRepo.NextBillNumber(uc.billPrefix, now)
		if err != nil {
			return err
		}
		bill = &entity.Bill{
			ID:            billID,
			BillNumber:    number,
			CustomerID:    in.CustomerID,
			Subtotal:      subtotal,
			DiscountTotal: in.DiscountTotal,
			GrandTotal:    grandTotal,
			PaymentMode:   in.PaymentMode,
			Status:        entity.BillStatusCompleted,
			CreatedAt:     now,
		}
		if err := billRepo.Create(bill); err != nil {
			return err
		}
		for _, item := range items {
			if err := billRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// 3) Immediate payment modes: one PaymentRecord, no ledger entry.
		// An existing advance is NOT consumed by cash/upi/card sales.
		if in.PaymentMode != entity.PaymentModeCredit {
			return paymentRepo.Create(&entity.PaymentRecord{
				ID:          uuid.New().String(),
				BillID:      billID,
				CustomerID:  in.CustomerID,
				Amount:      grandTotal,
				PaymentMode: in.PaymentMode,
				CreatedAt:   now,
			})
		}

		// 4) Credit sale: lock the customer row and run the
		// advance-consumption planner against the materialized balance.
		lockedCustomer, err := customerRepo.GetForUpdate(in.CustomerID)
		if err != nil {
			return err
		}
		if lockedCustomer == nil {
			return domain.ErrNotFound
		}
		plans := ledger.PlanCreditSale(lockedCustomer.CurrentBalance, grandTotal)
		balance := lockedCustomer.CurrentBalance
		for _, plan := range plans {
			if err := ledgerRepo.Append(&entity.LedgerEntry{
				ID:           uuid.New().String(),
				CustomerID:   lockedCustomer.ID,
				BillID:       billID,
				Type:         plan.Type,
				Amount:       plan.Amount,
				BalanceAfter: plan.BalanceAfter,
				Note:         "bill " + number,
				CreatedAt:    now,
			}); err != nil {
				return err
			}
			balance = plan.BalanceAfter
		}
		return customerRepo.UpdateBalance(lockedCustomer.ID, balance, now)
	})
	if err != nil {
		return nil, err
	}

	return toBillResponse(bill, items), nil
}

func toBillResponse(bill *entity.Bill, items []*entity.BillItem) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:            bill.ID,
		BillNumber:    bill.BillNumber,
		CustomerID:    bill.CustomerID,
		Subtotal:      bill.Subtotal,
		DiscountTotal: bill.DiscountTotal,
		GrandTotal:    bill.GrandTotal,
		PaymentMode:   bill.PaymentMode,
		Status:        bill.Status,
		CreatedAt:     bill.CreatedAt.Format(time.RFC3339),
		Items:         make([]dto.BillItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.BillItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Total:       item.Total,
		})
	}
	return resp
}
