package billing

import (
	"context"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
)

// GetBill returns a bill with its full line detail.
func (uc *CreateBillUseCase) GetBill(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.billRepo.GetItemsByBillID(id)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill, items), nil
}

// ListBills returns recent bills, newest first, headers only.
func (uc *CreateBillUseCase) ListBills(ctx context.Context, page dto.PageRequest) ([]*dto.BillResponse, error) {
	page.DefaultPage()
	bills, err := uc.billRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b, nil))
	}
	return out, nil
}
