package billing

import (
	"context"

	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

// TxRunner runs fn inside one storage transaction with every repository bound
// to it. If fn returns an error the transaction is rolled back and none of its
// effects remain visible.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		billRepo repository.BillRepository,
		paymentRepo repository.PaymentRepository,
		ledgerRepo repository.LedgerRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
