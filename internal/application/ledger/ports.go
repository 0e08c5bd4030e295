package ledger

import (
	"context"

	"github.com/kiranapos/kirana-api/internal/domain/repository"
)

// TxRunner runs fn inside one storage transaction with the ledger-side
// repositories bound to it.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		ledgerRepo repository.LedgerRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
