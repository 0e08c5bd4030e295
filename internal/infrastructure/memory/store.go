// Package memory is an in-memory implementation of every repository port with
// real transaction semantics: each Run* takes a snapshot and restores it when
// the callback fails, so rollback behaviour matches the PostgreSQL runner.
// Used by the use-case tests; the deployed store is PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiranapos/kirana-api/internal/application/billing"
	"github.com/kiranapos/kirana-api/internal/application/inventory"
	applledger "github.com/kiranapos/kirana-api/internal/application/ledger"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/billnumber"
)

var _ billing.TxRunner = (*Store)(nil)
var _ applledger.TxRunner = (*Store)(nil)
var _ inventory.TxRunner = (*Store)(nil)

// Store holds all state behind one mutex: a faithful model of the
// single-writer store the application runs against.
type Store struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	customers map[string]entity.Customer
	bills     map[string]entity.Bill
	billItems map[string][]entity.BillItem
	payments  []entity.PaymentRecord
	ledgers   map[string][]entity.LedgerEntry
	counters  map[string]int64

	// failOn maps an operation name (e.g. "ledger.append") to an error the
	// next matching call returns. Lets tests simulate a storage fault in the
	// middle of a transaction.
	failOn map[string]error
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		products:  map[string]entity.Product{},
		customers: map[string]entity.Customer{},
		bills:     map[string]entity.Bill{},
		billItems: map[string][]entity.BillItem{},
		ledgers:   map[string][]entity.LedgerEntry{},
		counters:  map[string]int64{},
		failOn:    map[string]error{},
	}
}

// FailOnce makes the next call of the named operation fail with err.
func (s *Store) FailOnce(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

func (s *Store) takeFailure(op string) error {
	if err, ok := s.failOn[op]; ok {
		delete(s.failOn, op)
		return err
	}
	return nil
}

type snapshot struct {
	products  map[string]entity.Product
	customers map[string]entity.Customer
	bills     map[string]entity.Bill
	billItems map[string][]entity.BillItem
	payments  []entity.PaymentRecord
	ledgers   map[string][]entity.LedgerEntry
	counters  map[string]int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]entity.Product, len(s.products)),
		customers: make(map[string]entity.Customer, len(s.customers)),
		bills:     make(map[string]entity.Bill, len(s.bills)),
		billItems: make(map[string][]entity.BillItem, len(s.billItems)),
		payments:  append([]entity.PaymentRecord(nil), s.payments...),
		ledgers:   make(map[string][]entity.LedgerEntry, len(s.ledgers)),
		counters:  make(map[string]int64, len(s.counters)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.bills {
		snap.bills[k] = v
	}
	for k, v := range s.billItems {
		snap.billItems[k] = append([]entity.BillItem(nil), v...)
	}
	for k, v := range s.ledgers {
		snap.ledgers[k] = append([]entity.LedgerEntry(nil), v...)
	}
	for k, v := range s.counters {
		snap.counters[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.customers = snap.customers
	s.bills = snap.bills
	s.billItems = snap.billItems
	s.payments = snap.payments
	s.ledgers = snap.ledgers
	s.counters = snap.counters
}

// RunBilling implements billing.TxRunner with snapshot rollback.
func (s *Store) RunBilling(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	ledgerRepo repository.LedgerRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(&txProductRepo{s}, &txBillRepo{s}, &txPaymentRepo{s}, &txLedgerRepo{s}, &txCustomerRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunLedger implements ledger.TxRunner with snapshot rollback.
func (s *Store) RunLedger(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(&txCustomerRepo{s}, &txLedgerRepo{s}, &txPaymentRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Run implements inventory.TxRunner with snapshot rollback.
func (s *Store) Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(&txProductRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Pool-style accessors for reads outside a transaction.

func (s *Store) Products() repository.ProductRepository   { return &lockedProductRepo{s} }
func (s *Store) Customers() repository.CustomerRepository { return &lockedCustomerRepo{s} }
func (s *Store) Bills() repository.BillRepository         { return &lockedBillRepo{s} }
func (s *Store) Payments() repository.PaymentRepository   { return &lockedPaymentRepo{s} }
func (s *Store) Ledger() repository.LedgerRepository      { return &lockedLedgerRepo{s} }

// ── tx-bound repositories (caller holds the store mutex) ────────────────────

type txProductRepo struct{ s *Store }

func (r *txProductRepo) Create(p *entity.Product) error {
	if err := r.s.takeFailure("product.create"); err != nil {
		return err
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *txProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *txProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	// The store mutex already serializes the whole transaction.
	return r.GetByID(id)
}

func (r *txProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *txProductRepo) UpdateStock(id string, quantity decimal.Decimal, updatedAt time.Time) error {
	if err := r.s.takeFailure("product.updateStock"); err != nil {
		return err
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.CurrentStock = quantity
	p.UpdatedAt = updatedAt
	r.s.products[id] = p
	return nil
}

func (r *txProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *txProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CurrentStock.LessThanOrEqual(p.LowStockThreshold) {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentStock.LessThan(out[j].CurrentStock) })
	return out, nil
}

type txCustomerRepo struct{ s *Store }

func (r *txCustomerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r *txCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		cp := c
		return &cp, nil
	}
	return nil, nil
}

func (r *txCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *txCustomerRepo) Update(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r *txCustomerRepo) UpdateBalance(id string, balance decimal.Decimal, updatedAt time.Time) error {
	if err := r.s.takeFailure("customer.updateBalance"); err != nil {
		return err
	}
	c, ok := r.s.customers[id]
	if !ok {
		return nil
	}
	c.CurrentBalance = balance
	c.UpdatedAt = updatedAt
	r.s.customers[id] = c
	return nil
}

func (r *txCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	all := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		cp := c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

type txBillRepo struct{ s *Store }

func (r *txBillRepo) Create(b *entity.Bill) error {
	if err := r.s.takeFailure("bill.create"); err != nil {
		return err
	}
	r.s.bills[b.ID] = *b
	return nil
}

func (r *txBillRepo) CreateItem(item *entity.BillItem) error {
	if err := r.s.takeFailure("bill.createItem"); err != nil {
		return err
	}
	r.s.billItems[item.BillID] = append(r.s.billItems[item.BillID], *item)
	return nil
}

func (r *txBillRepo) GetByID(id string) (*entity.Bill, error) {
	if b, ok := r.s.bills[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (r *txBillRepo) GetForUpdate(id string) (*entity.Bill, error) {
	return r.GetByID(id)
}

func (r *txBillRepo) GetItemsByBillID(billID string) ([]*entity.BillItem, error) {
	items := r.s.billItems[billID]
	out := make([]*entity.BillItem, 0, len(items))
	for _, item := range items {
		cp := item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *txBillRepo) UpdateStatus(id, status string) error {
	b, ok := r.s.bills[id]
	if !ok {
		return nil
	}
	b.Status = status
	r.s.bills[id] = b
	return nil
}

func (r *txBillRepo) List(limit, offset int) ([]*entity.Bill, error) {
	all := make([]*entity.Bill, 0, len(r.s.bills))
	for _, b := range r.s.bills {
		cp := b
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *txBillRepo) NextBillNumber(prefix string, day time.Time) (string, error) {
	key := day.Format("2006-01-02")
	r.s.counters[key]++
	return billnumber.Format(prefix, day, r.s.counters[key]), nil
}

type txPaymentRepo struct{ s *Store }

func (r *txPaymentRepo) Create(p *entity.PaymentRecord) error {
	if err := r.s.takeFailure("payment.create"); err != nil {
		return err
	}
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r *txPaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.PaymentRecord, error) {
	var out []*entity.PaymentRecord
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		if r.s.payments[i].CustomerID == customerID {
			cp := r.s.payments[i]
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

type txLedgerRepo struct{ s *Store }

func (r *txLedgerRepo) Append(e *entity.LedgerEntry) error {
	if err := r.s.takeFailure("ledger.append"); err != nil {
		return err
	}
	r.s.ledgers[e.CustomerID] = append(r.s.ledgers[e.CustomerID], *e)
	return nil
}

func (r *txLedgerRepo) GetLatestByCustomer(customerID string) (*entity.LedgerEntry, error) {
	entries := r.s.ledgers[customerID]
	if len(entries) == 0 {
		return nil, nil
	}
	cp := entries[len(entries)-1]
	return &cp, nil
}

func (r *txLedgerRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	entries := r.s.ledgers[customerID]
	out := make([]*entity.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		cp := entries[i]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── pool-style repositories (take the mutex per call) ───────────────────────

type lockedProductRepo struct{ s *Store }

func (r *lockedProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txProductRepo{r.s}).Create(p)
}

func (r *lockedProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txProductRepo{r.s}).GetByID(id)
}

func (r *lockedProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *lockedProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txProductRepo{r.s}).Update(p)
}

func (r *lockedProductRepo) UpdateStock(id string, quantity decimal.Decimal, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txProductRepo{r.s}).UpdateStock(id, quantity, updatedAt)
}

func (r *lockedProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txProductRepo{r.s}).List(limit, offset)
}

func (r *lockedProductRepo) ListLowStock() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txProductRepo{r.s}).ListLowStock()
}

type lockedCustomerRepo struct{ s *Store }

func (r *lockedCustomerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txCustomerRepo{r.s}).Create(c)
}

func (r *lockedCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txCustomerRepo{r.s}).GetByID(id)
}

func (r *lockedCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *lockedCustomerRepo) Update(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txCustomerRepo{r.s}).Update(c)
}

func (r *lockedCustomerRepo) UpdateBalance(id string, balance decimal.Decimal, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txCustomerRepo{r.s}).UpdateBalance(id, balance, updatedAt)
}

func (r *lockedCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txCustomerRepo{r.s}).List(limit, offset)
}

type lockedBillRepo struct{ s *Store }

func (r *lockedBillRepo) Create(b *entity.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txBillRepo{r.s}).Create(b)
}

func (r *lockedBillRepo) CreateItem(item *entity.BillItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txBillRepo{r.s}).CreateItem(item)
}

func (r *lockedBillRepo) GetByID(id string) (*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txBillRepo{r.s}).GetByID(id)
}

func (r *lockedBillRepo) GetForUpdate(id string) (*entity.Bill, error) {
	return r.GetByID(id)
}

func (r *lockedBillRepo) GetItemsByBillID(billID string) ([]*entity.BillItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txBillRepo{r.s}).GetItemsByBillID(billID)
}

func (r *lockedBillRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txBillRepo{r.s}).UpdateStatus(id, status)
}

func (r *lockedBillRepo) List(limit, offset int) ([]*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txBillRepo{r.s}).List(limit, offset)
}

func (r *lockedBillRepo) NextBillNumber(prefix string, day time.Time) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txBillRepo{r.s}).NextBillNumber(prefix, day)
}

type lockedPaymentRepo struct{ s *Store }

func (r *lockedPaymentRepo) Create(p *entity.PaymentRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txPaymentRepo{r.s}).Create(p)
}

func (r *lockedPaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.PaymentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txPaymentRepo{r.s}).ListByCustomer(customerID, limit, offset)
}

type lockedLedgerRepo struct{ s *Store }

func (r *lockedLedgerRepo) Append(e *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txLedgerRepo{r.s}).Append(e)
}

func (r *lockedLedgerRepo) GetLatestByCustomer(customerID string) (*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txLedgerRepo{r.s}).GetLatestByCustomer(customerID)
}

func (r *lockedLedgerRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txLedgerRepo{r.s}).ListByCustomer(customerID, limit, offset)
}
