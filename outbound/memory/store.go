// Package memory keeps products and accounts in process memory. Every entity
// has its own mutex. A transaction holds the mutexes it took until it ends, and
// its writes are applied only on commit.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
	"vending-machine/common/contract"
	"vending-machine/common/errs"
	"vending-machine/model"
)

var errNotLocked = errors.New("memory: entity must be locked in this transaction before writing")

type productEntry struct {
	mu      sync.Mutex
	product model.Product
	deleted bool
}

type accountEntry struct {
	mu      sync.Mutex
	account model.Account

	// username and email are immutable, so they can be read under the store
	// lock alone.
	username string
	email    string
}

type Store struct {
	// mu guards the indexes only, never entity contents. It is always released
	// before an entity mutex is taken.
	mu        sync.RWMutex
	products  map[int32]*productEntry
	accounts  map[string]*accountEntry
	purchases []model.Purchase
	nextID    int32

	Now func() time.Time
}

func New() *Store {
	return &Store{
		products: make(map[int32]*productEntry),
		accounts: make(map[string]*accountEntry),
		Now:      time.Now,
	}
}

var _ contract.Store = (*Store)(nil)

func (s *Store) lookupProduct(id int32) *productEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products[id]
}

func (s *Store) lookupAccount(id string) *accountEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[id]
}

func (s *Store) FindAllProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	entries := make([]*productEntry, 0, len(s.products))
	for _, e := range s.products {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	return collect(entries, func(model.Product) bool { return true }), nil
}

func (s *Store) FindProductByID(ctx context.Context, id int32) (*model.Product, error) {
	e := s.lookupProduct(id)
	if e == nil {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleted {
		return nil, nil
	}

	p := e.product
	return &p, nil
}

func (s *Store) FindProductsBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	s.mu.RLock()
	entries := make([]*productEntry, 0, len(s.products))
	for _, e := range s.products {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	return collect(entries, func(p model.Product) bool { return p.SellerID == sellerID }), nil
}

func (s *Store) InsertProduct(ctx context.Context, product model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[product.SellerID]; !ok {
		return model.Product{}, errs.ErrAccountNotFound
	}

	s.nextID++
	product.ID = s.nextID
	s.products[product.ID] = &productEntry{product: product}

	return product, nil
}

func (s *Store) FindAccountByID(ctx context.Context, id string) (*model.Account, error) {
	e := s.lookupAccount(id)
	if e == nil {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	a := e.account
	return &a, nil
}

func (s *Store) InsertAccount(ctx context.Context, account model.Account) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account.Email != "" {
		for _, e := range s.accounts {
			if e.email == account.Email {
				return model.Account{}, errs.ErrEmailAlreadyExists
			}
		}
	}

	if _, ok := s.accounts[account.ID]; ok {
		return model.Account{}, errs.ErrAccountAlreadyExists
	}

	for _, e := range s.accounts {
		if e.username == account.Username {
			return model.Account{}, errs.ErrAccountAlreadyExists
		}
	}

	s.accounts[account.ID] = &accountEntry{account: account, username: account.Username, email: account.Email}
	return account, nil
}

func (s *Store) InsertPurchase(ctx context.Context, purchase model.Purchase) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.purchases {
		if p.Reference == purchase.Reference {
			return false, nil
		}
	}

	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = s.Now()
	}

	s.purchases = append(s.purchases, purchase)
	return true, nil
}

func (s *Store) FindPurchasesByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := make([]model.Purchase, 0)
	for i := len(s.purchases) - 1; i >= 0; i-- {
		if s.purchases[i].BuyerID == buyerID {
			purchases = append(purchases, s.purchases[i])
		}
	}

	return purchases, nil
}

func (s *Store) InTx(ctx context.Context, fn func(tx contract.Tx) error) error {
	tx := &memTx{
		store:    s,
		products: make(map[int32]*productEntry),
		accounts: make(map[string]*accountEntry),
		staged:   make(map[int32]model.Product),
		removed:  make(map[int32]bool),
		deposits: make(map[string]int32),
	}
	defer tx.release()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		return err
	}

	// A caller that gave up waiting still gets a clean rollback.
	if err := ctx.Err(); err != nil {
		return err
	}

	tx.commit()
	return nil
}

type memTx struct {
	store    *Store
	products map[int32]*productEntry
	accounts map[string]*accountEntry
	order    []sync.Locker

	staged   map[int32]model.Product
	removed  map[int32]bool
	deposits map[string]int32
}

func (tx *memTx) LockProduct(ctx context.Context, id int32) (*model.Product, error) {
	e, ok := tx.products[id]
	if !ok {
		e = tx.store.lookupProduct(id)
		if e == nil {
			return nil, nil
		}

		e.mu.Lock()
		tx.products[id] = e
		tx.order = append(tx.order, &e.mu)
	}

	if e.deleted || tx.removed[id] {
		return nil, nil
	}

	p := e.product
	if staged, ok := tx.staged[id]; ok {
		p = staged
	}

	return &p, nil
}

func (tx *memTx) SaveProduct(ctx context.Context, product model.Product) (model.Product, error) {
	if _, ok := tx.products[product.ID]; !ok {
		return model.Product{}, errNotLocked
	}

	tx.staged[product.ID] = product
	return product, nil
}

func (tx *memTx) RemoveProduct(ctx context.Context, id int32) error {
	if _, ok := tx.products[id]; !ok {
		return errNotLocked
	}

	delete(tx.staged, id)
	tx.removed[id] = true
	return nil
}

func (tx *memTx) LockAccount(ctx context.Context, id string) (*model.Account, error) {
	e, ok := tx.accounts[id]
	if !ok {
		e = tx.store.lookupAccount(id)
		if e == nil {
			return nil, nil
		}

		e.mu.Lock()
		tx.accounts[id] = e
		tx.order = append(tx.order, &e.mu)
	}

	a := e.account
	if deposit, ok := tx.deposits[id]; ok {
		a.Deposit = deposit
	}

	return &a, nil
}

func (tx *memTx) SaveDeposit(ctx context.Context, id string, deposit int32) error {
	if _, ok := tx.accounts[id]; !ok {
		return errNotLocked
	}

	tx.deposits[id] = deposit
	return nil
}

// commit runs while every touched entity is still locked.
func (tx *memTx) commit() {
	for id, p := range tx.staged {
		tx.products[id].product = p
	}

	for id, deposit := range tx.deposits {
		tx.accounts[id].account.Deposit = deposit
	}

	if len(tx.removed) == 0 {
		return
	}

	tx.store.mu.Lock()
	for id := range tx.removed {
		tx.products[id].deleted = true
		delete(tx.store.products, id)
	}
	tx.store.mu.Unlock()
}

func (tx *memTx) release() {
	for i := len(tx.order) - 1; i >= 0; i-- {
		tx.order[i].Unlock()
	}
}

func collect(entries []*productEntry, keep func(model.Product) bool) []model.Product {
	products := make([]model.Product, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.deleted && keep(e.product) {
			products = append(products, e.product)
		}
		e.mu.Unlock()
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
