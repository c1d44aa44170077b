package contract

import (
	"context"
	"vending-machine/model"
)

// Tx is a unit of work holding per-entity locks until it ends. Lock* methods
// return nil for an absent entity. Locks must be taken product first, then
// account.
type Tx interface {
	LockProduct(ctx context.Context, id int32) (*model.Product, error)
	SaveProduct(ctx context.Context, product model.Product) (model.Product, error)
	RemoveProduct(ctx context.Context, id int32) error

	LockAccount(ctx context.Context, id string) (*model.Account, error)
	SaveDeposit(ctx context.Context, id string, deposit int32) error
}

type Store interface {
	FindAllProducts(ctx context.Context) ([]model.Product, error)
	FindProductByID(ctx context.Context, id int32) (*model.Product, error)
	FindProductsBySeller(ctx context.Context, sellerID string) ([]model.Product, error)
	InsertProduct(ctx context.Context, product model.Product) (model.Product, error)

	FindAccountByID(ctx context.Context, id string) (*model.Account, error)
	InsertAccount(ctx context.Context, account model.Account) (model.Account, error)

	InsertPurchase(ctx context.Context, purchase model.Purchase) (bool, error)
	FindPurchasesByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error)

	// InTx commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
