package postgres

import (
	"context"
	"errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"log/slog"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/errs"
	"vending-machine/model"
	"vending-machine/outbound/sqlgen"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	accountsEmailKey = "accounts_email_key"
)

// Store is the PostgreSQL implementation of contract.Store. Row locks taken
// with SELECT ... FOR UPDATE live until the surrounding transaction ends.
type Store struct {
	Db      contract.DbConn
	Querier *sqlgen.Queries
}

func New(db contract.DbConn) *Store {
	return &Store{Db: db, Querier: sqlgen.New(db)}
}

var _ contract.Store = (*Store)(nil)

func (s *Store) FindAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.Querier.FindAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	return toProducts(rows), nil
}

func (s *Store) FindProductByID(ctx context.Context, id int32) (*model.Product, error) {
	row, err := s.Querier.FindProductByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	product := toProduct(row)
	return &product, nil
}

func (s *Store) FindProductsBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	rows, err := s.Querier.FindProductsBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return toProducts(rows), nil
}

func (s *Store) InsertProduct(ctx context.Context, product model.Product) (model.Product, error) {
	row, err := s.Querier.InsertProduct(ctx, sqlgen.InsertProductParams{
		Name:            product.Name,
		Cost:            product.Cost,
		AmountAvailable: product.AmountAvailable,
		SellerID:        product.SellerID,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return model.Product{}, errs.ErrAccountNotFound
	}

	if err != nil {
		return model.Product{}, err
	}

	return toProduct(row), nil
}

func (s *Store) FindAccountByID(ctx context.Context, id string) (*model.Account, error) {
	row, err := s.Querier.FindAccountByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	account := toAccount(row)
	return &account, nil
}

func (s *Store) InsertAccount(ctx context.Context, account model.Account) (model.Account, error) {
	row, err := s.Querier.InsertAccount(ctx, sqlgen.InsertAccountParams{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
		Role:     string(account.Role),
		Deposit:  account.Deposit,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if pgErr.ConstraintName == accountsEmailKey {
			return model.Account{}, errs.ErrEmailAlreadyExists
		}
		return model.Account{}, errs.ErrAccountAlreadyExists
	}

	if err != nil {
		return model.Account{}, err
	}

	return toAccount(row), nil
}

// InsertPurchase reports false when the reference was already recorded.
func (s *Store) InsertPurchase(ctx context.Context, purchase model.Purchase) (bool, error) {
	cmd, err := s.Querier.InsertPurchase(ctx, sqlgen.InsertPurchaseParams{
		Reference:      purchase.Reference,
		BuyerID:        purchase.BuyerID,
		ProductID:      purchase.ProductID,
		Quantity:       purchase.Quantity,
		TotalCost:      purchase.TotalCost,
		ChangeReturned: purchase.ChangeReturned,
		CreatedAt:      pgtype.Timestamp{Time: purchase.CreatedAt, Valid: true},
	})
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() > 0, nil
}

func (s *Store) FindPurchasesByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	rows, err := s.Querier.FindPurchasesByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	purchases := make([]model.Purchase, 0, len(rows))
	for _, row := range rows {
		purchases = append(purchases, model.Purchase{
			Reference:      row.Reference,
			BuyerID:        row.BuyerID,
			ProductID:      row.ProductID,
			Quantity:       row.Quantity,
			TotalCost:      row.TotalCost,
			ChangeReturned: row.ChangeReturned,
			CreatedAt:      row.CreatedAt.Time,
		})
	}

	return purchases, nil
}

func (s *Store) InTx(ctx context.Context, fn func(tx contract.Tx) error) error {
	tx, err := s.Db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(&pgTx{querier: s.Querier.WithTx(tx)}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, rbErr))
		}
		return err
	}

	return tx.Commit(ctx)
}

type pgTx struct {
	querier *sqlgen.Queries
}

func (tx *pgTx) LockProduct(ctx context.Context, id int32) (*model.Product, error) {
	row, err := tx.querier.FindProductByIDForUpdate(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	product := toProduct(row)
	return &product, nil
}

func (tx *pgTx) SaveProduct(ctx context.Context, product model.Product) (model.Product, error) {
	row, err := tx.querier.UpdateProduct(ctx, sqlgen.UpdateProductParams{
		ID:              product.ID,
		Name:            product.Name,
		Cost:            product.Cost,
		AmountAvailable: product.AmountAvailable,
	})
	if err != nil {
		return model.Product{}, err
	}

	return toProduct(row), nil
}

func (tx *pgTx) RemoveProduct(ctx context.Context, id int32) error {
	_, err := tx.querier.DeleteProduct(ctx, id)
	return err
}

func (tx *pgTx) LockAccount(ctx context.Context, id string) (*model.Account, error) {
	row, err := tx.querier.FindAccountByIDForUpdate(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	account := toAccount(row)
	return &account, nil
}

func (tx *pgTx) SaveDeposit(ctx context.Context, id string, deposit int32) error {
	_, err := tx.querier.UpdateAccountDeposit(ctx, sqlgen.UpdateAccountDepositParams{
		ID:      id,
		Deposit: deposit,
	})
	return err
}

func toProduct(row sqlgen.Product) model.Product {
	return model.Product{
		ID:              row.ID,
		Name:            row.Name,
		Cost:            row.Cost,
		AmountAvailable: row.AmountAvailable,
		SellerID:        row.SellerID,
	}
}

func toProducts(rows []sqlgen.Product) []model.Product {
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toProduct(row))
	}
	return products
}

func toAccount(row sqlgen.Account) model.Account {
	return model.Account{
		ID:       row.ID,
		Username: row.Username,
		Email:    row.Email,
		Role:     model.Role(row.Role),
		Deposit:  row.Deposit,
	}
}
