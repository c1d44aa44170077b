package service

import (
	"context"
	"github.com/oklog/ulid/v2"
	"log/slog"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/errs"
	"vending-machine/common/otel"
	"vending-machine/model"
)

// PurchaseService runs a buy as one transaction: lock the product, check
// stock, lock the buyer, check funds, then decrement stock and pay back the
// whole remaining deposit as change.
type PurchaseService struct {
	Store   contract.Store
	Catalog CatalogService
	Ledger  LedgerService
}

func NewPurchaseService(store contract.Store) PurchaseService {
	return PurchaseService{
		Store:   store,
		Catalog: CatalogService{Store: store},
		Ledger:  LedgerService{Store: store},
	}
}

func (s PurchaseService) Purchase(ctx context.Context, buyerID string, productID int32, quantity int32) (model.PurchaseResult, error) {
	if quantity <= 0 {
		return model.PurchaseResult{}, errs.ErrInvalidQuantity
	}

	ctx, span := otel.Tracer.Start(ctx, "PurchaseService.Purchase")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var result model.PurchaseResult
	err := s.Store.InTx(ctx, func(tx contract.Tx) error {
		product, err := s.Catalog.lockForSale(ctx, tx, productID, quantity)
		if err != nil {
			return err
		}

		orderCost := int64(quantity) * int64(product.Cost)

		remainder, err := s.Ledger.settle(ctx, tx, buyerID, orderCost)
		if err != nil {
			return err
		}

		change, err := DecomposeCoins(remainder)
		if err != nil {
			return err
		}

		product.AmountAvailable -= quantity
		updated, err := tx.SaveProduct(ctx, *product)
		if err != nil {
			return err
		}

		result = model.PurchaseResult{
			Reference: ulid.Make().String(),
			Product:   updated,
			Spent:     orderCost,
			Balance:   0,
			Change:    change,
		}
		return nil
	})
	if err != nil {
		slog.DebugContext(ctx, "purchase rejected", traceIdAttr,
			slog.String("buyer_id", buyerID),
			slog.Int("product_id", int(productID)),
			slog.Any(constant.LogFieldErr, err),
		)
		common.UtilSpanError(span, err)
		return model.PurchaseResult{}, err
	}

	return result, nil
}
