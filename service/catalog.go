package service

import (
	"context"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/errs"
	"vending-machine/common/otel"
	"vending-machine/model"
)

type CatalogService struct {
	Store contract.Store
}

func (s CatalogService) GetAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := otel.Tracer.Start(ctx, "CatalogService.GetAll")
	defer span.End()

	products, err := s.Store.FindAllProducts(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// GetByID returns nil without error when the product does not exist.
func (s CatalogService) GetByID(ctx context.Context, id int32) (*model.Product, error) {
	ctx, span := otel.Tracer.Start(ctx, "CatalogService.GetByID")
	defer span.End()

	product, err := s.Store.FindProductByID(ctx, id)
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	return product, nil
}

func (s CatalogService) GetBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	if sellerID == "" {
		return nil, errs.ErrInvalidEntityId
	}

	ctx, span := otel.Tracer.Start(ctx, "CatalogService.GetBySeller")
	defer span.End()

	products, err := s.Store.FindProductsBySeller(ctx, sellerID)
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// Create stores a new product owned by draft.SellerID. The id is assigned by
// the store, so a draft must not carry one.
func (s CatalogService) Create(ctx context.Context, draft model.Product) (model.Product, error) {
	if draft.Name == "" || draft.SellerID == "" {
		return model.Product{}, errs.ErrInvalidEntityData
	}

	if !validCostAndAmount(draft.Cost, draft.AmountAvailable) {
		return model.Product{}, errs.ErrInvalidProductCostOrAmount
	}

	if draft.ID != 0 {
		return model.Product{}, errs.ErrInvalidEntityId
	}

	ctx, span := otel.Tracer.Start(ctx, "CatalogService.Create")
	defer span.End()

	product, err := s.Store.InsertProduct(ctx, draft)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.Product{}, err
	}

	return product, nil
}

// Update applies the patch name and amount. Cost stays pinned to the stored
// value, repricing is not done through this call. A nil product means the id
// does not exist.
func (s CatalogService) Update(ctx context.Context, id int32, patch model.ProductPatch, requesterID string) (*model.Product, error) {
	if patch.Name == "" {
		return nil, errs.ErrInvalidEntityData
	}

	if requesterID == "" || id <= 0 {
		return nil, errs.ErrInvalidEntityId
	}

	if !validCostAndAmount(patch.Cost, patch.AmountAvailable) {
		return nil, errs.ErrInvalidProductCostOrAmount
	}

	ctx, span := otel.Tracer.Start(ctx, "CatalogService.Update")
	defer span.End()

	var updated *model.Product
	err := s.Store.InTx(ctx, func(tx contract.Tx) error {
		existing, err := tx.LockProduct(ctx, id)
		if err != nil || existing == nil {
			return err
		}

		if existing.SellerID != requesterID {
			return errs.ErrUnauthorizedSeller
		}

		existing.Name = patch.Name
		existing.AmountAvailable = patch.AmountAvailable

		saved, err := tx.SaveProduct(ctx, *existing)
		if err != nil {
			return err
		}

		updated = &saved
		return nil
	})
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	return updated, nil
}

// Delete removes the product and returns it, or nil if it does not exist.
func (s CatalogService) Delete(ctx context.Context, id int32, requesterID string) (*model.Product, error) {
	if id <= 0 || requesterID == "" {
		return nil, errs.ErrInvalidEntityId
	}

	ctx, span := otel.Tracer.Start(ctx, "CatalogService.Delete")
	defer span.End()

	var removed *model.Product
	err := s.Store.InTx(ctx, func(tx contract.Tx) error {
		existing, err := tx.LockProduct(ctx, id)
		if err != nil || existing == nil {
			return err
		}

		if existing.SellerID != requesterID {
			return errs.ErrUnauthorizedSeller
		}

		if err := tx.RemoveProduct(ctx, id); err != nil {
			return err
		}

		removed = existing
		return nil
	})
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	return removed, nil
}

// lockForSale locks the product row for a purchase and checks its stock.
func (s CatalogService) lockForSale(ctx context.Context, tx contract.Tx, id int32, quantity int32) (*model.Product, error) {
	product, err := tx.LockProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, errs.ErrProductNotFound
	}

	if product.AmountAvailable < quantity {
		return nil, errs.ErrInsufficientStock
	}

	return product, nil
}

func validCostAndAmount(cost, amount int32) bool {
	return cost > 0 && cost%constant.SmallestCoin == 0 && amount > 0
}
