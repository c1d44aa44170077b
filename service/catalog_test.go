package service

import (
	"context"
	"github.com/stretchr/testify/suite"
	"log/slog"
	"testing"
	"vending-machine/common/errs"
	"vending-machine/model"
	"vending-machine/outbound/memory"
)

type CatalogServiceTestSuite struct {
	suite.Suite

	Store   *memory.Store
	Catalog CatalogService
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.Store = memory.New()
	s.Catalog = CatalogService{Store: s.Store}

	for _, id := range []string{"s1", "s2"} {
		_, err := s.Store.InsertAccount(context.Background(), model.Account{ID: id, Username: "seller-" + id, Role: model.RoleSeller})
		s.Require().NoError(err)
	}

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) seed(name string, cost, amount int32, sellerID string) model.Product {
	product, err := s.Store.InsertProduct(context.Background(), model.Product{
		Name:            name,
		Cost:            cost,
		AmountAvailable: amount,
		SellerID:        sellerID,
	})
	s.Require().NoError(err)
	return product
}

func (s *CatalogServiceTestSuite) TestGetAll() {
	ctx := context.Background()

	products, err := s.Catalog.GetAll(ctx)
	s.Require().NoError(err)
	s.NotNil(products)
	s.Empty(products)

	s.seed("Cola", 50, 3, "s1")
	s.seed("Chips", 25, 8, "s2")

	products, err = s.Catalog.GetAll(ctx)
	s.Require().NoError(err)
	s.Len(products, 2)
	s.Equal("Cola", products[0].Name)
	s.Equal("Chips", products[1].Name)
}

func (s *CatalogServiceTestSuite) TestGetByID() {
	ctx := context.Background()
	cola := s.seed("Cola", 50, 3, "s1")

	product, err := s.Catalog.GetByID(ctx, cola.ID)
	s.Require().NoError(err)
	s.Require().NotNil(product)
	s.Equal(cola, *product)

	product, err = s.Catalog.GetByID(ctx, 1000)
	s.NoError(err)
	s.Nil(product)
}

func (s *CatalogServiceTestSuite) TestGetBySeller() {
	ctx := context.Background()
	s.seed("Cola", 50, 3, "s1")
	s.seed("Chips", 25, 8, "s2")
	s.seed("Water", 20, 5, "s1")

	products, err := s.Catalog.GetBySeller(ctx, "s1")
	s.Require().NoError(err)
	s.Len(products, 2)
	for _, p := range products {
		s.Equal("s1", p.SellerID)
	}

	products, err = s.Catalog.GetBySeller(ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(products)
	s.Empty(products)

	_, err = s.Catalog.GetBySeller(ctx, "")
	s.ErrorIs(err, errs.ErrInvalidEntityId)
}

func (s *CatalogServiceTestSuite) TestCreate() {
	tests := []struct {
		name        string
		draft       model.Product
		expectedErr error
	}{
		{
			name:        "missing name",
			draft:       model.Product{Cost: 10, AmountAvailable: 3, SellerID: "s1"},
			expectedErr: errs.ErrInvalidEntityData,
		},
		{
			name:        "missing owner",
			draft:       model.Product{Name: "Cola", Cost: 10, AmountAvailable: 3},
			expectedErr: errs.ErrInvalidEntityData,
		},
		{
			name:        "cost not multiple of 5",
			draft:       model.Product{Name: "Cola", Cost: 12, AmountAvailable: 3, SellerID: "s1"},
			expectedErr: errs.ErrInvalidProductCostOrAmount,
		},
		{
			name:        "zero cost",
			draft:       model.Product{Name: "Cola", Cost: 0, AmountAvailable: 3, SellerID: "s1"},
			expectedErr: errs.ErrInvalidProductCostOrAmount,
		},
		{
			name:        "zero amount",
			draft:       model.Product{Name: "Cola", Cost: 10, AmountAvailable: 0, SellerID: "s1"},
			expectedErr: errs.ErrInvalidProductCostOrAmount,
		},
		{
			name:        "caller supplied id",
			draft:       model.Product{ID: 6, Name: "Cola", Cost: 10, AmountAvailable: 3, SellerID: "s1"},
			expectedErr: errs.ErrInvalidEntityId,
		},
		{
			name:        "data is checked before id",
			draft:       model.Product{ID: 6, Cost: 12, AmountAvailable: 3, SellerID: "s1"},
			expectedErr: errs.ErrInvalidEntityData,
		},
		{
			name:        "seller without account",
			draft:       model.Product{Name: "Cola", Cost: 10, AmountAvailable: 3, SellerID: "ghost"},
			expectedErr: errs.ErrAccountNotFound,
		},
		{
			name:  "success",
			draft: model.Product{Name: "Cola", Cost: 10, AmountAvailable: 3, SellerID: "s1"},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			product, err := s.Catalog.Create(context.Background(), tc.draft)

			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
				return
			}

			s.Require().NoError(err)
			s.NotZero(product.ID)
			s.Equal(int32(3), product.AmountAvailable)
			s.Equal(tc.draft.Name, product.Name)
			s.Equal(tc.draft.SellerID, product.SellerID)
		})
	}
}

func (s *CatalogServiceTestSuite) TestUpdate() {
	ctx := context.Background()
	cola := s.seed("Cola", 50, 3, "s1")

	tests := []struct {
		name        string
		id          int32
		patch       model.ProductPatch
		requesterID string
		expectedErr error
		expectNil   bool
	}{
		{
			name:        "missing name",
			id:          cola.ID,
			patch:       model.ProductPatch{Cost: 50, AmountAvailable: 4},
			requesterID: "s1",
			expectedErr: errs.ErrInvalidEntityData,
		},
		{
			name:        "missing requester",
			id:          cola.ID,
			patch:       model.ProductPatch{Name: "Cola", Cost: 50, AmountAvailable: 4},
			expectedErr: errs.ErrInvalidEntityId,
		},
		{
			name:        "non positive id",
			id:          0,
			patch:       model.ProductPatch{Name: "Cola", Cost: 50, AmountAvailable: 4},
			requesterID: "s1",
			expectedErr: errs.ErrInvalidEntityId,
		},
		{
			name:        "invalid cost",
			id:          cola.ID,
			patch:       model.ProductPatch{Name: "Cola", Cost: 7, AmountAvailable: 4},
			requesterID: "s1",
			expectedErr: errs.ErrInvalidProductCostOrAmount,
		},
		{
			name:        "invalid amount",
			id:          cola.ID,
			patch:       model.ProductPatch{Name: "Cola", Cost: 50, AmountAvailable: 0},
			requesterID: "s1",
			expectedErr: errs.ErrInvalidProductCostOrAmount,
		},
		{
			name:        "unknown product",
			id:          1000,
			patch:       model.ProductPatch{Name: "Cola", Cost: 50, AmountAvailable: 4},
			requesterID: "s1",
			expectNil:   true,
		},
		{
			name:        "not the owner",
			id:          cola.ID,
			patch:       model.ProductPatch{Name: "Cola", Cost: 50, AmountAvailable: 4},
			requesterID: "s2",
			expectedErr: errs.ErrUnauthorizedSeller,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			product, err := s.Catalog.Update(ctx, tc.id, tc.patch, tc.requesterID)

			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
				s.Nil(product)
				return
			}

			s.NoError(err)
			if tc.expectNil {
				s.Nil(product)
			}
		})
	}

	stored, err := s.Catalog.GetByID(ctx, cola.ID)
	s.Require().NoError(err)
	s.Equal(cola, *stored, "rejected updates must not touch the product")
}

func (s *CatalogServiceTestSuite) TestUpdateKeepsCost() {
	ctx := context.Background()
	cola := s.seed("Cola", 50, 3, "s1")

	product, err := s.Catalog.Update(ctx, cola.ID, model.ProductPatch{Name: "Cola Zero", Cost: 95, AmountAvailable: 9}, "s1")
	s.Require().NoError(err)
	s.Require().NotNil(product)

	s.Equal("Cola Zero", product.Name)
	s.Equal(int32(9), product.AmountAvailable)
	s.Equal(int32(50), product.Cost)

	stored, err := s.Catalog.GetByID(ctx, cola.ID)
	s.Require().NoError(err)
	s.Equal(*product, *stored)
}

func (s *CatalogServiceTestSuite) TestDelete() {
	ctx := context.Background()
	cola := s.seed("Cola", 50, 3, "s1")

	_, err := s.Catalog.Delete(ctx, 0, "s1")
	s.ErrorIs(err, errs.ErrInvalidEntityId)

	_, err = s.Catalog.Delete(ctx, cola.ID, "")
	s.ErrorIs(err, errs.ErrInvalidEntityId)

	_, err = s.Catalog.Delete(ctx, cola.ID, "s2")
	s.ErrorIs(err, errs.ErrUnauthorizedSeller)

	removed, err := s.Catalog.Delete(ctx, cola.ID, "s1")
	s.Require().NoError(err)
	s.Require().NotNil(removed)
	s.Equal(cola, *removed)

	removed, err = s.Catalog.Delete(ctx, cola.ID, "s1")
	s.NoError(err)
	s.Nil(removed)

	product, err := s.Catalog.GetByID(ctx, cola.ID)
	s.NoError(err)
	s.Nil(product)
}
