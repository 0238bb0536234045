package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/domain/repository"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartFixture() (*mockCartRepository, *mockProductRepository, usecase.CartUsecase) {
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)

	service := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return cartRepo, productRepo, service
}

func TestCartService_GetCart_ComputesTotal(t *testing.T) {
	cartRepo, _, service := newCartFixture()

	ctx := context.Background()
	userID := uuid.New()
	productA := &entity.Product{ID: uuid.New(), PriceCents: 1000}
	productB := &entity.Product{ID: uuid.New(), PriceCents: 250}
	items := []*entity.CartItem{
		{Quantity: 3, Product: productA},
		{Quantity: 2, Product: productB},
	}

	cartRepo.On("ListByUserID", ctx, userID).Return(items, nil)

	out, err := service.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(3*1000+2*250), out.TotalCents)
	assert.Len(t, out.Items, 2)
}

func TestCartService_AddItem_MergesWithExistingLine(t *testing.T) {
	cartRepo, productRepo, service := newCartFixture()

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: uuid.New(), PriceCents: 1000, Active: true}

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	cartRepo.On("FindByUserAndProduct", ctx, userID, product.ID).
		Return(&entity.CartItem{UserID: userID, ProductID: product.ID, Quantity: 2}, nil)
	cartRepo.On("Upsert", ctx, mock.MatchedBy(func(item *entity.CartItem) bool {
		return item.Quantity == 5
	})).Return(nil)
	cartRepo.On("ListByUserID", ctx, userID).
		Return([]*entity.CartItem{{Quantity: 5, Product: product}}, nil)

	out, err := service.AddItem(ctx, userID, product.ID, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), out.TotalCents)
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	cartRepo, productRepo, service := newCartFixture()

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: uuid.New(), PriceCents: 1000, Active: false}

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err := service.AddItem(ctx, userID, product.ID, 1)

	require.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	_, _, service := newCartFixture()

	_, err := service.AddItem(context.Background(), uuid.New(), uuid.New(), 0)

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_UpdateItem_ZeroRemovesLine(t *testing.T) {
	cartRepo, _, service := newCartFixture()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	cartRepo.On("Delete", ctx, userID, productID).Return(nil)
	cartRepo.On("ListByUserID", ctx, userID).Return([]*entity.CartItem{}, nil)

	out, err := service.UpdateItem(ctx, userID, productID, 0)

	require.NoError(t, err)
	assert.Empty(t, out.Items)
	cartRepo.AssertCalled(t, "Delete", ctx, userID, productID)
}

func TestCartService_UpdateItem_MissingLine(t *testing.T) {
	cartRepo, _, service := newCartFixture()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	cartRepo.On("FindByUserAndProduct", ctx, userID, productID).
		Return(nil, repository.ErrCartItemNotFound)

	_, err := service.UpdateItem(ctx, userID, productID, 2)

	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
