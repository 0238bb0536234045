package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderFixture() (*mockRepositoryFactory, *mockCartRepository, *mockOrderRepository, usecase.OrderUsecase) {
	factory := new(mockRepositoryFactory)
	cartRepo := new(mockCartRepository)
	orderRepo := new(mockOrderRepository)

	service := NewOrderService(OrderServiceParams{
		TxManager: &passthroughTxManager{factory: factory},
		OrderRepo: orderRepo,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return factory, cartRepo, orderRepo, service
}

func TestOrderService_Checkout_FreezesPricesAndClearsCart(t *testing.T) {
	factory, cartRepo, orderRepo, service := newOrderFixture()

	ctx := context.Background()
	userID := uuid.New()
	productA := &entity.Product{ID: uuid.New(), Name: "Trail Shell", PriceCents: 18900, Active: true}
	productB := &entity.Product{ID: uuid.New(), Name: "Base Layer", PriceCents: 4500, Active: true}
	items := []*entity.CartItem{
		{UserID: userID, ProductID: productA.ID, Quantity: 1, Product: productA},
		{UserID: userID, ProductID: productB.ID, Quantity: 2, Product: productB},
	}

	factory.On("CartRepo").Return(cartRepo)
	factory.On("OrderRepo").Return(orderRepo)
	cartRepo.On("ListByUserID", ctx, userID).Return(items, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = uuid.New()
		}).
		Return(nil)
	cartRepo.On("Clear", ctx, userID).Return(nil)

	order, err := service.Checkout(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, int64(18900+2*4500), order.TotalCents)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Trail Shell", order.Items[0].ProductName)
	assert.Equal(t, int64(18900), order.Items[0].UnitPriceCents)
	assert.Equal(t, int64(4500), order.Items[1].UnitPriceCents)
	cartRepo.AssertCalled(t, "Clear", ctx, userID)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	factory, cartRepo, orderRepo, service := newOrderFixture()

	ctx := context.Background()
	userID := uuid.New()

	factory.On("CartRepo").Return(cartRepo)
	factory.On("OrderRepo").Return(orderRepo)
	cartRepo.On("ListByUserID", ctx, userID).Return([]*entity.CartItem{}, nil)

	_, err := service.Checkout(ctx, userID)

	require.ErrorIs(t, err, domainerrors.ErrCartEmpty)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_GetOrder_OtherUsersOrderIsNotFound(t *testing.T) {
	_, _, orderRepo, service := newOrderFixture()

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, UserID: uuid.New()}

	orderRepo.On("FindByID", ctx, orderID).Return(order, nil)

	_, err := service.GetOrder(ctx, userID, orderID)

	require.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_UpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	_, _, orderRepo, service := newOrderFixture()

	err := service.UpdateOrderStatus(context.Background(), uuid.New(), entity.OrderStatus("refunded"))

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
