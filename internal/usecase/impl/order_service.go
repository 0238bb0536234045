package impl

import (
	"context"
	"log/slog"

	deliverycontext "endura/internal/delivery/context"
	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/domain/repository"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout turns the cart into an order and clears the cart in one
// transaction. Unit prices are frozen on the order items, so later catalog
// edits never rewrite order history.
func (srv *orderService) Checkout(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	srv.log(ctx).Info("Starting checkout", slog.Any("userID", userID))

	var createdOrder *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		orderRepo := repoFactory.OrderRepo()

		items, err := cartRepo.ListByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to load cart for checkout")
		}
		if len(items) == 0 {
			return errors.Wrap(domainerrors.ErrCartEmpty, "checkout with empty cart")
		}

		order := &entity.Order{
			UserID: userID,
			Status: entity.OrderStatusPending,
		}
		for _, item := range items {
			if item.Product == nil {
				return errors.Wrap(domainerrors.ErrProductNotFound, "cart line references missing product")
			}

			order.Items = append(order.Items, entity.OrderItem{
				ProductID:      item.ProductID,
				ProductName:    item.Product.Name,
				UnitPriceCents: item.Product.PriceCents,
				Quantity:       item.Quantity,
			})
			order.TotalCents += item.Subtotal()
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if err := cartRepo.Clear(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart after checkout")
		}

		createdOrder = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Checkout failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute checkout transaction")
	}

	srv.log(ctx).Info("Checkout completed",
		slog.Any("userID", userID),
		slog.Any("orderID", createdOrder.ID),
		slog.Int64("totalCents", createdOrder.TotalCents))

	return createdOrder, nil
}

// ListOrders returns the user's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one of the user's orders. Another user's order is
// reported as not found rather than forbidden.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order belongs to another user")
	}

	return order, nil
}

// UpdateOrderStatus advances an order's status. Admin operation.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", orderID), slog.String("status", string(status)))

	return nil
}
