package usecase

import (
	"context"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the checkout and order history operations.
type OrderUsecase interface {
	// Checkout turns the user's cart into an order with frozen unit prices
	// and clears the cart in the same transaction.
	Checkout(ctx context.Context, userID uuid.UUID) (*entity.Order, error)

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder returns one of the user's orders by id.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// UpdateOrderStatus advances an order's status. Admin operation.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error
}
