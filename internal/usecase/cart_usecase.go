package usecase

import (
	"context"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// CartOutput is a user's cart with its computed total.
type CartOutput struct {
	Items      []*entity.CartItem
	TotalCents int64
}

// CartUsecase defines the cart mutation operations. A cart holds at most one
// line per product.
type CartUsecase interface {
	// GetCart returns the user's cart lines with products and total.
	GetCart(ctx context.Context, userID uuid.UUID) (*CartOutput, error)

	// AddItem adds quantity to the user's line for a product, creating the
	// line when absent.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartOutput, error)

	// UpdateItem sets the line quantity outright. Zero removes the line.
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartOutput, error)

	// RemoveItem deletes the user's line for a product.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartOutput, error)
}
