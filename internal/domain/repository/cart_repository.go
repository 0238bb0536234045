// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartItemNotFound is returned when a cart line does not exist.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines the standard operations for cart persistence.
type CartRepository interface {
	// ListByUserID retrieves the user's cart lines with products loaded.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)

	// FindByUserAndProduct retrieves one cart line for a user/product pair.
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)

	// Upsert creates the line, or replaces the quantity when one already exists.
	Upsert(ctx context.Context, item *entity.CartItem) error

	// Delete removes one cart line.
	Delete(ctx context.Context, userID, productID uuid.UUID) error

	// Clear removes every cart line for a user.
	Clear(ctx context.Context, userID uuid.UUID) error
}
