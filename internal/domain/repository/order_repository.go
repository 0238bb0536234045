// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUserID retrieves a user's orders, newest first, with items.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus advances an order's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
