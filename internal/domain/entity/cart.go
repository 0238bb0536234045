// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a user's cart. A user has at most one line per
// product; adding the same product again adjusts the quantity.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Product   *Product // Loaded for reads; nil on writes.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal returns the line total in cents, or 0 when the product is not loaded.
func (ci *CartItem) Subtotal() int64 {
	if ci.Product == nil {
		return 0
	}

	return ci.Product.PriceCents * int64(ci.Quantity)
}
