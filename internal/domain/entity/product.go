// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a single catalog entry. Prices are stored in cents to avoid
// floating-point arithmetic on money.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Active      bool // Inactive products are hidden from the public catalog but keep their order history.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
