package usecase

import (
	"context"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductInput defines the data for creating or updating a catalog entry.
type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Active      bool
}

// CatalogUsecase defines the product catalog operations. Reads serve the
// public storefront; writes are restricted to admin accounts at the
// delivery layer.
type CatalogUsecase interface {
	// ListProducts returns active products for the public catalog, or every
	// product when includeInactive is set.
	ListProducts(ctx context.Context, includeInactive bool) ([]*entity.Product, error)

	// GetProduct returns one product by id.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// CreateProduct adds a catalog entry.
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// UpdateProduct replaces a catalog entry's attributes.
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)

	// DeleteProduct removes a catalog entry.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
