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

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's cart lines with the computed total.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	return srv.loadCart(ctx, userID)
}

// AddItem adds quantity to the user's line for a product, creating the line
// when absent. The product must exist and be active.
func (srv *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*usecase.CartOutput, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product for cart add")
	}
	if !product.Active {
		return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product is not available")
	}

	existing, err := srv.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, errors.Wrap(err, "failed to check existing cart line")
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}

	item := &entity.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  newQuantity,
	}
	if err := srv.cartRepo.Upsert(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to upsert cart line")
	}

	srv.log(ctx).Debug("Cart line added",
		slog.Any("userID", userID),
		slog.Any("productID", productID),
		slog.Int("quantity", newQuantity))

	return srv.loadCart(ctx, userID)
}

// UpdateItem sets the line quantity outright. Zero removes the line.
func (srv *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*usecase.CartOutput, error) {
	if quantity < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must not be negative")
	}

	if quantity == 0 {
		return srv.RemoveItem(ctx, userID, productID)
	}

	if _, err := srv.cartRepo.FindByUserAndProduct(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "cart line not found")
		}

		return nil, errors.Wrap(err, "failed to find cart line for update")
	}

	item := &entity.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := srv.cartRepo.Upsert(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to update cart line")
	}

	return srv.loadCart(ctx, userID)
}

// RemoveItem deletes the user's line for a product.
func (srv *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*usecase.CartOutput, error) {
	if err := srv.cartRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "cart line not found")
		}

		return nil, errors.Wrap(err, "failed to delete cart line")
	}

	return srv.loadCart(ctx, userID)
}

func (srv *cartService) loadCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	items, err := srv.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}

	return &usecase.CartOutput{Items: items, TotalCents: total}, nil
}
