// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"endura/internal/domain/entity"
	"endura/internal/usecase"

	"github.com/google/uuid"
)

// userView is the API shape of an account. The stored two-factor challenge
// never leaves the server, so it has no field here.
type userView struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Verified         bool      `json:"verified"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
	CreatedAt        time.Time `json:"createdAt"`
}

func newUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Role:             user.Role.String(),
		Verified:         user.Verified,
		TwoFactorEnabled: user.TwoFactorEnabled,
		CreatedAt:        user.CreatedAt,
	}
}

type productView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	ImageURL    string    `json:"imageUrl"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newProductView(product *entity.Product) *productView {
	if product == nil {
		return nil
	}

	return &productView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func newProductViews(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, product := range products {
		views = append(views, newProductView(product))
	}

	return views
}

type cartItemView struct {
	ProductID     uuid.UUID    `json:"productId"`
	Quantity      int          `json:"quantity"`
	SubtotalCents int64        `json:"subtotalCents"`
	Product       *productView `json:"product,omitempty"`
}

type cartView struct {
	Items      []*cartItemView `json:"items"`
	TotalCents int64           `json:"totalCents"`
}

func newCartView(cart *usecase.CartOutput) *cartView {
	items := make([]*cartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, &cartItemView{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			SubtotalCents: item.Subtotal(),
			Product:       newProductView(item.Product),
		})
	}

	return &cartView{Items: items, TotalCents: cart.TotalCents}
}

type orderItemView struct {
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	SubtotalCents  int64     `json:"subtotalCents"`
}

type orderView struct {
	ID         uuid.UUID        `json:"id"`
	Status     string           `json:"status"`
	TotalCents int64            `json:"totalCents"`
	Items      []*orderItemView `json:"items"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func newOrderView(order *entity.Order) *orderView {
	items := make([]*orderItemView, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, &orderItemView{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			SubtotalCents:  item.Subtotal(),
		})
	}

	return &orderView{
		ID:         order.ID,
		Status:     string(order.Status),
		TotalCents: order.TotalCents,
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}

func newOrderViews(orders []*entity.Order) []*orderView {
	views := make([]*orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}

	return views
}

type collectibleView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tier        string    `json:"tier"`
	AssetURL    string    `json:"assetUrl"`
}

type vaultUnlockView struct {
	CollectibleID uuid.UUID        `json:"collectibleId"`
	Redeemed      bool             `json:"redeemed"`
	UnlockedAt    time.Time        `json:"unlockedAt"`
	RedeemedAt    *time.Time       `json:"redeemedAt,omitempty"`
	Collectible   *collectibleView `json:"collectible,omitempty"`
}

func newVaultUnlockView(unlock *entity.VaultUnlock) *vaultUnlockView {
	view := &vaultUnlockView{
		CollectibleID: unlock.CollectibleID,
		Redeemed:      unlock.Redeemed,
		UnlockedAt:    unlock.UnlockedAt,
		RedeemedAt:    unlock.RedeemedAt,
	}
	if unlock.Collectible != nil {
		view.Collectible = &collectibleView{
			ID:          unlock.Collectible.ID,
			Name:        unlock.Collectible.Name,
			Description: unlock.Collectible.Description,
			Tier:        unlock.Collectible.Tier,
			AssetURL:    unlock.Collectible.AssetURL,
		}
	}

	return view
}

func newVaultUnlockViews(unlocks []*entity.VaultUnlock) []*vaultUnlockView {
	views := make([]*vaultUnlockView, 0, len(unlocks))
	for _, unlock := range unlocks {
		views = append(views, newVaultUnlockView(unlock))
	}

	return views
}
