// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for vault persistence.
var (
	// ErrCollectibleNotFound is returned when a collectible does not exist.
	ErrCollectibleNotFound = errors.New("collectible not found")
	// ErrUnlockNotFound is returned when a user has not unlocked a collectible.
	ErrUnlockNotFound = errors.New("vault unlock not found")
)

// CollectibleRepository defines the standard operations for vault persistence.
type CollectibleRepository interface {
	// ListCollectibles retrieves the full collectible catalog.
	ListCollectibles(ctx context.Context) ([]*entity.Collectible, error)

	// CreateCollectible persists a new collectible.
	CreateCollectible(ctx context.Context, collectible *entity.Collectible) error

	// ListUnlocksByUserID retrieves a user's unlocks with collectibles loaded.
	ListUnlocksByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.VaultUnlock, error)

	// FindUnlock retrieves one unlock for a user/collectible pair.
	FindUnlock(ctx context.Context, userID, collectibleID uuid.UUID) (*entity.VaultUnlock, error)

	// CreateUnlock persists a new unlock.
	CreateUnlock(ctx context.Context, unlock *entity.VaultUnlock) error

	// UpdateUnlock modifies an existing unlock (e.g. flips the redeemed flag).
	UpdateUnlock(ctx context.Context, unlock *entity.VaultUnlock) error
}
