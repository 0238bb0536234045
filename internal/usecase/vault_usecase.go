package usecase

import (
	"context"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// VaultUsecase defines the loyalty vault operations: listing a user's
// unlocked collectibles and redeeming each exactly once.
type VaultUsecase interface {
	// GetVault returns the user's unlocks with collectibles loaded.
	GetVault(ctx context.Context, userID uuid.UUID) ([]*entity.VaultUnlock, error)

	// Unlock grants the user a collectible. Granting twice is a conflict.
	Unlock(ctx context.Context, userID, collectibleID uuid.UUID) (*entity.VaultUnlock, error)

	// Redeem flips an unlock's redeemed flag exactly once; a second attempt
	// fails with the already-redeemed conflict.
	Redeem(ctx context.Context, userID, collectibleID uuid.UUID) (*entity.VaultUnlock, error)
}
