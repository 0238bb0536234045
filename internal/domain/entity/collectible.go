// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Collectible is a digital vault item that can be unlocked through loyalty
// milestones and redeemed once.
type Collectible struct {
	ID          uuid.UUID
	Name        string
	Description string
	Tier        string // e.g. "bronze", "silver", "gold".
	AssetURL    string
	CreatedAt   time.Time
}

// VaultUnlock records that a user has unlocked a collectible. Redemption
// flips the flag exactly once; a second redeem attempt is a conflict.
type VaultUnlock struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CollectibleID uuid.UUID
	Redeemed      bool
	UnlockedAt    time.Time
	RedeemedAt    *time.Time
	Collectible   *Collectible // Loaded for reads; nil on writes.
}
