package model

import (
	"time"

	"github.com/google/uuid"
)

// CollectibleModel mirrors the 'collectibles' table.
type CollectibleModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Tier        string    `gorm:"type:varchar(32);not null"`
	AssetURL    string    `gorm:"type:varchar(512)"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CollectibleModel) TableName() string {
	return "collectibles"
}

// VaultUnlockModel mirrors the 'vault_unlocks' table. One row per
// user/collectible pair.
type VaultUnlockModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vault_user_collectible"`
	CollectibleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vault_user_collectible"`
	Redeemed      bool      `gorm:"not null;default:false"`
	UnlockedAt    time.Time `gorm:"not null"`
	RedeemedAt    *time.Time

	Collectible *CollectibleModel `gorm:"foreignKey:CollectibleID"`
}

// TableName explicitly sets the table name for GORM.
func (VaultUnlockModel) TableName() string {
	return "vault_unlocks"
}
