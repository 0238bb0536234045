// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email    string    `gorm:"type:varchar(255);unique;not null"`
	Name     string    `gorm:"type:varchar(100)"`
	Role     string    `gorm:"type:varchar(20);not null;default:'user'"`
	Verified bool      `gorm:"not null;default:false"`

	TwoFactorEnabled bool   `gorm:"not null;default:false"`
	TwoFactorMethod  string `gorm:"type:varchar(20);not null;default:'email'"`

	// The outstanding two-factor challenge; both columns are nil together.
	TwoFactorCode          *string `gorm:"type:varchar(12)"`
	TwoFactorCodeExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
