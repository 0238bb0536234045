// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TwoFactorMethod identifies the out-of-band channel used to deliver a
// second-factor code.
type TwoFactorMethod string

const (
	// TwoFactorMethodEmail delivers codes to the account's email address.
	TwoFactorMethodEmail TwoFactorMethod = "email"
)

// User is the core identity record. A user may authenticate through one or
// more Authentication credentials (email/password, Google) and may carry an
// ephemeral two-factor challenge while a login is in flight.
type User struct {
	ID       uuid.UUID // The unique identifier for this account.
	Email    string    // The user's primary email, matched case-insensitively at login.
	Name     string    // Display name.
	Role     Role      // "user" or "admin".
	Verified bool      // Whether the email address has been confirmed (federated sign-ins arrive verified).

	TwoFactorEnabled bool            // Whether password logins must pass a second factor.
	TwoFactorMethod  TwoFactorMethod // Delivery channel for second-factor codes.

	// The outstanding two-factor challenge, if any. The code and its expiry
	// are always set and cleared together, and are never serialized in API
	// responses.
	TwoFactorCode          *string
	TwoFactorCodeExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPendingChallenge reports whether a two-factor code is currently stored.
func (u *User) HasPendingChallenge() bool {
	return u.TwoFactorCode != nil && u.TwoFactorCodeExpiresAt != nil
}

// SetChallenge stores a new two-factor challenge, replacing any outstanding one.
func (u *User) SetChallenge(code string, expiresAt time.Time) {
	u.TwoFactorCode = &code
	u.TwoFactorCodeExpiresAt = &expiresAt
}

// ClearChallenge removes the stored two-factor challenge. Safe to call when
// no challenge is outstanding.
func (u *User) ClearChallenge() {
	u.TwoFactorCode = nil
	u.TwoFactorCodeExpiresAt = nil
}

// IsAdmin reports whether this account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
