// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies an authentication provider.
type ProviderType = string

const (
	// ProviderTypeEmail is the local email/password credential.
	ProviderTypeEmail ProviderType = "email"
	// ProviderTypeGoogle is a federated Google identity.
	ProviderTypeGoogle ProviderType = "google"
)

// Authentication represents a single method of logging in (a credential).
// A user's email/password is one record, while a linked Google account is
// another. Every non-admin user holds at least one.
type Authentication struct {
	ID             uuid.UUID // The unique ID for this specific authentication record itself.
	UserID         uuid.UUID // Links this authentication method to the User it belongs to.
	Provider       string    // The authentication provider, e.g., "email", "google".
	ProviderUserID string    // The user's unique ID from the external provider (e.g., Google's 'sub' claim), or the email for the "email" provider.
	PasswordHash   string    // Stores the bcrypt-hashed password, only used when the Provider is "email".
	CreatedAt      time.Time // Timestamp of when this authentication method was linked to the user account.
}

// TokenPurpose tags a pending auth token with the flow it belongs to.
// A pending token authorizes only the second-factor verification and resend
// endpoints, never general API access.
type TokenPurpose string

const (
	// PurposeAdminAuth marks a pending token from the admin Google sign-in flow.
	PurposeAdminAuth TokenPurpose = "adminAuth"
	// PurposeGoogleAuth marks a pending token from the regular Google sign-in flow.
	PurposeGoogleAuth TokenPurpose = "googleAuth"
)

// IsValid checks if the TokenPurpose is a known value.
func (p TokenPurpose) IsValid() bool {
	switch p {
	case PurposeAdminAuth, PurposeGoogleAuth:
		return true
	default:
		return false
	}
}
