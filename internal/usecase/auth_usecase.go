// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"endura/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a password login. TwoFactorCode is
// empty on the first call; accounts with a second factor resubmit with the
// delivered code over the same operation.
type LoginInput struct {
	Email         string
	Password      string
	TwoFactorCode string
}

// AdminCheckInput defines the data for the pre-flight admin email check.
type AdminCheckInput struct {
	Email string
}

// GoogleCallbackInput carries the provider's redirect parameters.
type GoogleCallbackInput struct {
	State string
	Code  string
}

// VerifyTwoFactorInput carries a pending token plus the delivered code.
type VerifyTwoFactorInput struct {
	TempToken     string
	TwoFactorCode string
}

// ResendTwoFactorInput carries the pending token to refresh.
type ResendTwoFactorInput struct {
	TempToken string
}

// --- Output DTOs ---

// RegisterOutput returns the new account and its first session token.
type RegisterOutput struct {
	Token string
	User  *entity.User
}

// LoginOutput is the password login result. Exactly one of Token or
// RequiresTwoFactor is meaningful: a challenged login carries no token.
type LoginOutput struct {
	Token             string
	RequiresTwoFactor bool
	User              *entity.User
}

// GoogleCallbackOutput is the federated login result. A finished login
// carries SessionToken; a login awaiting its second factor carries
// PendingToken and the purpose tag the client must verify against.
type GoogleCallbackOutput struct {
	SessionToken string
	PendingToken string
	Purpose      entity.TokenPurpose
	User         *entity.User
}

// VerifyTwoFactorOutput returns the session token minted after a successful
// second-factor check.
type VerifyTwoFactorOutput struct {
	Token string
	User  *entity.User
}

// ResendTwoFactorOutput returns a fresh pending token whose validity window
// restarts at the resend call.
type ResendTwoFactorOutput struct {
	TempToken string
}

// ToggleTwoFactorOutput reports the flag's new state.
type ToggleTwoFactorOutput struct {
	TwoFactorEnabled bool
}

// AuthUsecase defines the authentication and session issuance operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates an account with an email credential and logs it in.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login runs the password path, including the optional second-factor
	// round-trip over the same operation.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// AdminCheck confirms an email belongs to an admin account before the
	// client redirects to the identity provider.
	AdminCheck(ctx context.Context, input *AdminCheckInput) error

	// GoogleAuthURL builds the provider redirect. A non-empty
	// expectedAdminEmail arms the single-use admin sub-flow.
	GoogleAuthURL(ctx context.Context, expectedAdminEmail string) (string, error)

	// GoogleCallback resolves the provider identity to a local account and
	// either finishes the login or hands back a pending token for the
	// second factor.
	GoogleCallback(ctx context.Context, input *GoogleCallbackInput) (*GoogleCallbackOutput, error)

	// VerifyGoogleTwoFactor finishes a regular federated login.
	VerifyGoogleTwoFactor(ctx context.Context, input *VerifyTwoFactorInput) (*VerifyTwoFactorOutput, error)

	// VerifyAdminTwoFactor finishes an admin federated login.
	VerifyAdminTwoFactor(ctx context.Context, input *VerifyTwoFactorInput) (*VerifyTwoFactorOutput, error)

	// ResendAdminTwoFactor reissues the code and mints a fresh pending token.
	ResendAdminTwoFactor(ctx context.Context, input *ResendTwoFactorInput) (*ResendTwoFactorOutput, error)

	// ToggleTwoFactor flips the account's second-factor flag.
	ToggleTwoFactor(ctx context.Context, userID uuid.UUID) (*ToggleTwoFactorOutput, error)

	// GetProfile returns the account backing a session.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
