package service

import (
	"context"
)

// OAuthUser represents user information returned by the identity provider.
type OAuthUser struct {
	ID            string // Provider-specific user ID (Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	AvatarURL     string // URL to user's profile picture
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthState is the single-use state entry attached to an authorization
// round-trip. When the client pre-declares an admin login, the expected
// admin email rides along and is consumed together with the state.
type OAuthState struct {
	ExpectedAdminEmail string // Empty for regular sign-ins.
}

// OAuthService defines the server-side authorization-code flow against the
// federated identity provider.
type OAuthService interface {
	// BuildAuthorizationURL creates the provider redirect URL. The returned
	// state parameter is stored for later single-use validation; when
	// expectedAdminEmail is non-empty the callback must match it.
	BuildAuthorizationURL(expectedAdminEmail string) (authURL string, state string)

	// ConsumeState validates and removes a state parameter. The entry is
	// removed regardless of what the caller does next, so a stored admin
	// expectation can never be replayed against a different identity.
	ConsumeState(state string) (*OAuthState, bool)

	// ExchangeCodeForToken exchanges an authorization code for an access token.
	ExchangeCodeForToken(ctx context.Context, code string) (string, error)

	// GetUserInfo retrieves the provider's user record using an access token.
	GetUserInfo(ctx context.Context, accessToken string) (*OAuthUser, error)
}
