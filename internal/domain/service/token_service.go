package service

import (
	"time"

	"endura/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the claims carried by a long-lived session token.
// A session token contains only the user id; it never carries second-factor
// state because it is only issued after any required factor is satisfied.
type SessionClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// PendingClaims are the claims carried by a short-lived pending auth token,
// representing "first factor satisfied, second factor outstanding". A pending
// token authorizes only the second-factor verify/resend endpoints.
type PendingClaims struct {
	UserID    uuid.UUID           `json:"uid"`
	Email     string              `json:"email"`
	Temporary bool                `json:"temporary"`
	Purpose   entity.TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies the signed credentials used across the
// authentication flow. Verification is pure computation; it performs no I/O.
type TokenService interface {
	// IssueSession signs a session token carrying only the user id.
	IssueSession(userID uuid.UUID) (string, error)

	// IssuePending signs a pending token for the given flow purpose.
	IssuePending(userID uuid.UUID, email string, purpose entity.TokenPurpose) (string, error)

	// VerifySession validates a session token. Expired and tampered tokens
	// both fail with the same session-expired condition.
	VerifySession(token string) (*SessionClaims, error)

	// VerifyPending validates a pending token and checks its purpose tag.
	VerifyPending(token string, purpose entity.TokenPurpose) (*PendingClaims, error)

	// SessionDuration returns the configured session token lifetime.
	SessionDuration() time.Duration

	// PendingDuration returns the configured pending token lifetime.
	PendingDuration() time.Duration
}
