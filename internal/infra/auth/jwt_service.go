// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"endura/config"
	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/domain/service"
)

const (
	defaultSessionTTL = 30 * 24 * time.Hour
	defaultPendingTTL = 10 * time.Minute
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// One server-held secret signs both token kinds; the claim shape tells them apart.
type jwtService struct {
	secret     string
	sessionTTL time.Duration
	pendingTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("jwt session secret must be provided")
	}

	sessionTTL := defaultSessionTTL
	pendingTTL := defaultPendingTTL
	if cfg.Auth != nil {
		if cfg.Auth.SessionTTL > 0 {
			sessionTTL = cfg.Auth.SessionTTL
		}
		if cfg.Auth.PendingTTL > 0 {
			pendingTTL = cfg.Auth.PendingTTL
		}
	}

	return &jwtService{
		secret:     cfg.SecretKey.Session,
		sessionTTL: sessionTTL,
		pendingTTL: pendingTTL,
	}, nil
}

// IssueSession signs a long-lived credential carrying only the user id.
func (s *jwtService) IssueSession(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &service.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// IssuePending signs a short-lived credential marking "first factor satisfied,
// second factor outstanding" for the given flow purpose.
func (s *jwtService) IssuePending(userID uuid.UUID, email string, purpose entity.TokenPurpose) (string, error) {
	if !purpose.IsValid() {
		return "", errors.Errorf("unknown pending token purpose: %s", purpose)
	}

	now := time.Now()
	claims := &service.PendingClaims{
		UserID:    userID,
		Email:     email,
		Temporary: true,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.pendingTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// VerifySession validates a session token. Bad signature and elapsed expiry
// surface as the same session-expired condition so the response never leaks
// which check failed.
func (s *jwtService) VerifySession(tokenString string) (*service.SessionClaims, error) {
	// Pending tokens share the secret, so the temporary marker must be
	// checked here: a pending token never grants general API access.
	var probe service.PendingClaims
	if _, err := jwt.ParseWithClaims(tokenString, &probe, s.keyFunc); err != nil {
		return nil, domainerrors.ErrSessionExpired.WrapMessage("session token rejected")
	}
	if probe.Temporary {
		return nil, domainerrors.ErrSessionExpired.WrapMessage("pending token used as session token")
	}

	return &service.SessionClaims{
		UserID:           probe.UserID,
		RegisteredClaims: probe.RegisteredClaims,
	}, nil
}

// VerifyPending validates a pending token and its purpose tag. Any failure
// means the client must restart the login flow from the beginning.
func (s *jwtService) VerifyPending(tokenString string, purpose entity.TokenPurpose) (*service.PendingClaims, error) {
	claims := &service.PendingClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return nil, domainerrors.ErrSessionExpired.WrapMessage("pending token rejected")
	}

	if !claims.Temporary || claims.Purpose != purpose {
		return nil, domainerrors.ErrSessionExpired.WrapMessage("pending token purpose mismatch")
	}

	return claims, nil
}

// SessionDuration returns the configured session token lifetime.
func (s *jwtService) SessionDuration() time.Duration {
	return s.sessionTTL
}

// PendingDuration returns the configured pending token lifetime.
func (s *jwtService) PendingDuration() time.Duration {
	return s.pendingTTL
}

// keyFunc ensures the signing method is the expected HMAC family.
func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return []byte(s.secret), nil
}
