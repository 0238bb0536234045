// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	"strings"

	"endura/internal/domain/entity"
	"endura/internal/domain/repository"
	"endura/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUserID is the echo context key carrying the session's user id.
	ContextKeyUserID = "userID"
	// ContextKeyUser is the echo context key carrying the loaded user entity.
	ContextKeyUser = "user"
)

// AuthMiddleware validates bearer session tokens and enforces roles.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the bearer session token. Pending tokens are
// rejected here; they only authorize the second-factor endpoints, which
// accept them in the request body instead.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(401, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return echo.NewHTTPError(401, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.VerifySession(tokenString)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUserID, claims.UserID)

		return next(c)
	}
}

// RequireRole loads the session's user and checks its role. It must be used
// AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)
			if !ok {
				return echo.NewHTTPError(403, "Permission denied: session information missing")
			}

			user, err := m.userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(403, "Permission denied")
			}

			if user.Role != requiredRole {
				return echo.NewHTTPError(403, "Permission denied: require '"+requiredRole.String()+"' role")
			}

			c.Set(ContextKeyUser, user)

			return next(c)
		}
	}
}

// UserID extracts the authenticated user id set by Authenticate.
func UserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return userID, ok
}
