package handler

import (
	"log/slog"
	"net/http"

	"endura/internal/delivery/http/middleware"
	"endura/internal/delivery/http/response"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VaultHandler holds dependencies for the loyalty vault handlers.
type VaultHandler struct {
	uc     usecase.VaultUsecase
	logger *slog.Logger
}

// NewVaultHandler is the constructor for VaultHandler, injected by Fx.
func NewVaultHandler(uc usecase.VaultUsecase, logger *slog.Logger) *VaultHandler {
	return &VaultHandler{uc: uc, logger: logger}
}

// GetVault returns the user's unlocked collectibles.
func (h *VaultHandler) GetVault(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	unlocks, err := h.uc.GetVault(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newVaultUnlockViews(unlocks), "Vault retrieved successfully")
}

// Unlock grants the user a collectible.
func (h *VaultHandler) Unlock(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	collectibleID, err := uuid.Parse(c.Param("collectibleId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid collectible id")
	}

	unlock, err := h.uc.Unlock(c.Request().Context(), userID, collectibleID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newVaultUnlockView(unlock), "Collectible unlocked")
}

// Redeem flips an unlock's redeemed flag exactly once.
func (h *VaultHandler) Redeem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	collectibleID, err := uuid.Parse(c.Param("collectibleId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid collectible id")
	}

	unlock, err := h.uc.Redeem(c.Request().Context(), userID, collectibleID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newVaultUnlockView(unlock), "Collectible redeemed")
}
