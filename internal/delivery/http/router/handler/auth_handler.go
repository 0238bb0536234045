package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"endura/config"
	"endura/internal/delivery/http/middleware"
	"endura/internal/delivery/http/response"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication handlers.
type AuthHandler struct {
	uc            usecase.AuthUsecase
	logger        *slog.Logger
	clientBaseURL string
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger, cfg *config.Config) *AuthHandler {
	clientBaseURL := ""
	if cfg.Client != nil {
		clientBaseURL = cfg.Client.BaseURL
	}

	return &AuthHandler{
		uc:            uc,
		logger:        logger,
		clientBaseURL: clientBaseURL,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	TwoFactorCode string `json:"twoFactorCode"`
}

type adminCheckRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyTwoFactorRequest struct {
	TempToken     string `json:"tempToken" validate:"required"`
	TwoFactorCode string `json:"twoFactorCode" validate:"required"`
}

type resendTwoFactorRequest struct {
	TempToken string `json:"tempToken" validate:"required"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"token": output.Token,
		"user":  newUserView(output.User),
	}, "User registered successfully")
}

// Login handles the password login request, including the optional
// second-factor resubmission over the same endpoint.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:         req.Email,
		Password:      req.Password,
		TwoFactorCode: req.TwoFactorCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if output.RequiresTwoFactor {
		return response.Success(c, http.StatusOK, map[string]any{
			"requiresTwoFactor": true,
		}, "Two-factor code sent")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token": output.Token,
		"user":  newUserView(output.User),
	}, "Login successful")
}

// AdminCheck confirms an email belongs to an admin account before the client
// starts the Google flow.
func (h *AuthHandler) AdminCheck(c echo.Context) error {
	var req adminCheckRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid admin check input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.AdminCheck(c.Request().Context(), &usecase.AdminCheckInput{Email: req.Email}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Admin account confirmed")
}

// GoogleLogin redirects the client to the identity provider. A login_hint
// query parameter declares the expected admin email for the admin sub-flow;
// its absence leaves the flow a regular sign-in.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	expectedAdminEmail := c.QueryParam("login_hint")

	oauthURL, err := h.uc.GoogleAuthURL(c.Request().Context(), expectedAdminEmail)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, oauthURL)
}

// GoogleCallback handles the provider's redirect. The outcome always travels
// back to the client as a browser redirect, never as a JSON body, because the
// user agent arrives here from the provider.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	input := &usecase.GoogleCallbackInput{
		State: c.QueryParam("state"),
		Code:  c.QueryParam("code"),
	}

	output, err := h.uc.GoogleCallback(c.Request().Context(), input)
	if err != nil {
		return c.Redirect(http.StatusTemporaryRedirect, h.clientRedirect(url.Values{
			"error": []string{callbackErrorCode(err)},
		}))
	}

	if output.PendingToken != "" {
		return c.Redirect(http.StatusTemporaryRedirect, h.clientRedirect(url.Values{
			"pendingToken": []string{output.PendingToken},
			"purpose":      []string{string(output.Purpose)},
		}))
	}

	return c.Redirect(http.StatusTemporaryRedirect, h.clientRedirect(url.Values{
		"token": []string{output.SessionToken},
	}))
}

// clientRedirect builds the frontend callback URL with the given query.
func (h *AuthHandler) clientRedirect(query url.Values) string {
	return h.clientBaseURL + "/auth/callback?" + query.Encode()
}

// callbackErrorCode maps a callback failure onto the code the client screens
// switch on. Anything unexpected collapses to a generic provider failure.
func callbackErrorCode(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.ErrorCode() {
		case domainerrors.ErrEmailMismatch.ErrorCode(), domainerrors.ErrNotAdmin.ErrorCode():
			return appErr.ErrorCode()
		}
	}

	return "oauth_failed"
}

// VerifyGoogleTwoFactor finishes a regular federated login.
func (h *AuthHandler) VerifyGoogleTwoFactor(c echo.Context) error {
	return h.verifyTwoFactor(c, h.uc.VerifyGoogleTwoFactor)
}

// VerifyAdminTwoFactor finishes an admin federated login.
func (h *AuthHandler) VerifyAdminTwoFactor(c echo.Context) error {
	return h.verifyTwoFactor(c, h.uc.VerifyAdminTwoFactor)
}

func (h *AuthHandler) verifyTwoFactor(c echo.Context, verify func(ctx context.Context, input *usecase.VerifyTwoFactorInput) (*usecase.VerifyTwoFactorOutput, error)) error {
	var req verifyTwoFactorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := verify(c.Request().Context(), &usecase.VerifyTwoFactorInput{
		TempToken:     req.TempToken,
		TwoFactorCode: req.TwoFactorCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token": output.Token,
		"user":  newUserView(output.User),
	}, "Two-factor verification successful")
}

// ResendAdminTwoFactor reissues the admin code and mints a fresh pending token.
func (h *AuthHandler) ResendAdminTwoFactor(c echo.Context) error {
	var req resendTwoFactorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resend input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ResendAdminTwoFactor(c.Request().Context(), &usecase.ResendTwoFactorInput{
		TempToken: req.TempToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"tempToken": output.TempToken,
	}, "Two-factor code resent")
}

// ToggleTwoFactor flips the authenticated account's second-factor flag.
func (h *AuthHandler) ToggleTwoFactor(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.uc.ToggleTwoFactor(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"twoFactorEnabled": output.TwoFactorEnabled,
	}, "Two-factor setting updated")
}

// GetProfile returns the authenticated account.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
