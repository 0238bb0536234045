package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"endura/config"
	"endura/internal/delivery/http/validator"
	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *mockAuthUsecase) AdminCheck(ctx context.Context, input *usecase.AdminCheckInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockAuthUsecase) GoogleAuthURL(ctx context.Context, expectedAdminEmail string) (string, error) {
	args := m.Called(ctx, expectedAdminEmail)

	return args.String(0), args.Error(1)
}

func (m *mockAuthUsecase) GoogleCallback(ctx context.Context, input *usecase.GoogleCallbackInput) (*usecase.GoogleCallbackOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.GoogleCallbackOutput), args.Error(1)
}

func (m *mockAuthUsecase) VerifyGoogleTwoFactor(ctx context.Context, input *usecase.VerifyTwoFactorInput) (*usecase.VerifyTwoFactorOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.VerifyTwoFactorOutput), args.Error(1)
}

func (m *mockAuthUsecase) VerifyAdminTwoFactor(ctx context.Context, input *usecase.VerifyTwoFactorInput) (*usecase.VerifyTwoFactorOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.VerifyTwoFactorOutput), args.Error(1)
}

func (m *mockAuthUsecase) ResendAdminTwoFactor(ctx context.Context, input *usecase.ResendTwoFactorInput) (*usecase.ResendTwoFactorOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ResendTwoFactorOutput), args.Error(1)
}

func (m *mockAuthUsecase) ToggleTwoFactor(ctx context.Context, userID uuid.UUID) (*usecase.ToggleTwoFactorOutput, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ToggleTwoFactorOutput), args.Error(1)
}

func (m *mockAuthUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func newCallbackContext(t *testing.T, state, code string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state="+state+"&code="+code, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	cfg := &config.Config{Client: &config.ClientConfig{BaseURL: "https://shop.endura.dev"}}

	return NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func redirectQuery(t *testing.T, rec *httptest.ResponseRecorder) (string, url.Values) {
	t.Helper()

	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)

	return location.Scheme + "://" + location.Host + location.Path, location.Query()
}

func TestGoogleCallback_SessionTokenRedirect(t *testing.T) {
	uc := new(mockAuthUsecase)
	uc.On("GoogleCallback", mock.Anything, &usecase.GoogleCallbackInput{State: "s1", Code: "c1"}).
		Return(&usecase.GoogleCallbackOutput{SessionToken: "session-token"}, nil)

	c, rec := newCallbackContext(t, "s1", "c1")
	require.NoError(t, newAuthHandler(uc).GoogleCallback(c))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	base, query := redirectQuery(t, rec)
	assert.Equal(t, "https://shop.endura.dev/auth/callback", base)
	assert.Equal(t, "session-token", query.Get("token"))
	assert.Empty(t, query.Get("pendingToken"))
}

func TestGoogleCallback_PendingTokenRedirectCarriesPurpose(t *testing.T) {
	uc := new(mockAuthUsecase)
	uc.On("GoogleCallback", mock.Anything, mock.Anything).
		Return(&usecase.GoogleCallbackOutput{
			PendingToken: "pending-token",
			Purpose:      entity.PurposeAdminAuth,
		}, nil)

	c, rec := newCallbackContext(t, "s1", "c1")
	require.NoError(t, newAuthHandler(uc).GoogleCallback(c))

	_, query := redirectQuery(t, rec)
	assert.Equal(t, "pending-token", query.Get("pendingToken"))
	assert.Equal(t, string(entity.PurposeAdminAuth), query.Get("purpose"))
	assert.Empty(t, query.Get("token"))
}

func TestGoogleCallback_EmailMismatchRedirect(t *testing.T) {
	uc := new(mockAuthUsecase)
	uc.On("GoogleCallback", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrEmailMismatch.WrapMessage("google callback"))

	c, rec := newCallbackContext(t, "s1", "c1")
	require.NoError(t, newAuthHandler(uc).GoogleCallback(c))

	_, query := redirectQuery(t, rec)
	assert.Equal(t, domainerrors.ErrEmailMismatch.ErrorCode(), query.Get("error"))
	assert.Empty(t, query.Get("token"))
	assert.Empty(t, query.Get("pendingToken"))
}

func TestGoogleCallback_NotAdminRedirect(t *testing.T) {
	uc := new(mockAuthUsecase)
	uc.On("GoogleCallback", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrNotAdmin.WrapMessage("google callback"))

	c, rec := newCallbackContext(t, "s1", "c1")
	require.NoError(t, newAuthHandler(uc).GoogleCallback(c))

	_, query := redirectQuery(t, rec)
	assert.Equal(t, domainerrors.ErrNotAdmin.ErrorCode(), query.Get("error"))
}

func TestGoogleCallback_UnknownFailureCollapsesToGenericCode(t *testing.T) {
	uc := new(mockAuthUsecase)
	uc.On("GoogleCallback", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrOAuthFailed.WrapMessage("state validation"))

	c, rec := newCallbackContext(t, "bad-state", "c1")
	require.NoError(t, newAuthHandler(uc).GoogleCallback(c))

	_, query := redirectQuery(t, rec)
	assert.Equal(t, "oauth_failed", query.Get("error"))
}

func TestGoogleLogin_PassesLoginHint(t *testing.T) {
	uc := new(mockAuthUsecase)
	uc.On("GoogleAuthURL", mock.Anything, "admin@endura.dev").
		Return("https://accounts.google.com/o/oauth2/v2/auth?state=s1", nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/google?login_hint=admin%40endura.dev", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, newAuthHandler(uc).GoogleLogin(c))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "accounts.google.com")
	uc.AssertExpectations(t)
}
