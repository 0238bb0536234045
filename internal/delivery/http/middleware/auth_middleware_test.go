package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"endura/config"
	"endura/internal/domain/entity"
	infraauth "endura/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticUserRepo serves a fixed set of users for role checks.
type staticUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *staticUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, assert.AnError
	}

	return user, nil
}

func (r *staticUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, assert.AnError
}

func (r *staticUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *staticUserRepo) Update(context.Context, *entity.User) error { return nil }
func (r *staticUserRepo) Delete(context.Context, uuid.UUID) error    { return nil }

func newAuthFixture(t *testing.T) (*AuthMiddleware, uuid.UUID, uuid.UUID, string, string) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = "test-secret"
	tokenSvc, err := infraauth.NewJWTService(cfg)
	require.NoError(t, err)

	adminID := uuid.New()
	shopperID := uuid.New()
	repo := &staticUserRepo{users: map[uuid.UUID]*entity.User{
		adminID:   {ID: adminID, Email: "admin@endura.dev", Role: entity.RoleAdmin},
		shopperID: {ID: shopperID, Email: "shopper@endura.dev", Role: entity.RoleUser},
	}}

	adminToken, err := tokenSvc.IssueSession(adminID)
	require.NoError(t, err)
	shopperToken, err := tokenSvc.IssueSession(shopperID)
	require.NoError(t, err)

	return NewAuthMiddleware(tokenSvc, repo), adminID, shopperID, adminToken, shopperToken
}

func doRequest(mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return rec, handler(c)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw, _, _, _, _ := newAuthFixture(t)

	_, err := doRequest(mw.Authenticate, "")
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	mw, _, _, adminToken, _ := newAuthFixture(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", adminToken) // no Bearer prefix
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var httpErr *echo.HTTPError
	require.ErrorAs(t, handler(c), &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthenticate_ValidSessionSetsUserID(t *testing.T) {
	mw, adminID, _, adminToken, _ := newAuthFixture(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw.Authenticate(func(c echo.Context) error {
		gotID, ok := UserID(c)
		require.True(t, ok)
		assert.Equal(t, adminID, gotID)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_TamperedTokenRejected(t *testing.T) {
	mw, _, _, adminToken, _ := newAuthFixture(t)

	_, err := doRequest(mw.Authenticate, adminToken+"x")
	require.Error(t, err)
}

func TestAuthenticate_PendingTokenRejected(t *testing.T) {
	mw, adminID, _, _, _ := newAuthFixture(t)

	cfg := &config.Config{}
	cfg.SecretKey.Session = "test-secret"
	tokenSvc, err := infraauth.NewJWTService(cfg)
	require.NoError(t, err)

	pending, err := tokenSvc.IssuePending(adminID, "admin@endura.dev", entity.PurposeAdminAuth)
	require.NoError(t, err)

	_, err = doRequest(mw.Authenticate, pending)
	require.Error(t, err)
}

func TestRequireRole_AdminPasses(t *testing.T) {
	mw, _, _, adminToken, _ := newAuthFixture(t)

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return mw.Authenticate(mw.RequireRole(entity.RoleAdmin)(next))
	}

	rec, err := doRequest(chain, adminToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_ShopperForbidden(t *testing.T) {
	mw, _, _, _, shopperToken := newAuthFixture(t)

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return mw.Authenticate(mw.RequireRole(entity.RoleAdmin)(next))
	}

	_, err := doRequest(chain, shopperToken)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireRole_WithoutAuthenticateForbidden(t *testing.T) {
	mw, _, _, _, _ := newAuthFixture(t)

	_, err := doRequest(mw.RequireRole(entity.RoleAdmin), "")
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}
