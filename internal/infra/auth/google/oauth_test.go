package google

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"endura/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *OAuthService {
	t.Helper()

	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost:8080/auth/google/callback",
			Scopes:       "openid email profile",
		},
	}

	svc, ok := NewOAuthService(cfg).(*OAuthService)
	require.True(t, ok)

	return svc
}

func TestBuildAuthorizationURL(t *testing.T) {
	svc := newTestService(t)

	authURL, state := svc.BuildAuthorizationURL("")
	require.NotEmpty(t, state)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, state, query.Get("state"))
	assert.Empty(t, query.Get("login_hint"))
	assert.True(t, strings.HasPrefix(authURL, "https://accounts.google.com/"))
}

func TestBuildAuthorizationURL_AdminExpectation(t *testing.T) {
	svc := newTestService(t)

	authURL, state := svc.BuildAuthorizationURL("Admin@Example.com")

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "Admin@Example.com", parsed.Query().Get("login_hint"))

	entry, ok := svc.ConsumeState(state)
	require.True(t, ok)
	// The expectation is stored normalized for case-insensitive matching.
	assert.Equal(t, "admin@example.com", entry.ExpectedAdminEmail)
}

func TestConsumeState_SingleUse(t *testing.T) {
	svc := newTestService(t)

	_, state := svc.BuildAuthorizationURL("admin@example.com")

	_, ok := svc.ConsumeState(state)
	require.True(t, ok)

	// A second consume must fail: the admin expectation is single-use.
	_, ok = svc.ConsumeState(state)
	assert.False(t, ok)
}

func TestConsumeState_UnknownState(t *testing.T) {
	svc := newTestService(t)

	_, ok := svc.ConsumeState("never-issued")
	assert.False(t, ok)
}

func TestConsumeState_Expired(t *testing.T) {
	svc := newTestService(t)

	_, state := svc.BuildAuthorizationURL("")

	svc.stateMutex.Lock()
	entry := svc.stateStore[state]
	entry.expiresAt = time.Now().Add(-time.Minute)
	svc.stateStore[state] = entry
	svc.stateMutex.Unlock()

	_, ok := svc.ConsumeState(state)
	assert.False(t, ok)
}
