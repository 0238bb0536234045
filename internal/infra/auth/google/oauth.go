// Package google implements the federated identity provider client.
package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"endura/config"
	"endura/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	googleOAuthURL    = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// stateTTL bounds how long an authorization round-trip may take.
	stateTTL = 10 * time.Minute
)

// stateEntry is one outstanding authorization round-trip. When the client
// pre-declared an admin login, the expected email rides along and is consumed
// together with the state, which makes the expectation single-use.
type stateEntry struct {
	expiresAt          time.Time
	expectedAdminEmail string
}

// OAuthService handles the Google authorization-code flow.
type OAuthService struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string
	client       *http.Client

	// State storage for CSRF protection and the admin-login expectation.
	stateStore map[string]stateEntry
	stateMutex sync.Mutex
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config) service.OAuthService {
	oauth := cfg.GoogleOAuth
	if oauth == nil {
		oauth = &config.GoogleOAuthConfig{}
	}

	return &OAuthService{
		clientID:     oauth.ClientID,
		clientSecret: oauth.ClientSecret,
		redirectURI:  oauth.RedirectURI,
		scopes:       oauth.Scopes,
		client:       &http.Client{Timeout: 15 * time.Second},
		stateStore:   make(map[string]stateEntry),
	}
}

// generateState generates a cryptographically secure random state string
func (s *OAuthService) generateState() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// BuildAuthorizationURL constructs the Google OAuth authorization URL with a
// state parameter for CSRF protection. A non-empty expectedAdminEmail arms
// the admin sub-flow for this round-trip only.
func (s *OAuthService) BuildAuthorizationURL(expectedAdminEmail string) (string, string) {
	state := s.generateState()

	s.stateMutex.Lock()
	s.stateStore[state] = stateEntry{
		expiresAt:          time.Now().Add(stateTTL),
		expectedAdminEmail: strings.ToLower(strings.TrimSpace(expectedAdminEmail)),
	}
	s.cleanupExpiredStates()
	s.stateMutex.Unlock()

	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("redirect_uri", s.redirectURI)
	params.Set("scope", s.scopes)
	params.Set("response_type", "code")
	params.Set("state", state)
	if expectedAdminEmail != "" {
		params.Set("login_hint", expectedAdminEmail)
	}

	return googleOAuthURL + "?" + params.Encode(), state
}

// cleanupExpiredStates removes expired state parameters. Caller must hold stateMutex.
func (s *OAuthService) cleanupExpiredStates() {
	now := time.Now()
	for state, entry := range s.stateStore {
		if now.After(entry.expiresAt) {
			delete(s.stateStore, state)
		}
	}
}

// ConsumeState validates and removes a state parameter. The entry is removed
// on every outcome, so neither the state nor a stored admin expectation can
// be replayed.
func (s *OAuthService) ConsumeState(state string) (*service.OAuthState, bool) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	entry, exists := s.stateStore[state]
	if !exists {
		return nil, false
	}
	delete(s.stateStore, state)

	if time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return &service.OAuthState{ExpectedAdminEmail: entry.expectedAdminEmail}, true
}

// ExchangeCodeForToken exchanges an authorization code for an access token
func (s *OAuthService) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", s.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange code for token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}

	return tokenResponse.AccessToken, nil
}

// GetUserInfo retrieves user information using an access token
func (s *OAuthService) GetUserInfo(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var googleUser struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		VerifiedEmail bool   `json:"verified_email"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	return &service.OAuthUser{
		ID:            googleUser.ID,
		Email:         googleUser.Email,
		Name:          googleUser.Name,
		AvatarURL:     googleUser.Picture,
		EmailVerified: googleUser.VerifiedEmail,
	}, nil
}
