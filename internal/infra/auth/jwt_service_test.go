package auth

import (
	"testing"
	"time"

	"endura/config"
	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Session = "test_session_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_SessionRoundTrip(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()

	token, err := jwtService.IssueSession(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.VerifySession(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	token, err := jwtService.IssueSession(uuid.New())
	require.NoError(t, err)

	// Flip one byte of the signature; the failure must be indistinguishable
	// from an expired session.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	claims, err := jwtService.VerifySession(string(tampered))
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired))
}

func TestJWTService_PendingTokenIsNotASessionToken(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	pending, err := jwtService.IssuePending(uuid.New(), "admin@example.com", entity.PurposeAdminAuth)
	require.NoError(t, err)

	claims, err := jwtService.VerifySession(pending)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired))
}

func TestJWTService_PendingRoundTrip(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	userID := uuid.New()

	token, err := jwtService.IssuePending(userID, "user@example.com", entity.PurposeGoogleAuth)
	require.NoError(t, err)

	claims, err := jwtService.VerifyPending(token, entity.PurposeGoogleAuth)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.Temporary)
}

func TestJWTService_PendingPurposeMismatch(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	token, err := jwtService.IssuePending(uuid.New(), "user@example.com", entity.PurposeGoogleAuth)
	require.NoError(t, err)

	claims, err := jwtService.VerifyPending(token, entity.PurposeAdminAuth)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired))
}

func TestJWTService_ExpiredPendingToken(t *testing.T) {
	svc := &jwtService{
		secret:     "test_session_secret_key_very_long_for_testing",
		sessionTTL: defaultSessionTTL,
		pendingTTL: -time.Minute, // already expired at issuance
	}

	token, err := svc.IssuePending(uuid.New(), "user@example.com", entity.PurposeAdminAuth)
	require.NoError(t, err)

	claims, err := svc.VerifyPending(token, entity.PurposeAdminAuth)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired))
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	claims, err := jwtService.VerifySession("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt session secret must be provided")
}

func TestJWTService_Durations(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Auth = &config.AuthConfig{
		SessionTTL: 48 * time.Hour,
		PendingTTL: 5 * time.Minute,
	}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, jwtService.SessionDuration())
	assert.Equal(t, 5*time.Minute, jwtService.PendingDuration())
}
