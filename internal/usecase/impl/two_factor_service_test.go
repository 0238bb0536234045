package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"endura/internal/domain/entity"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTwoFactorService(userRepo *mockUserRepository, sender *mockCodeSender) usecase.TwoFactorIssuer {
	return NewTwoFactorService(TwoFactorServiceParams{
		UserRepo: userRepo,
		Sender:   sender,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestTwoFactorService_Issue_StoresCodeAndDelivers(t *testing.T) {
	userRepo := new(mockUserRepository)
	sender := new(mockCodeSender)
	service := newTwoFactorService(userRepo, sender)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "user@example.com", TwoFactorEnabled: true}

	userRepo.On("Update", ctx, user).Return(nil)
	sender.On("SendCode", ctx, "user@example.com", mock.AnythingOfType("string")).Return(nil)

	before := time.Now()
	err := service.Issue(ctx, user)

	require.NoError(t, err)
	require.True(t, user.HasPendingChallenge())
	assert.Len(t, *user.TwoFactorCode, 6)
	assert.WithinDuration(t, before.Add(10*time.Minute), *user.TwoFactorCodeExpiresAt, 2*time.Second)
	sender.AssertCalled(t, "SendCode", ctx, "user@example.com", *user.TwoFactorCode)
}

func TestTwoFactorService_Issue_DeliveryFailureDoesNotBlock(t *testing.T) {
	userRepo := new(mockUserRepository)
	sender := new(mockCodeSender)
	service := newTwoFactorService(userRepo, sender)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "user@example.com", TwoFactorEnabled: true}

	userRepo.On("Update", ctx, user).Return(nil)
	sender.On("SendCode", ctx, "user@example.com", mock.AnythingOfType("string")).
		Return(errors.New("smtp unreachable"))

	err := service.Issue(ctx, user)

	require.NoError(t, err)
	assert.True(t, user.HasPendingChallenge())
}

func TestTwoFactorService_Issue_SupersedesOutstandingCode(t *testing.T) {
	userRepo := new(mockUserRepository)
	sender := new(mockCodeSender)
	service := newTwoFactorService(userRepo, sender)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "user@example.com", TwoFactorEnabled: true}
	user.SetChallenge("111111", time.Now().Add(5*time.Minute))

	userRepo.On("Update", ctx, user).Return(nil)
	sender.On("SendCode", ctx, "user@example.com", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, service.Issue(ctx, user))

	// The old code is rejected even though its own window had not lapsed.
	result := service.Verify(user, "111111", false)
	assert.False(t, result.Valid)
	assert.Equal(t, usecase.ReasonMismatch, result.Reason)

	result = service.Verify(user, *user.TwoFactorCode, false)
	assert.True(t, result.Valid)
}

func TestTwoFactorService_Verify_NotEnabledShortCircuit(t *testing.T) {
	service := newTwoFactorService(new(mockUserRepository), new(mockCodeSender))

	user := &entity.User{ID: uuid.New(), TwoFactorEnabled: false}

	result := service.Verify(user, "123456", false)
	assert.True(t, result.Valid)
	assert.Equal(t, usecase.ReasonNotEnabled, result.Reason)

	// Forcing skips the short-circuit and demands a stored code.
	result = service.Verify(user, "123456", true)
	assert.False(t, result.Valid)
	assert.Equal(t, usecase.ReasonNoCode, result.Reason)
}

func TestTwoFactorService_Verify_NoCode(t *testing.T) {
	service := newTwoFactorService(new(mockUserRepository), new(mockCodeSender))

	user := &entity.User{ID: uuid.New(), TwoFactorEnabled: true}

	result := service.Verify(user, "123456", false)
	assert.False(t, result.Valid)
	assert.Equal(t, usecase.ReasonNoCode, result.Reason)
}

func TestTwoFactorService_Verify_WindowBoundary(t *testing.T) {
	service := newTwoFactorService(new(mockUserRepository), new(mockCodeSender))

	// Issued at T with a ten-minute window, checked at T+9: one minute left.
	user := &entity.User{ID: uuid.New(), TwoFactorEnabled: true}
	user.SetChallenge("123456", time.Now().Add(time.Minute))

	result := service.Verify(user, "123456", false)
	assert.True(t, result.Valid)
	assert.Equal(t, usecase.ReasonMatch, result.Reason)

	// Checked at T+11: one minute past expiry.
	user.SetChallenge("123456", time.Now().Add(-time.Minute))

	result = service.Verify(user, "123456", false)
	assert.False(t, result.Valid)
	assert.Equal(t, usecase.ReasonExpired, result.Reason)
}

func TestTwoFactorService_Verify_Mismatch(t *testing.T) {
	service := newTwoFactorService(new(mockUserRepository), new(mockCodeSender))

	user := &entity.User{ID: uuid.New(), TwoFactorEnabled: true}
	user.SetChallenge("123456", time.Now().Add(time.Minute))

	// Exact string equality, so a normalized variant still mismatches.
	result := service.Verify(user, " 123456", false)
	assert.False(t, result.Valid)
	assert.Equal(t, usecase.ReasonMismatch, result.Reason)
}

func TestTwoFactorService_Clear_SingleUse(t *testing.T) {
	userRepo := new(mockUserRepository)
	service := newTwoFactorService(userRepo, new(mockCodeSender))

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), TwoFactorEnabled: true}
	user.SetChallenge("123456", time.Now().Add(time.Minute))

	userRepo.On("Update", ctx, user).Return(nil)

	require.NoError(t, service.Clear(ctx, user))
	assert.False(t, user.HasPendingChallenge())

	// The cleared code no longer verifies.
	result := service.Verify(user, "123456", false)
	assert.False(t, result.Valid)
	assert.Equal(t, usecase.ReasonNoCode, result.Reason)

	// Clearing again is a no-op.
	require.NoError(t, service.Clear(ctx, user))
}
