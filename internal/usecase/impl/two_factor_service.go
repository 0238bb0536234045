// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	deliverycontext "endura/internal/delivery/context"
	"endura/internal/domain/entity"
	"endura/internal/domain/repository"
	"endura/internal/domain/service"
	"endura/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// codeWindow is the fixed lifetime of an issued second-factor code.
const codeWindow = 10 * time.Minute

// codeSpace bounds the uniform draw; codes are zero-padded to six digits.
var codeSpace = big.NewInt(1_000_000)

// twoFactorService implements the TwoFactorIssuer interface.
type twoFactorService struct {
	userRepo repository.UserRepository
	sender   service.CodeSender
	logger   *slog.Logger
}

// TwoFactorServiceParams holds dependencies for twoFactorService, injected by Fx.
type TwoFactorServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Sender   service.CodeSender
	Logger   *slog.Logger
}

// NewTwoFactorService is the constructor for twoFactorService.
func NewTwoFactorService(params TwoFactorServiceParams) usecase.TwoFactorIssuer {
	return &twoFactorService{
		userRepo: params.UserRepo,
		sender:   params.Sender,
		logger:   params.Logger,
	}
}

func (srv *twoFactorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue generates a fresh six-digit code, stores it with a ten-minute expiry,
// persists the user, and attempts delivery. Any previously outstanding code
// is superseded even if unexpired.
func (srv *twoFactorService) Issue(ctx context.Context, user *entity.User) error {
	code, err := generateCode()
	if err != nil {
		return errors.Wrap(err, "failed to generate two-factor code")
	}

	user.SetChallenge(code, time.Now().Add(codeWindow))

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store two-factor code")
	}

	if err := srv.sender.SendCode(ctx, user.Email, code); err != nil {
		// Delivery failure does not block authentication; surface the code
		// to the operator instead. Production deployments should treat this
		// path as fatal.
		srv.log(ctx).Warn("Two-factor code delivery failed, logging code as fallback",
			slog.Any("userID", user.ID),
			slog.String("code", code),
			slog.Any("error", err))

		return nil
	}

	srv.log(ctx).Debug("Two-factor code delivered", slog.Any("userID", user.ID))

	return nil
}

// Verify checks a candidate against the stored code. It mutates nothing;
// callers clear the code after a successful check.
func (srv *twoFactorService) Verify(user *entity.User, candidate string, force bool) usecase.CodeCheckResult {
	if !user.TwoFactorEnabled && !force {
		return usecase.CodeCheckResult{Valid: true, Reason: usecase.ReasonNotEnabled}
	}

	if !user.HasPendingChallenge() {
		return usecase.CodeCheckResult{Valid: false, Reason: usecase.ReasonNoCode}
	}

	if time.Now().After(*user.TwoFactorCodeExpiresAt) {
		return usecase.CodeCheckResult{Valid: false, Reason: usecase.ReasonExpired}
	}

	// Exact string equality, no normalization.
	if *user.TwoFactorCode != candidate {
		return usecase.CodeCheckResult{Valid: false, Reason: usecase.ReasonMismatch}
	}

	return usecase.CodeCheckResult{Valid: true, Reason: usecase.ReasonMatch}
}

// Clear removes the stored code and expiry and persists the user. Safe to
// call when no code is outstanding.
func (srv *twoFactorService) Clear(ctx context.Context, user *entity.User) error {
	user.ClearChallenge()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to clear two-factor code")
	}

	return nil
}

// generateCode draws uniformly from [0, 1e6) and zero-pads to six digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", errors.Wrap(err, "failed to read random source")
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
