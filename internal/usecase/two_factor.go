package usecase

import (
	"context"

	"endura/internal/domain/entity"
)

// CodeCheckReason classifies a second-factor verification outcome.
type CodeCheckReason string

const (
	// ReasonNotEnabled means the account has no second factor configured;
	// the check is treated as satisfied unless the caller forces it.
	ReasonNotEnabled CodeCheckReason = "NOT_ENABLED"
	// ReasonNoCode means no code is currently stored for the account.
	ReasonNoCode CodeCheckReason = "NO_CODE"
	// ReasonExpired means the stored code's window has lapsed.
	ReasonExpired CodeCheckReason = "EXPIRED"
	// ReasonMismatch means the candidate differs from the stored code.
	ReasonMismatch CodeCheckReason = "MISMATCH"
	// ReasonMatch means the candidate matched an unexpired stored code.
	ReasonMatch CodeCheckReason = "MATCH"
)

// CodeCheckResult is the outcome of a second-factor verification.
type CodeCheckResult struct {
	Valid  bool
	Reason CodeCheckReason
}

// TwoFactorIssuer generates, verifies, and clears the short-lived numeric
// codes backing the second authentication factor. Only one code may be
// outstanding per account; issuing a new one supersedes the old.
type TwoFactorIssuer interface {
	// Issue generates a fresh code, stores it with its expiry on the user,
	// persists, and attempts out-of-band delivery.
	Issue(ctx context.Context, user *entity.User) error

	// Verify checks a candidate against the stored code. force skips the
	// not-enabled short-circuit, for flows that always demand the factor.
	Verify(user *entity.User, candidate string, force bool) CodeCheckResult

	// Clear removes the stored code and persists the user. Idempotent.
	Clear(ctx context.Context, user *entity.User) error
}
