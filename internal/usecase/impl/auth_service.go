package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "endura/internal/delivery/context"
	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/domain/repository"
	"endura/internal/domain/service"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It sequences the
// password and federated login paths, the optional second-factor round-trip,
// and session issuance.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauthService service.OAuthService
	twoFactor    usecase.TwoFactorIssuer
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	AuthRepo     repository.AuthRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuthService service.OAuthService
	TwoFactor    usecase.TwoFactorIssuer
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		authRepo:     params.AuthRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauthService: params.OAuthService,
		twoFactor:    params.TwoFactor,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with an email credential and issues its
// first session token.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, findErr := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		if findErr == nil {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to check existing authentication")
		}

		newUser := &entity.User{
			Name:            input.Name,
			Email:           email,
			Role:            entity.RoleUser,
			TwoFactorMethod: entity.TwoFactorMethodEmail,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.tokenService.IssueSession(registeredUser.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{Token: token, User: registeredUser}, nil
}

// Login runs the password path: credential check, then the optional
// second-factor round-trip over the same operation.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting password login", slog.String("email", email))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			// Same condition as a wrong password so the response never
			// reveals whether the account exists.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// bcrypt is CPU-bound; checked outside any transaction.
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	user, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.TwoFactorEnabled {
		token, err := srv.tokenService.IssueSession(user.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to issue session token")
		}

		srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

		return &usecase.LoginOutput{Token: token, User: user}, nil
	}

	if input.TwoFactorCode == "" {
		if err := srv.twoFactor.Issue(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to issue two-factor challenge")
		}

		srv.log(ctx).Debug("Two-factor challenge sent", slog.Any("userID", user.ID))

		return &usecase.LoginOutput{RequiresTwoFactor: true}, nil
	}

	result := srv.twoFactor.Verify(user, input.TwoFactorCode, false)
	if !result.Valid {
		srv.log(ctx).Warn("Two-factor verification failed",
			slog.Any("userID", user.ID),
			slog.String("reason", string(result.Reason)))

		return nil, domainerrors.ErrTwoFactorInvalid.WithDetails(string(result.Reason)).
			WrapMessage("two-factor verification failed")
	}

	if err := srv.twoFactor.Clear(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to clear two-factor code")
	}

	token, err := srv.tokenService.IssueSession(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("User logged in with second factor", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// AdminCheck confirms the email belongs to an admin account. Absent accounts
// and non-admin accounts share one failure condition.
func (srv *authService) AdminCheck(ctx context.Context, input *usecase.AdminCheckInput) error {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrAccessDenied, "admin check failed")
		}

		return errors.Wrap(err, "failed to find user for admin check")
	}

	if !user.IsAdmin() {
		srv.log(ctx).Warn("Admin check rejected non-admin account", slog.Any("userID", user.ID))

		return errors.Wrap(domainerrors.ErrAccessDenied, "admin check failed")
	}

	return nil
}

// GoogleAuthURL builds the provider redirect URL. A non-empty
// expectedAdminEmail arms the single-use admin sub-flow for the callback.
func (srv *authService) GoogleAuthURL(ctx context.Context, expectedAdminEmail string) (string, error) {
	authURL, _ := srv.oauthService.BuildAuthorizationURL(normalizeEmail(expectedAdminEmail))

	if expectedAdminEmail != "" {
		srv.log(ctx).Info("Armed admin sign-in expectation")
	}

	return authURL, nil
}

// GoogleCallback resolves the provider identity to a local account. The
// state entry, and any admin expectation it carries, is consumed exactly
// once regardless of outcome.
func (srv *authService) GoogleCallback(ctx context.Context, input *usecase.GoogleCallbackInput) (*usecase.GoogleCallbackOutput, error) {
	srv.log(ctx).Info("Handling Google callback")

	state, ok := srv.oauthService.ConsumeState(input.State)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrOAuthFailed, "unknown or expired oauth state")
	}

	accessToken, err := srv.oauthService.ExchangeCodeForToken(ctx, input.Code)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrOAuthFailed, "failed to exchange authorization code")
	}

	oauthUser, err := srv.oauthService.GetUserInfo(ctx, accessToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrOAuthFailed, "failed to fetch provider user info")
	}

	user, err := srv.findOrCreateGoogleUser(ctx, oauthUser)
	if err != nil {
		return nil, err
	}

	// Admin sub-flow: the expectation was pre-declared before the redirect
	// and is already consumed, so it cannot be replayed.
	if state.ExpectedAdminEmail != "" {
		return srv.finishAdminCallback(ctx, user, oauthUser, state.ExpectedAdminEmail)
	}

	if user.TwoFactorEnabled {
		return srv.issuePendingWithChallenge(ctx, user, entity.PurposeGoogleAuth)
	}

	token, err := srv.tokenService.IssueSession(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Federated login completed", slog.Any("userID", user.ID))

	return &usecase.GoogleCallbackOutput{SessionToken: token, User: user}, nil
}

// finishAdminCallback enforces the admin gating in order: email match first,
// then role. Admins always pass through the second factor, regardless of
// their own flag.
func (srv *authService) finishAdminCallback(ctx context.Context, user *entity.User, oauthUser *service.OAuthUser, expectedEmail string) (*usecase.GoogleCallbackOutput, error) {
	if normalizeEmail(oauthUser.Email) != expectedEmail {
		srv.log(ctx).Warn("Admin callback email mismatch", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrEmailMismatch, "returned identity does not match declared admin email")
	}

	if !user.IsAdmin() {
		srv.log(ctx).Warn("Admin callback for non-admin account", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrNotAdmin, "account does not hold the admin role")
	}

	return srv.issuePendingWithChallenge(ctx, user, entity.PurposeAdminAuth)
}

// issuePendingWithChallenge mints a pending token and triggers code delivery.
func (srv *authService) issuePendingWithChallenge(ctx context.Context, user *entity.User, purpose entity.TokenPurpose) (*usecase.GoogleCallbackOutput, error) {
	if err := srv.twoFactor.Issue(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to issue two-factor challenge")
	}

	pendingToken, err := srv.tokenService.IssuePending(user.ID, user.Email, purpose)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue pending token")
	}

	srv.log(ctx).Debug("Pending token issued", slog.Any("userID", user.ID), slog.String("purpose", string(purpose)))

	return &usecase.GoogleCallbackOutput{
		PendingToken: pendingToken,
		Purpose:      purpose,
		User:         user,
	}, nil
}

// findOrCreateGoogleUser resolves the provider identity: by federated id
// first, else by verified email auto-link, else a fresh account.
func (srv *authService) findOrCreateGoogleUser(ctx context.Context, oauthUser *service.OAuthUser) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		authRecord, findErr := authRepo.FindAuthentication(ctx, entity.ProviderTypeGoogle, oauthUser.ID)
		if findErr == nil {
			existing, loadErr := userRepo.FindByID(ctx, authRecord.UserID)
			if loadErr != nil {
				return errors.Wrap(loadErr, "failed to load user for federated login")
			}
			user = existing

			return nil
		}
		if !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to find federated authentication")
		}

		// Auto-link: a verified provider email may attach to an existing
		// local account.
		if oauthUser.EmailVerified {
			existing, lookupErr := userRepo.FindByEmail(ctx, oauthUser.Email)
			if lookupErr == nil {
				if linkErr := srv.linkGoogleCredential(ctx, authRepo, existing.ID, oauthUser.ID); linkErr != nil {
					return linkErr
				}
				user = existing

				return nil
			}
			if !errors.Is(lookupErr, repository.ErrUserNotFound) {
				return errors.Wrap(lookupErr, "failed to look up user by email for auto-link")
			}
		}

		created, createErr := srv.createGoogleUser(ctx, userRepo, authRepo, oauthUser)
		if createErr != nil {
			return createErr
		}
		user = created

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute federated login transaction")
	}

	return user, nil
}

// createGoogleUser creates a fresh local account for a first federated sign-in.
func (srv *authService) createGoogleUser(ctx context.Context, userRepo repository.UserRepository, authRepo repository.AuthRepository, oauthUser *service.OAuthUser) (*entity.User, error) {
	srv.log(ctx).Info("Federated user not found, creating account", slog.String("email", oauthUser.Email))

	newUser := &entity.User{
		Name:            oauthUser.Name,
		Email:           normalizeEmail(oauthUser.Email),
		Role:            entity.RoleUser,
		Verified:        true, // The provider vouches for the email.
		TwoFactorMethod: entity.TwoFactorMethodEmail,
	}
	if err := userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user for federated login")
	}

	if err := srv.linkGoogleCredential(ctx, authRepo, newUser.ID, oauthUser.ID); err != nil {
		return nil, err
	}

	return newUser, nil
}

func (srv *authService) linkGoogleCredential(ctx context.Context, authRepo repository.AuthRepository, userID uuid.UUID, providerUserID string) error {
	newAuth := &entity.Authentication{
		UserID:         userID,
		Provider:       entity.ProviderTypeGoogle,
		ProviderUserID: providerUserID,
	}
	if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
		return errors.Wrap(err, "failed to link federated credential")
	}

	return nil
}

// VerifyGoogleTwoFactor finishes a regular federated login.
func (srv *authService) VerifyGoogleTwoFactor(ctx context.Context, input *usecase.VerifyTwoFactorInput) (*usecase.VerifyTwoFactorOutput, error) {
	return srv.verifyPendingTwoFactor(ctx, input, entity.PurposeGoogleAuth)
}

// VerifyAdminTwoFactor finishes an admin federated login.
func (srv *authService) VerifyAdminTwoFactor(ctx context.Context, input *usecase.VerifyTwoFactorInput) (*usecase.VerifyTwoFactorOutput, error) {
	return srv.verifyPendingTwoFactor(ctx, input, entity.PurposeAdminAuth)
}

// verifyPendingTwoFactor validates the pending token, checks the code, and
// trades both for a session token. The admin purpose always forces the code
// check even when the account's own flag is off.
func (srv *authService) verifyPendingTwoFactor(ctx context.Context, input *usecase.VerifyTwoFactorInput, purpose entity.TokenPurpose) (*usecase.VerifyTwoFactorOutput, error) {
	claims, err := srv.tokenService.VerifyPending(input.TempToken, purpose)
	if err != nil {
		return nil, errors.Wrap(err, "pending token rejected")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for two-factor verification")
	}

	force := purpose == entity.PurposeAdminAuth
	result := srv.twoFactor.Verify(user, input.TwoFactorCode, force)
	if !result.Valid {
		srv.log(ctx).Warn("Two-factor verification failed",
			slog.Any("userID", user.ID),
			slog.String("purpose", string(purpose)),
			slog.String("reason", string(result.Reason)))

		return nil, domainerrors.ErrTwoFactorInvalid.WithDetails(string(result.Reason)).
			WrapMessage("two-factor verification failed")
	}

	if err := srv.twoFactor.Clear(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to clear two-factor code")
	}

	token, err := srv.tokenService.IssueSession(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Second factor satisfied", slog.Any("userID", user.ID), slog.String("purpose", string(purpose)))

	return &usecase.VerifyTwoFactorOutput{Token: token, User: user}, nil
}

// ResendAdminTwoFactor reissues the code and mints a fresh pending token.
// The ten-minute windows restart at the resend call.
func (srv *authService) ResendAdminTwoFactor(ctx context.Context, input *usecase.ResendTwoFactorInput) (*usecase.ResendTwoFactorOutput, error) {
	claims, err := srv.tokenService.VerifyPending(input.TempToken, entity.PurposeAdminAuth)
	if err != nil {
		return nil, errors.Wrap(err, "pending token rejected")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for resend")
	}

	if err := srv.twoFactor.Issue(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to reissue two-factor challenge")
	}

	freshToken, err := srv.tokenService.IssuePending(user.ID, user.Email, entity.PurposeAdminAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue fresh pending token")
	}

	srv.log(ctx).Debug("Two-factor challenge resent", slog.Any("userID", user.ID))

	return &usecase.ResendTwoFactorOutput{TempToken: freshToken}, nil
}

// ToggleTwoFactor flips the account's second-factor flag. Disabling also
// drops any outstanding challenge.
func (srv *authService) ToggleTwoFactor(ctx context.Context, userID uuid.UUID) (*usecase.ToggleTwoFactorOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for two-factor toggle")
	}

	user.TwoFactorEnabled = !user.TwoFactorEnabled
	if !user.TwoFactorEnabled {
		user.ClearChallenge()
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to persist two-factor toggle")
	}

	srv.log(ctx).Info("Two-factor flag toggled",
		slog.Any("userID", user.ID),
		slog.Bool("enabled", user.TwoFactorEnabled))

	return &usecase.ToggleTwoFactorOutput{TwoFactorEnabled: user.TwoFactorEnabled}, nil
}

// GetProfile returns the account backing a session.
func (srv *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// normalizeEmail lower-cases and trims an address for case-insensitive matching.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
