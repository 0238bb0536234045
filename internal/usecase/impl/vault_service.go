package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "endura/internal/delivery/context"
	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/domain/repository"
	"endura/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// vaultService implements the VaultUsecase interface.
type vaultService struct {
	txManager       repository.TransactionManager
	collectibleRepo repository.CollectibleRepository
	logger          *slog.Logger
}

// VaultServiceParams holds dependencies for vaultService, injected by Fx.
type VaultServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	CollectibleRepo repository.CollectibleRepository
	Logger          *slog.Logger
}

// NewVaultService is the constructor for vaultService.
func NewVaultService(params VaultServiceParams) usecase.VaultUsecase {
	return &vaultService{
		txManager:       params.TxManager,
		collectibleRepo: params.CollectibleRepo,
		logger:          params.Logger,
	}
}

func (srv *vaultService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetVault returns the user's unlocks with collectibles loaded.
func (srv *vaultService) GetVault(ctx context.Context, userID uuid.UUID) ([]*entity.VaultUnlock, error) {
	unlocks, err := srv.collectibleRepo.ListUnlocksByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vault unlocks")
	}

	return unlocks, nil
}

// Unlock grants the user a collectible. The unique user/collectible pair
// makes a second grant a conflict.
func (srv *vaultService) Unlock(ctx context.Context, userID, collectibleID uuid.UUID) (*entity.VaultUnlock, error) {
	unlock := &entity.VaultUnlock{
		UserID:        userID,
		CollectibleID: collectibleID,
		UnlockedAt:    time.Now(),
	}

	if err := srv.collectibleRepo.CreateUnlock(ctx, unlock); err != nil {
		return nil, errors.Wrap(err, "failed to create vault unlock")
	}

	srv.log(ctx).Info("Collectible unlocked",
		slog.Any("userID", userID),
		slog.Any("collectibleID", collectibleID))

	return unlock, nil
}

// Redeem flips an unlock's redeemed flag exactly once. The read and write
// share one transaction so two racing redeems cannot both succeed.
func (srv *vaultService) Redeem(ctx context.Context, userID, collectibleID uuid.UUID) (*entity.VaultUnlock, error) {
	var redeemed *entity.VaultUnlock
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		collectibleRepo := repoFactory.CollectibleRepo()

		unlock, err := collectibleRepo.FindUnlock(ctx, userID, collectibleID)
		if err != nil {
			if errors.Is(err, repository.ErrUnlockNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "collectible not unlocked")
			}

			return errors.Wrap(err, "failed to find vault unlock")
		}

		if unlock.Redeemed {
			return errors.Wrap(domainerrors.ErrAlreadyRedeemed, "collectible already redeemed")
		}

		now := time.Now()
		unlock.Redeemed = true
		unlock.RedeemedAt = &now

		if err := collectibleRepo.UpdateUnlock(ctx, unlock); err != nil {
			return errors.Wrap(err, "failed to persist redemption")
		}

		redeemed = unlock

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute redemption transaction")
	}

	srv.log(ctx).Info("Collectible redeemed",
		slog.Any("userID", userID),
		slog.Any("collectibleID", collectibleID))

	return redeemed, nil
}
