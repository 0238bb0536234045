package postgres

import (
	"context"

	"endura/internal/domain/entity"
	domainerrors "endura/internal/domain/errors"
	"endura/internal/domain/repository"
	"endura/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// collectibleRepository implements the domain's CollectibleRepository interface using GORM.
type collectibleRepository struct {
	db *gorm.DB
}

// NewCollectibleRepository is the constructor for collectibleRepository.
func NewCollectibleRepository(db *gorm.DB) repository.CollectibleRepository {
	return &collectibleRepository{db: db}
}

// ListCollectibles retrieves the full collectible catalog.
func (repo *collectibleRepository) ListCollectibles(ctx context.Context) ([]*entity.Collectible, error) {
	var collectibleMs []model.CollectibleModel
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&collectibleMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list collectibles")
	}

	collectibles := make([]*entity.Collectible, 0, len(collectibleMs))
	for i := range collectibleMs {
		collectibles = append(collectibles, toCollectibleDomain(&collectibleMs[i]))
	}

	return collectibles, nil
}

// CreateCollectible persists a new collectible.
func (repo *collectibleRepository) CreateCollectible(ctx context.Context, collectible *entity.Collectible) error {
	collectibleM := fromCollectibleDomain(collectible)

	if err := repo.db.WithContext(ctx).Create(collectibleM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create collectible")
	}

	collectible.ID = collectibleM.ID
	collectible.CreatedAt = collectibleM.CreatedAt

	return nil
}

// ListUnlocksByUserID retrieves a user's unlocks with collectibles preloaded.
func (repo *collectibleRepository) ListUnlocksByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.VaultUnlock, error) {
	var unlockMs []model.VaultUnlockModel
	if err := repo.db.WithContext(ctx).
		Preload("Collectible").
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&unlockMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vault unlocks")
	}

	unlocks := make([]*entity.VaultUnlock, 0, len(unlockMs))
	for i := range unlockMs {
		unlocks = append(unlocks, toVaultUnlockDomain(&unlockMs[i]))
	}

	return unlocks, nil
}

// FindUnlock retrieves one unlock for a user/collectible pair.
func (repo *collectibleRepository) FindUnlock(ctx context.Context, userID, collectibleID uuid.UUID) (*entity.VaultUnlock, error) {
	var unlockM model.VaultUnlockModel
	if err := repo.db.WithContext(ctx).
		Preload("Collectible").
		Where("user_id = ? AND collectible_id = ?", userID, collectibleID).
		First(&unlockM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUnlockNotFound
		}

		return nil, errors.Wrap(err, "failed to find vault unlock")
	}

	return toVaultUnlockDomain(&unlockM), nil
}

// CreateUnlock persists a new unlock.
func (repo *collectibleRepository) CreateUnlock(ctx context.Context, unlock *entity.VaultUnlock) error {
	unlockM := fromVaultUnlockDomain(unlock)

	if err := repo.db.WithContext(ctx).Create(unlockM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("collectible already unlocked")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCollectibleNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vault unlock")
	}

	unlock.ID = unlockM.ID

	return nil
}

// UpdateUnlock modifies an existing unlock. Select lists the redemption
// columns explicitly so a nil RedeemedAt would still be written.
func (repo *collectibleRepository) UpdateUnlock(ctx context.Context, unlock *entity.VaultUnlock) error {
	unlockM := fromVaultUnlockDomain(unlock)

	result := repo.db.WithContext(ctx).
		Model(&model.VaultUnlockModel{}).
		Where("id = ?", unlockM.ID).
		Select("redeemed", "redeemed_at").
		Updates(unlockM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update vault unlock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUnlockNotFound
	}

	return nil
}

func toCollectibleDomain(m *model.CollectibleModel) *entity.Collectible {
	return &entity.Collectible{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Tier:        m.Tier,
		AssetURL:    m.AssetURL,
		CreatedAt:   m.CreatedAt,
	}
}

func fromCollectibleDomain(c *entity.Collectible) *model.CollectibleModel {
	return &model.CollectibleModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Tier:        c.Tier,
		AssetURL:    c.AssetURL,
		CreatedAt:   c.CreatedAt,
	}
}

func toVaultUnlockDomain(m *model.VaultUnlockModel) *entity.VaultUnlock {
	unlock := &entity.VaultUnlock{
		ID:            m.ID,
		UserID:        m.UserID,
		CollectibleID: m.CollectibleID,
		Redeemed:      m.Redeemed,
		UnlockedAt:    m.UnlockedAt,
		RedeemedAt:    m.RedeemedAt,
	}
	if m.Collectible != nil {
		unlock.Collectible = toCollectibleDomain(m.Collectible)
	}

	return unlock
}

func fromVaultUnlockDomain(u *entity.VaultUnlock) *model.VaultUnlockModel {
	return &model.VaultUnlockModel{
		ID:            u.ID,
		UserID:        u.UserID,
		CollectibleID: u.CollectibleID,
		Redeemed:      u.Redeemed,
		UnlockedAt:    u.UnlockedAt,
		RedeemedAt:    u.RedeemedAt,
	}
}
