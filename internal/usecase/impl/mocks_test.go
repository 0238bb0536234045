package impl

import (
	"context"
	"time"

	"endura/internal/domain/entity"
	"endura/internal/domain/repository"
	"endura/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the repository and service interfaces the
// use case tests exercise.

type mockTransactionManager struct {
	mock.Mock
}

func (m *mockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// passthroughTxManager runs the callback against a fixed factory, standing in
// for a real transaction in tests.
type passthroughTxManager struct {
	factory repository.RepositoryFactory
}

func (m *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type mockRepositoryFactory struct {
	mock.Mock
}

func (m *mockRepositoryFactory) UserRepo() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *mockRepositoryFactory) AuthRepo() repository.AuthRepository {
	return m.Called().Get(0).(repository.AuthRepository)
}

func (m *mockRepositoryFactory) ProductRepo() repository.ProductRepository {
	return m.Called().Get(0).(repository.ProductRepository)
}

func (m *mockRepositoryFactory) CartRepo() repository.CartRepository {
	return m.Called().Get(0).(repository.CartRepository)
}

func (m *mockRepositoryFactory) OrderRepo() repository.OrderRepository {
	return m.Called().Get(0).(repository.OrderRepository)
}

func (m *mockRepositoryFactory) CollectibleRepo() repository.CollectibleRepository {
	return m.Called().Get(0).(repository.CollectibleRepository)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthRepository struct {
	mock.Mock
}

func (m *mockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *mockAuthRepository) FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Authentication), args.Error(1)
}

func (m *mockAuthRepository) FindAuthenticationByUserIDAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.Authentication, error) {
	args := m.Called(ctx, userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Authentication), args.Error(1)
}

func (m *mockAuthRepository) ListAuthenticationsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Authentication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Authentication), args.Error(1)
}

func (m *mockAuthRepository) DeleteAuthentication(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.CartItem), args.Error(1)
}

func (m *mockCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.CartItem), args.Error(1)
}

func (m *mockCartRepository) Upsert(ctx context.Context, item *entity.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockCollectibleRepository struct {
	mock.Mock
}

func (m *mockCollectibleRepository) ListCollectibles(ctx context.Context) ([]*entity.Collectible, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Collectible), args.Error(1)
}

func (m *mockCollectibleRepository) CreateCollectible(ctx context.Context, collectible *entity.Collectible) error {
	return m.Called(ctx, collectible).Error(0)
}

func (m *mockCollectibleRepository) ListUnlocksByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.VaultUnlock, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.VaultUnlock), args.Error(1)
}

func (m *mockCollectibleRepository) FindUnlock(ctx context.Context, userID, collectibleID uuid.UUID) (*entity.VaultUnlock, error) {
	args := m.Called(ctx, userID, collectibleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VaultUnlock), args.Error(1)
}

func (m *mockCollectibleRepository) CreateUnlock(ctx context.Context, unlock *entity.VaultUnlock) error {
	return m.Called(ctx, unlock).Error(0)
}

func (m *mockCollectibleRepository) UpdateUnlock(ctx context.Context, unlock *entity.VaultUnlock) error {
	return m.Called(ctx, unlock).Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueSession(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssuePending(userID uuid.UUID, email string, purpose entity.TokenPurpose) (string, error) {
	args := m.Called(userID, email, purpose)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) VerifySession(token string) (*service.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.SessionClaims), args.Error(1)
}

func (m *mockTokenService) VerifyPending(token string, purpose entity.TokenPurpose) (*service.PendingClaims, error) {
	args := m.Called(token, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.PendingClaims), args.Error(1)
}

func (m *mockTokenService) SessionDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

func (m *mockTokenService) PendingDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type mockOAuthService struct {
	mock.Mock
}

func (m *mockOAuthService) BuildAuthorizationURL(expectedAdminEmail string) (string, string) {
	args := m.Called(expectedAdminEmail)

	return args.String(0), args.String(1)
}

func (m *mockOAuthService) ConsumeState(state string) (*service.OAuthState, bool) {
	args := m.Called(state)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}

	return args.Get(0).(*service.OAuthState), args.Bool(1)
}

func (m *mockOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)

	return args.String(0), args.Error(1)
}

func (m *mockOAuthService) GetUserInfo(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.OAuthUser), args.Error(1)
}

type mockCodeSender struct {
	mock.Mock
}

func (m *mockCodeSender) SendCode(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}
