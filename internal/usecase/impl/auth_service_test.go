package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/errors"
	mockRepo "scribe/internal/mocks/repository"
	mockSvc "scribe/internal/mocks/service"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceFixture struct {
	service      *authService
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	registry     *mockSvc.MockRevocationRegistry
}

func createTestAuthService(t *testing.T) *authServiceFixture {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	registry := mockSvc.NewMockRevocationRegistry(t)

	svc := newAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Registry:     registry,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &authServiceFixture{
		service:      svc,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		registry:     registry,
	}
}

// expectTransaction runs the callback against factory and returns its error, like a real transaction would.
func (fx *authServiceFixture) expectTransaction(factory repository.RepositoryFactory) {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestAuthService_ValidateUser_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "hashed", CreatedAt: time.Now()}
	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(user, nil)
	fx.hasher.EXPECT().Check("pw1", "hashed").Return(true)

	identity, err := fx.service.ValidateUser(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestAuthService_ValidateUser_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "hashed"}
	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "hashed").Return(false)

	identity, err := fx.service.ValidateUser(ctx, "a@x.com", "wrong")
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_ValidateUser_UnknownEmailSpendsComparison(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@x.com").Return(nil, repository.ErrUserNotFound).Twice()
	fx.hasher.EXPECT().Hash(dummyPassword).Return("dummy-hash", nil).Once()
	fx.hasher.EXPECT().Check("pw", "dummy-hash").Return(false).Twice()

	for range 2 {
		identity, err := fx.service.ValidateUser(ctx, "ghost@x.com", "pw")
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}
}

func TestAuthService_ValidateUser_StoreFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, errors.New("connection refused"))

	identity, err := fx.service.ValidateUser(ctx, "a@x.com", "pw")
	assert.Nil(t, identity)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAuthService_Login(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	identity := &entity.Identity{ID: uuid.New(), Email: "a@x.com"}
	fx.tokenService.EXPECT().
		Issue(entity.TokenClaims{Subject: identity.ID, Email: "a@x.com"}).
		Return("signed-token", nil)

	output, err := fx.service.Login(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, usecase.MessageLoginSuccessful, output.Message)
	assert.Equal(t, "signed-token", output.Token)
	assert.NotNil(t, output.Data)
	assert.Empty(t, output.Data)
}

func TestAuthService_Login_IssueFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.tokenService.EXPECT().Issue(mock.Anything).Return("", domainerrors.ErrTokenSigningFailed)

	output, err := fx.service.Login(ctx, &entity.Identity{ID: uuid.New(), Email: "a@x.com"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrTokenSigningFailed)
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	factory := mockRepo.NewMockRepositoryFactory(t)
	txUserRepo := mockRepo.NewMockUserRepository(t)
	factory.EXPECT().UserRepo().Return(txUserRepo)
	fx.expectTransaction(factory)

	newID := uuid.New()
	txUserRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw1").Return("hashed", nil)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, "hashed", user.PasswordHash)
			user.ID = newID
		}).
		Return(nil)
	fx.tokenService.EXPECT().
		Issue(entity.TokenClaims{Subject: newID, Email: "a@x.com"}).
		Return("signed-token", nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, usecase.MessageLoginSuccessful, output.Message)
	assert.Equal(t, "signed-token", output.Token)
	assert.Empty(t, output.Data)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	factory := mockRepo.NewMockRepositoryFactory(t)
	txUserRepo := mockRepo.NewMockUserRepository(t)
	factory.EXPECT().UserRepo().Return(txUserRepo)
	fx.expectTransaction(factory)

	txUserRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(&entity.User{ID: uuid.New(), Email: "a@x.com"}, nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "pw1"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_LostRaceOnCreate(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	factory := mockRepo.NewMockRepositoryFactory(t)
	txUserRepo := mockRepo.NewMockUserRepository(t)
	factory.EXPECT().UserRepo().Return(txUserRepo)
	fx.expectTransaction(factory)

	txUserRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw1").Return("hashed", nil)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	output, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "pw1"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	factory := mockRepo.NewMockRepositoryFactory(t)
	txUserRepo := mockRepo.NewMockUserRepository(t)
	factory.EXPECT().UserRepo().Return(txUserRepo)
	fx.expectTransaction(factory)

	txUserRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw1").Return("", errors.New("rng failure"))

	output, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "pw1"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAuthService_Logout_UsesTokenExpiry(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	expiresAt := time.Unix(1_700_003_600, 0)
	fx.tokenService.EXPECT().ExpiryOf("tok").Return(expiresAt, true)
	fx.registry.EXPECT().Revoke(ctx, "tok", expiresAt).Return(nil)

	output, err := fx.service.Logout(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, usecase.MessageLoggedOut, output.Message)
	assert.Empty(t, output.Token)
	assert.NotNil(t, output.Data)
}

func TestAuthService_Logout_GarbageTokenIsStillRevoked(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	fx.service.now = func() time.Time { return now }

	fx.tokenService.EXPECT().ExpiryOf("garbage").Return(time.Time{}, false)
	fx.tokenService.EXPECT().TTL().Return(time.Hour)
	fx.registry.EXPECT().Revoke(ctx, "garbage", now.Add(time.Hour)).Return(nil)

	output, err := fx.service.Logout(ctx, "garbage")
	require.NoError(t, err)
	assert.Equal(t, usecase.MessageLoggedOut, output.Message)
}

func TestAuthService_Logout_RegistryFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.tokenService.EXPECT().ExpiryOf("tok").Return(time.Now().Add(time.Hour), true)
	fx.registry.EXPECT().Revoke(ctx, "tok", mock.Anything).Return(errors.New("redis down"))

	output, err := fx.service.Logout(ctx, "tok")
	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestAuthService_IsTokenBlacklisted(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.registry.EXPECT().IsRevoked(ctx, "revoked").Return(true, nil)
	fx.registry.EXPECT().IsRevoked(ctx, "fresh").Return(false, nil)
	fx.registry.EXPECT().IsRevoked(ctx, "broken").Return(false, errors.New("redis down"))

	revoked, err := fx.service.IsTokenBlacklisted(ctx, "revoked")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = fx.service.IsTokenBlacklisted(ctx, "fresh")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = fx.service.IsTokenBlacklisted(ctx, "broken")
	assert.Error(t, err)
}
