package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"scribe/config"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/errors"
	"scribe/internal/infra/auth"
	"scribe/internal/infra/revocation"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryUserStore enforces email uniqueness the way the database index does.
type memoryUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byEmail: make(map[string]*entity.User)}
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (s *memoryUserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.byEmail[user.Email] = &copied

	return nil
}

func (s *memoryUserStore) UserRepo() repository.UserRepository { return s }

func (s *memoryUserStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func newFlowAuthService(t *testing.T) (*authService, *memoryUserStore) {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = "flow_test_secret_key"
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := newMemoryUserStore()
	svc := newAuthService(AuthServiceParams{
		TxManager:    store,
		UserRepo:     store,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Registry:     revocation.NewMemoryRegistry(),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, store
}

func TestAuthFlow_RegisterThenValidate(t *testing.T) {
	svc, store := newFlowAuthService(t)
	ctx := context.Background()

	output, err := svc.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	require.NotEmpty(t, output.Token)

	stored, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.PasswordHash)

	identity, err := svc.ValidateUser(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, identity.ID)
	assert.Equal(t, "a@x.com", identity.Email)

	_, err = svc.ValidateUser(ctx, "a@x.com", "pw2")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.ValidateUser(ctx, "nobody@x.com", "pw1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthFlow_IssuedTokenVerifiesToUser(t *testing.T) {
	svc, store := newFlowAuthService(t)
	ctx := context.Background()

	output, err := svc.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	claims, err := svc.tokenService.Verify(output.Token)
	require.NoError(t, err)

	stored, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestAuthFlow_LogoutBlacklistsOnlyThatToken(t *testing.T) {
	svc, _ := newFlowAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	identity, err := svc.ValidateUser(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	second, err := svc.Login(ctx, identity)
	require.NoError(t, err)
	require.NotEqual(t, registered.Token, second.Token)

	_, err = svc.Logout(ctx, registered.Token)
	require.NoError(t, err)

	revoked, err := svc.IsTokenBlacklisted(ctx, registered.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.IsTokenBlacklisted(ctx, second.Token)
	require.NoError(t, err)
	assert.False(t, revoked)

	// Logging out twice is harmless.
	_, err = svc.Logout(ctx, registered.Token)
	require.NoError(t, err)
}

func TestAuthFlow_ConcurrentDuplicateRegistration(t *testing.T) {
	svc, _ := newFlowAuthService(t)
	ctx := context.Background()

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			_, err := svc.Register(ctx, usecase.RegisterInput{Email: "race@x.com", Password: "pw1"})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domainerrors.ErrUserAlreadyExists):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}
