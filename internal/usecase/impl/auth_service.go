// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
	"scribe/internal/usecase"

	"go.uber.org/fx"
)

// dummyPassword is hashed once and compared against when the email is unknown,
// so both failure paths of ValidateUser spend a bcrypt comparison.
const dummyPassword = "scribe-dummy-password"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	registry     service.RevocationRegistry
	logger       *slog.Logger
	now          func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Registry     service.RevocationRegistry
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return newAuthService(params)
}

func newAuthService(params AuthServiceParams) *authService {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		registry:     params.Registry,
		logger:       logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ValidateUser looks the user up by email and checks the password against the stored hash.
func (srv *authService) ValidateUser(ctx context.Context, email, password string) (*entity.Identity, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.burnComparison(password)
		srv.log(ctx).Debug("Login attempt for unknown email")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		srv.log(ctx).Debug("Password mismatch", slog.String("userID", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// burnComparison spends one bcrypt comparison against a fixed hash.
func (srv *authService) burnComparison(password string) {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Warn("Failed to prepare dummy hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})
	if srv.dummyHash != "" {
		srv.hasher.Check(password, srv.dummyHash)
	}
}

// Login issues a fresh token for the identity.
func (srv *authService) Login(ctx context.Context, identity *entity.Identity) (*usecase.AuthOutput, error) {
	if identity == nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "identity is required")
	}

	token, err := srv.tokenService.Issue(entity.TokenClaims{
		Subject: identity.ID,
		Email:   identity.Email,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("userID", identity.ID.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &usecase.AuthOutput{
		Message: usecase.MessageLoginSuccessful,
		Token:   token,
		Data:    []any{},
	}, nil
}

// Register creates the user and logs them in.
// The store's unique email constraint decides between racing registrations.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	var created *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		user := &entity.User{
			Email:        input.Email,
			PasswordHash: hash,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		created = user

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Registration rejected, email taken")

			return nil, err
		}
		srv.log(ctx).Error("Failed to register user", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.String("userID", created.ID.String()))

	return srv.Login(ctx, created.Identity())
}

// Logout revokes the token unconditionally. Its registry entry lives until the token's own expiry,
// read without checking the signature, or for one token lifetime when no expiry can be read.
func (srv *authService) Logout(ctx context.Context, token string) (*usecase.AuthOutput, error) {
	expiresAt, ok := srv.tokenService.ExpiryOf(token)
	if !ok {
		expiresAt = srv.now().Add(srv.tokenService.TTL())
	}

	if err := srv.registry.Revoke(ctx, token, expiresAt); err != nil {
		srv.log(ctx).Error("Failed to revoke token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to revoke token")
	}

	return &usecase.AuthOutput{
		Message: usecase.MessageLoggedOut,
		Data:    []any{},
	}, nil
}

// IsTokenBlacklisted reports whether the token has been revoked.
func (srv *authService) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	revoked, err := srv.registry.IsRevoked(ctx, token)
	if err != nil {
		return false, errors.Wrap(err, "failed to look up revoked token")
	}

	return revoked, nil
}
