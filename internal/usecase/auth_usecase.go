// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"scribe/internal/domain/entity"
)

const (
	MessageLoginSuccessful  = "Login successful"
	MessageLoggedOut        = "Logged out successfully"
	MessageProfileRetrieved = "Profile retrieved successfully"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is the result of login, register and logout.
// Token is empty for logout. Data is always a non-nil empty slice.
type AuthOutput struct {
	Message string
	Token   string
	Data    []any
}

// AuthUsecase defines the authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// ValidateUser checks credentials and returns the user's identity without its password hash.
	// Unknown email and wrong password both yield domainerrors.ErrInvalidCredentials.
	ValidateUser(ctx context.Context, email, password string) (*entity.Identity, error)

	// Login issues a token for an already validated identity.
	Login(ctx context.Context, identity *entity.Identity) (*AuthOutput, error)

	// Register creates a user and logs them in.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Logout revokes token. The token is not validated first.
	Logout(ctx context.Context, token string) (*AuthOutput, error)

	// IsTokenBlacklisted reports whether token has been revoked.
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}
