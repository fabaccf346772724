// Package handler contains the echo handlers of the HTTP API.
package handler

import (
	"log/slog"
	"net/http"

	"scribe/internal/delivery/api/response"
	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves the /auth routes.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,bcryptmax"`
}

// Register creates an account and returns a token for it.
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.WithToken(c, http.StatusCreated, output.Message, output.Token, output.Data)
}

// Login exchanges valid credentials for a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	ctx := c.Request().Context()
	identity, err := h.authUC.ValidateUser(ctx, req.Email, req.Password)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.Login(ctx, identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.WithToken(c, http.StatusOK, output.Message, output.Token, output.Data)
}

// Logout revokes the token the request was authenticated with. Must sit behind the request gate.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, ok := deliverycontext.BearerTokenFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}

	output, err := h.authUC.Logout(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output.Message, output.Data)
}

// Profile returns the caller's identity as seen by downstream handlers.
func (h *AuthHandler) Profile(c echo.Context) error {
	principal, ok := deliverycontext.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}

	return response.Success(c, http.StatusOK, usecase.MessageProfileRetrieved, []any{principal})
}
