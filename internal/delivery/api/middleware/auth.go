// Package middleware contains the echo middleware specific to the HTTP API.
package middleware

import (
	"log/slog"
	"strings"

	"scribe/internal/delivery/api/response"
	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
	"scribe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	AuthUC       usecase.AuthUsecase
	Logger       *slog.Logger
}

// AuthMiddleware is the gate in front of every authenticated route.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authUC   usecase.AuthUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenService,
		authUC:   params.AuthUC,
		logger:   params.Logger,
	}
}

// Authenticate admits a request only if its bearer token verifies AND has not been revoked.
// On success the caller's {userId} is available through deliverycontext.PrincipalFrom.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			logger.Debug("Rejected request without bearer token")

			return response.Unauthorized(c)
		}

		claims, err := m.tokenSvc.Verify(token)
		if err != nil {
			logger.Debug("Rejected unverifiable token", slog.Any("reason", err))

			return response.Unauthorized(c)
		}

		revoked, err := m.authUC.IsTokenBlacklisted(ctx, token)
		if err != nil {
			return errors.Wrap(err, "failed to check token revocation")
		}
		if revoked {
			logger.Debug("Rejected revoked token", slog.String("userID", claims.Subject.String()))

			return response.Unauthorized(c)
		}

		deliverycontext.SetAuthenticated(c, entity.NewPrincipal(claims), token)

		return next(c)
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
