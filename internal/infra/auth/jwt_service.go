package auth

import (
	"time"

	"scribe/config"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/service"
	"scribe/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the validity window of an issued token when none is configured.
const DefaultTokenTTL = time.Hour

// jwtClaims is the wire form of entity.TokenClaims.
type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte           // Process-wide HMAC key.
	ttl    time.Duration    // Time-to-live for issued tokens.
	now    func() time.Time // Clock, replaceable in tests.
	parser *jwt.Parser
}

// JWTOption customises a jwtService.
type JWTOption func(*jwtService)

// WithClock replaces the wall clock used for issuing and verifying.
func WithClock(now func() time.Time) JWTOption {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewJWTService is the constructor for jwtService.
// A missing secret is a configuration error and stops the application from starting.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	ttl := DefaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService(cfg.SecretKey.Access, ttl)
}

func newJWTService(secret string, ttl time.Duration, opts ...JWTOption) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		return nil, errors.Errorf("jwt ttl must be positive, got %s", ttl)
	}

	s := &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	return s, nil
}

// Issue creates a signed token for the subject and email in claims.
func (s *jwtService) Issue(claims entity.TokenClaims) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   claims.Subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrTokenSigningFailed, err.Error())
	}

	return signed, nil
}

// Verify checks the token signature, structure and expiry and returns its claims.
// jwt rejects a token once now is no longer before exp, so a token is dead at its exact expiry second.
func (s *jwtService) Verify(tokenString string) (*entity.TokenClaims, error) {
	parsed := &jwtClaims{}
	if _, err := s.parser.ParseWithClaims(tokenString, parsed, s.keyFunc); err != nil {
		return nil, classifyParseError(err)
	}

	subject, err := uuid.Parse(parsed.Subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenMalformed, "subject is not a user id")
	}
	if parsed.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrTokenMalformed, "email claim missing")
	}

	claims := &entity.TokenClaims{
		ID:        parsed.ID,
		Subject:   subject,
		Email:     parsed.Email,
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}

	return claims, nil
}

// ExpiryOf reads the exp claim without checking the signature.
func (s *jwtService) ExpiryOf(tokenString string) (time.Time, bool) {
	parsed := &jwtClaims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, parsed); err != nil {
		return time.Time{}, false
	}
	if parsed.ExpiresAt == nil {
		return time.Time{}, false
	}

	return parsed.ExpiresAt.Time, true
}

// TTL returns the configured validity window.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	// Ensure the signing method is what we expect.
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return s.secret, nil
}

// classifyParseError maps jwt's error set onto the domain token errors.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Wrap(domainerrors.ErrTokenMalformed, err.Error())
	case errors.IsAny(err, jwt.ErrTokenSignatureInvalid, jwt.ErrTokenUnverifiable):
		return errors.Wrap(domainerrors.ErrTokenBadSignature, err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
	default:
		return errors.Wrap(domainerrors.ErrTokenMalformed, err.Error())
	}
}
