package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
)

// tokenService is the HS256 implementation of TokenService. Both services
// share the sign key; only the auth service issues tokens.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the App configuration.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT for the given user.
//
// Returns the token model on success or a wrapped ErrTokenCreationFailed.
func (t *tokenService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.tokenIssuer, user.UserID, user.Username, t.tokenDuration, t.tokenSignKey, t.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "tokenService.CreateToken").
			Int64("user_id", user.UserID).
			Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates tokenString and returns its verified claims.
func (t *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTTokenAt(tokenString, t.tokenSignKey, t.tokenIssuer, t.now)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "tokenService.ParseToken").
			Str("reason", tokenFailureKind(err)).
			Msg("token rejected")
		return models.Token{}, err
	}

	return token, nil
}

func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenMissingClaims):
		return "missing_claims"
	default:
		return "invalid"
	}
}
