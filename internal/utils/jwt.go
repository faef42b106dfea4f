package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-realm/models"
	"github.com/golang-jwt/jwt/v5"
)

// Token verification failure kinds. Callers treat all of them as
// "unauthenticated"; the kind is kept for logging.
var (
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenMissingClaims = errors.New("token is missing required claims")
	ErrInvalidBearerToken = errors.New("invalid authorization header")
)

var errInvalidJWTParams = errors.New("invalid params for generating JWT Token")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for a user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a base-10 string
//   - username:        the user's login name
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// issuer, username, signKey and a positive userID are required. A
// non-positive tokenDuration is accepted so callers can mint already expired
// tokens in tests.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("auth", 42, "alice", 30*time.Minute, "secret", time.Now())
func GenerateJWTToken(issuer string, userID int64, username string, tokenDuration time.Duration, signKey string, now time.Time) (models.Token, error) {
	if issuer == "" || userID <= 0 || username == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errInvalidJWTParams
	}

	expiresAt := now.Add(tokenDuration)
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		UserID:       userID,
		Username:     username,
		ExpiresAt:    expiresAt.Truncate(time.Second),
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - HS256 as the only accepted algorithm
//   - Signature verification using the provided sign key
//   - Issuer (iss) check when tokenIssuer is not empty
//   - Expiration (exp) presence and check
//   - Subject (sub) presence and conversion to int64, username presence
//
// Every failure wraps exactly one of [ErrTokenInvalid], [ErrTokenExpired]
// or [ErrTokenMissingClaims].
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	return ValidateAndParseJWTTokenAt(tokenString, tokenSignKey, tokenIssuer, time.Now)
}

// ValidateAndParseJWTTokenAt is ValidateAndParseJWTToken with time-based
// claims checked against now instead of the wall clock.
func ValidateAndParseJWTTokenAt(tokenString, tokenSignKey, tokenIssuer string, now func() time.Time) (models.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	}
	if tokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(tokenIssuer))
	}

	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return models.Token{}, classifyJWTError(err)
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenMissingClaims, err)
	}
	if userID <= 0 {
		return models.Token{}, fmt.Errorf("%w: non-positive subject", ErrTokenMissingClaims)
	}
	if claims.Username == "" {
		return models.Token{}, fmt.Errorf("%w: empty username", ErrTokenMissingClaims)
	}

	return models.Token{
		SignedString: tokenString,
		UserID:       userID,
		Username:     claims.Username,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %w", ErrTokenMissingClaims, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidBearerToken
	}
	return parts[1], nil
}
