package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by every identity token.
//
// The subject ("sub") holds the user ID as a base-10 string, the custom
// "username" claim holds the login name. Both are required for a token to
// be accepted.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
}

// GetUserID parses the subject claim as an int64 user identifier.
func (c *Claims) GetUserID() (int64, error) {
	userIDString, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Token is an issued or verified identity token.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) that travels in query strings, form fields and
// Authorization headers. UserID and Username are the verified claims.
type Token struct {
	SignedString string    `json:"access_token"`
	UserID       int64     `json:"-"`
	Username     string    `json:"-"`
	ExpiresAt    time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
