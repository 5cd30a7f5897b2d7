package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Identity is the caller identity embedded in an auth token: the user ID and
// whether the account carries admin privilege. It is all a guard needs to
// make authorization decisions; handlers read it from the request context.
type Identity struct {
	UserID  uint64
	IsAdmin bool
}

// ErrInvalidToken is returned by ParseAuthToken for any token that cannot be
// verified: bad signature, wrong algorithm, or malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// NewAuthToken builds and signs an HS256 JWT carrying the user's identity.
// Claims are sub (user ID), admin (privilege flag) and iat. Tokens carry no
// exp claim: they are valid indefinitely once issued.
func NewAuthToken(secret string, userID uint64, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"admin": isAdmin,
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuthToken verifies the signature of a token string and extracts the
// embedded identity. Only HMAC-signed tokens are accepted; anything else is
// rejected with ErrInvalidToken.
func ParseAuthToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64) // JSON numbers decode as float64
	if !ok || sub <= 0 {
		return Identity{}, ErrInvalidToken
	}
	admin, _ := claims["admin"].(bool)
	return Identity{UserID: uint64(sub), IsAdmin: admin}, nil
}
