// Package auth provides password hashing and API token issuance.
//
// Tokens are stateless HS256 JWTs carrying the user ID in the subject
// claim; passwords are stored as bcrypt hashes.
package auth

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codemetry/codemetry/internal/errors"
)

const issuer = "codemetry"

// Token validation errors
var (
	// ErrInvalidToken is returned for malformed, tampered or misissued tokens
	ErrInvalidToken = stderrors.New("invalid token")

	// ErrTokenExpired is returned for well-formed tokens past their expiry
	ErrTokenExpired = stderrors.New("token expired")
)

// TokenService signs and validates API tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service. The secret must be at least
// 16 bytes; shorter secrets make HS256 brute-forceable.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.InvalidFieldError("jwt secret", "must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.InvalidFieldError("token ttl", ttl.String())
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the token payload, user ID in the subject claim
type claims struct {
	jwt.RegisteredClaims
}

// Issue signs a new token for the user and returns it with its expiry
func (s *TokenService) Issue(userID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.WrapWithContext(err, "sign token")
	}
	return signed, expiresAt, nil
}

// Validate verifies a token string and returns the user ID it was issued
// for. Restricting valid methods to HS256 blocks algorithm confusion.
func (s *TokenService) Validate(tokenStr string) (uint, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(_ *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
