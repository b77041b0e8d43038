// Package auth holds the credential verifier and the bearer token service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates signed access tokens. It keeps no state
// besides its key, so any instance sharing the secret accepts the same tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenService builds a service for an HMAC algorithm (HS256, HS384 or
// HS512). Tokens issued with Issue live for ttl.
func NewTokenService(secret []byte, algorithm string, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty token secret")
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
	}

	return &TokenService{secret: secret, method: method, ttl: ttl}, nil
}

// Issue signs a token for subjectID with the configured lifetime.
func (s *TokenService) Issue(subjectID string) (string, error) {
	return s.IssueWithTTL(subjectID, s.ttl)
}

// IssueWithTTL signs a token for subjectID expiring ttl from now.
func (s *TokenService) IssueWithTTL(subjectID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(s.secret)
}

// Validate checks the signature and expiry of token and returns its subject.
// Expired tokens yield common.ErrExpiredToken; anything else that fails is
// common.ErrMalformedToken.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrExpiredToken
		}
		return "", common.ErrMalformedToken
	}

	if claims.Subject == "" {
		return "", common.ErrMalformedToken
	}

	return claims.Subject, nil
}
