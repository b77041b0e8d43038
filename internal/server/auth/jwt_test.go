package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, secret string) *TokenService {
	t.Helper()
	s, err := NewTokenService([]byte(secret), "HS256", time.Hour)
	require.NoError(t, err)
	return s
}

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	s := newService(t, "super-secret")

	tok, err := s.Issue("user-123")
	require.NoError(t, err)

	sub, err := s.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	s := newService(t, "secret")

	tok, err := s.IssueWithTTL("u1", -1*time.Second)
	require.NoError(t, err)

	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, common.ErrExpiredToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newService(t, "right-secret").Issue("u2")
	require.NoError(t, err)

	_, err = newService(t, "wrong-secret").Validate(tok)
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestValidate_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := newService(t, "k").Validate("not.a.jwt")
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestValidate_OtherAlgorithmRejected(t *testing.T) {
	t.Parallel()

	s512, err := NewTokenService([]byte("k"), "HS512", time.Hour)
	require.NoError(t, err)
	tok, err := s512.Issue("u3")
	require.NoError(t, err)

	_, err = newService(t, "k").Validate(tok)
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestValidate_MissingClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	s := newService(t, "k")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u4"}).SignedString(secret)
	require.NoError(t, err)
	_, err = s.Validate(noExp)
	assert.ErrorIs(t, err, common.ErrMalformedToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = s.Validate(noSub)
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestNewTokenService_Rejects(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService([]byte("k"), "RS256", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService([]byte("k"), "none", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(nil, "HS256", time.Hour)
	assert.Error(t, err)
}
