package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when a hasher is built with a cost outside
// bcrypt's accepted range.
const DefaultBcryptCost = 12

// bcrypt only looks at the first 72 bytes of a password.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords with bcrypt. Every hash carries
// its own random salt and cost, so Verify needs nothing but the stored string.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     string
}

// NewPasswordHasher returns a hasher using cost, falling back to
// DefaultBcryptCost when cost is out of range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the self-describing bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether candidate matches hash. A malformed hash never matches.
func (h *PasswordHasher) Verify(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(candidate)) == nil
}

// DummyHash is a valid hash of a random secret. Verifying against it costs the
// same as a real check, which keeps unknown logins indistinguishable by timing.
func (h *PasswordHasher) DummyHash() string {
	h.dummyOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte("gophauth-dummy-password"), h.cost)
		if err == nil {
			h.dummy = string(b)
		}
	})
	return h.dummy
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
