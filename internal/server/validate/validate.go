// Package validate classifies raw user input: emails, nicknames, passwords
// and record identifiers.
package validate

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/google/uuid"
)

const (
	NicknameMinLen = 4
	NicknameMaxLen = 30
	PasswordMinLen = 8
	PasswordMaxLen = 100
)

var (
	nicknameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	passwordRe = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-={}\[\]|;:'",.<>/?]+$`)
)

// CheckEmail returns the lowercased address or common.ErrInvalidEmail.
// Display-name forms such as "Bob <bob@x.com>" are rejected.
func CheckEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return "", common.ErrInvalidEmail
	}
	return strings.ToLower(email), nil
}

// IsEmail reports whether s would pass CheckEmail.
func IsEmail(s string) bool {
	_, err := CheckEmail(s)
	return err == nil
}

// CheckNickname returns common.ErrInvalidNickname unless nickname is 4 to 30
// characters of letters, digits, '_' or '-'.
func CheckNickname(nickname string) error {
	if len(nickname) < NicknameMinLen || len(nickname) > NicknameMaxLen || !nicknameRe.MatchString(nickname) {
		return common.ErrInvalidNickname
	}
	return nil
}

// CheckPassword returns common.ErrInvalidPassword unless password is 8 to 100
// characters drawn from letters, digits and common punctuation.
func CheckPassword(password string) error {
	if len(password) < PasswordMinLen || len(password) > PasswordMaxLen || !passwordRe.MatchString(password) {
		return common.ErrInvalidPassword
	}
	return nil
}

// ParseID returns the canonical form of a record id or common.ErrInvalidIdentifier.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrInvalidIdentifier
	}
	return u.String(), nil
}
