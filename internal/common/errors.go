// Package common defines shared constants and sentinel errors used across
// the repository, service and transport layers of gophauth. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal  = errors.New("internal error")
	ErrorForbidden = errors.New("forbidden")

	// Input classification errors.
	ErrInvalidEmail      = errors.New("email is not valid")
	ErrInvalidNickname   = errors.New("nickname is not valid")
	ErrInvalidPassword   = errors.New("password is not valid")
	ErrInvalidIdentifier = errors.New("identifier is not valid")
	ErrInvalidPagination = errors.New("skip and limit must not be negative")

	// Registration errors.
	ErrEmailTaken         = errors.New("email already registered")
	ErrNicknameTaken      = errors.New("nickname already registered")
	ErrPendingNotFound    = errors.New("no unconfirmed user with such id, probably already confirmed")
	ErrConflictOnConfirm  = errors.New("user with such nickname or email has appeared, try another nickname or email")
	ErrNotificationFailed = errors.New("confirmation email could not be sent")

	// Authentication errors. ErrInvalidCredentials deliberately covers both
	// "no such user" and "wrong password".
	ErrInvalidCredentials = errors.New("wrong email/nickname or password")

	// Token lifecycle errors.
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("could not validate credentials")

	// Account lookup errors.
	ErrAccountNotFound  = errors.New("account not found")
	ErrNicknameNotFound = errors.New("nickname is not registered")
)
