package client

import (
	"context"
	"encoding/json"
)

// Client is the API surface the CLI needs. Methods returning json.RawMessage
// hand back the response body untouched so the caller can render it.
type Client interface {
	Signup(ctx context.Context, email, nickname, password string) error
	Confirm(ctx context.Context, id string) (json.RawMessage, error)
	Login(ctx context.Context, login, password string) (string, error)
	RefreshToken(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, token string) (json.RawMessage, error)
	ListAccounts(ctx context.Context, skip, limit int) (json.RawMessage, error)
	ListPending(ctx context.Context, skip, limit int) (json.RawMessage, error)
	DeleteAccount(ctx context.Context, nickname string) error
	Ping(ctx context.Context) error
}
