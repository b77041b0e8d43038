package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

type fakeAPI struct {
	calls []string

	signupArgs []string
	loginArgs  []string
	token      string
	pingErr    error
	err        error
	body       json.RawMessage
	pageArgs   [2]int
}

func (f *fakeAPI) Signup(_ context.Context, email, nickname, password string) error {
	f.calls = append(f.calls, "signup")
	f.signupArgs = []string{email, nickname, password}
	return f.err
}

func (f *fakeAPI) Confirm(_ context.Context, id string) (json.RawMessage, error) {
	f.calls = append(f.calls, "confirm "+id)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"access_token":"` + f.token + `","token_type":"bearer"}`), nil
}

func (f *fakeAPI) Login(_ context.Context, login, password string) (string, error) {
	f.calls = append(f.calls, "login")
	f.loginArgs = []string{login, password}
	return f.token, f.err
}

func (f *fakeAPI) RefreshToken(_ context.Context, token string) (string, error) {
	f.calls = append(f.calls, "refresh "+token)
	return token + "-new", f.err
}

func (f *fakeAPI) Me(_ context.Context, token string) (json.RawMessage, error) {
	f.calls = append(f.calls, "me "+token)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"nickname":"alice","email":"alice@example.org"}`), nil
}

func (f *fakeAPI) ListAccounts(_ context.Context, skip, limit int) (json.RawMessage, error) {
	f.calls = append(f.calls, "users")
	f.pageArgs = [2]int{skip, limit}
	return f.body, f.err
}

func (f *fakeAPI) ListPending(_ context.Context, skip, limit int) (json.RawMessage, error) {
	f.calls = append(f.calls, "pending")
	f.pageArgs = [2]int{skip, limit}
	return f.body, f.err
}

func (f *fakeAPI) DeleteAccount(_ context.Context, nickname string) error {
	f.calls = append(f.calls, "delete "+nickname)
	return f.err
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

// newTestApp builds an App reading input and writing to a buffer. Passwords
// are read as plain lines since the input is not a terminal.
func newTestApp(t *testing.T, api *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false)
	out := &bytes.Buffer{}
	cfg := &config.Config{OnlineCheckInterval: time.Hour}
	return newApp(cfg, api, strings.NewReader(input), out), out
}
