package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("wrong arguments")

// Signup prompts for email, nickname and password and starts a registration.
// The server answers only after the confirmation email has been sent.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	nickname, err := getSimpleText(a.reader, "Enter nickname", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.api.Signup(ctx, email, nickname, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Check your mailbox to finish registration.")
	return nil
}

// Confirm finishes a registration by id (the last segment of the emailed
// link) and keeps the returned token.
func (a *App) Confirm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: confirm <id>")
		return errUsage
	}

	data, err := a.api.Confirm(ctx, args[0])
	if err != nil {
		return err
	}

	tok := gjson.GetBytes(data, "access_token").String()
	if tok == "" {
		return fmt.Errorf("response has no access_token")
	}
	a.token = tok
	return a.loadUserName(ctx)
}

// Login prompts for a nickname or email plus password and keeps the token.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter nickname or email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	tok, err := a.api.Login(ctx, login, string(password))
	if err != nil {
		return err
	}
	a.token = tok
	return a.loadUserName(ctx)
}

func (a *App) Logout(context.Context) error {
	a.token = ""
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Me prints the current account.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	data, err := a.api.Me(ctx, a.token)
	if err != nil {
		return err
	}
	a.printJSON(data)
	return nil
}

// Refresh swaps the current token for a new one.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	tok, err := a.api.RefreshToken(ctx, a.token)
	if err != nil {
		return err
	}
	a.token = tok
	fmt.Fprintln(a.out, "Token refreshed.")
	return nil
}

var errNotLoggedIn = errors.New("not logged in")

func (a *App) loadUserName(ctx context.Context) error {
	data, err := a.api.Me(ctx, a.token)
	if err != nil {
		return err
	}
	a.userName = gjson.GetBytes(data, "nickname").String()
	fmt.Fprintf(a.out, "Logged in as %s.\n", a.userName)
	return nil
}
