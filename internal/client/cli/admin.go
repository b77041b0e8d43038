package cli

import (
	"context"
	"fmt"
	"strconv"
)

const defaultLimit = 100

// Users lists confirmed accounts: users [skip] [limit].
func (a *App) Users(ctx context.Context, args []string) error {
	skip, limit, err := a.pageArgs("users", args)
	if err != nil {
		return err
	}
	data, err := a.api.ListAccounts(ctx, skip, limit)
	if err != nil {
		return err
	}
	a.printJSON(data)
	return nil
}

// Pending lists registrations awaiting confirmation: pending [skip] [limit].
func (a *App) Pending(ctx context.Context, args []string) error {
	skip, limit, err := a.pageArgs("pending", args)
	if err != nil {
		return err
	}
	data, err := a.api.ListPending(ctx, skip, limit)
	if err != nil {
		return err
	}
	a.printJSON(data)
	return nil
}

// Delete removes a confirmed account: delete <nickname>.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <nickname>")
		return errUsage
	}
	if err := a.api.DeleteAccount(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s.\n", args[0])
	return nil
}

func (a *App) pageArgs(cmd string, args []string) (int, int, error) {
	skip, limit := 0, defaultLimit
	if len(args) > 2 {
		fmt.Fprintf(a.out, "Usage: %s [skip] [limit]\n", cmd)
		return 0, 0, errUsage
	}

	var err error
	if len(args) > 0 {
		if skip, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, fmt.Errorf("skip: %w", err)
		}
	}
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, fmt.Errorf("limit: %w", err)
		}
	}
	return skip, limit, nil
}
