package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Confirm(ctx context.Context, args []string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Refresh(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Pending(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on context cancellation, or when the user types
// "exit" or "quit".
//
//	Always:
//	  - help                      show available commands
//	  - signup                    register an account (sends a confirmation email)
//	  - confirm <id>              finish registration and log in
//	  - login                     authenticate
//	  - users [skip] [limit]      list confirmed accounts (admin key)
//	  - pending [skip] [limit]    list unconfirmed registrations (admin key)
//	  - delete <nickname>         remove an account (admin key)
//	  - exit | quit               leave the program
//
//	Logged in:
//	  - me                        show the current account
//	  - refresh                   exchange the token for a fresh one
//	  - logout                    forget the token
//
// Command errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ga %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, refresh, logout, users, pending, delete, exit")
			} else {
				printlnFn("Available commands: signup, confirm, login, users, pending, delete, exit")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "confirm":
			cmdErr = a.Confirm(ctx, args)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "me":
			cmdErr = a.Me(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "users":
			cmdErr = a.Users(ctx, args)

		case "pending":
			cmdErr = a.Pending(ctx, args)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
