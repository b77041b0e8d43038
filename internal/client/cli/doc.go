// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// A background watcher pings the server and shows online/offline state in
// the prompt.
//
// Commands:
//   - signup, confirm <id>, login, logout
//   - me, refresh
//   - users [skip] [limit], pending [skip] [limit], delete <nickname>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
