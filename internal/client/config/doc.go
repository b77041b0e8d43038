// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. GOPHAUTH_CLIENT_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string     base URL of the backend server
//	-k string     admin key for administrative commands
//	-t duration   per-request timeout
//	-i int        online status check interval (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "admin_key": "",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
