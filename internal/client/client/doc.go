// Package client talks to the registration backend over its JSON HTTP API.
//
// HTTPClient implements Client. Admin calls send the configured key in the
// X-Admin-Key header; calls made on behalf of a user send the access token
// as a Bearer credential.
//
// # Error Handling
//
// Non-2xx responses become *APIError, carrying the status and the server's
// "detail" text. APIError matches the sentinels ErrUnauthorized, ErrForbidden,
// ErrNotFound, ErrConflict and ErrUnavailable with errors.Is. Transport
// failures are wrapped with ErrUnavailable.
package client
