package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// AdminKeyHeaderName carries the static key guarding administrative routes.
const AdminKeyHeaderName = "X-Admin-Key"

// TokenTypeBearer is the token_type reported alongside every issued token.
const TokenTypeBearer = "bearer"
