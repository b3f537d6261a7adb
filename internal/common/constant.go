// Package common contains constants, sentinel errors and small helpers shared
// by the gophnotes client packages.
package common

// AccessTokenKey is the local metadata key the access token is persisted under.
const AccessTokenKey = "access_token"

// TokenSavedAtKey records when the persisted token was written (RFC 3339).
const TokenSavedAtKey = "access_token_saved_at"

// SessionEmailKey holds the email the session was opened with. Opaque
// tokens carry no identity, so the user is rebuilt from it on restore.
const SessionEmailKey = "session_email"

// AuthorizationHeaderName carries the bearer token on outbound requests.
const AuthorizationHeaderName = "Authorization"
