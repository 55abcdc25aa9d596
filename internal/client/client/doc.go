// Package client is the session-token authentication client for the school
// backend.
//
// # Overview
//
//  1. Token issuance: Register and Login exchange credentials for a TokenPair
//     and establish the Session.
//  2. Bearer attachment: Do sends a request with "Authorization: Bearer <access>".
//  3. Refresh-and-retry: when the backend answers 401, the refresh token is
//     exchanged exactly once and the original request is replayed exactly once.
//     A second 401 surfaces ErrAuthenticationExpired; nothing loops.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     optional SQLite token store used by the CLI.
//
// # Session states
//
//	Unauthenticated -> Authenticated(pair) -> Refreshing -> Authenticated(new pair)
//	Authenticated | Refreshing -> Unauthenticated   on ErrRefreshTokenInvalid
//
// # Error Handling
//
// Every failure is returned; match classes with errors.Is against the
// sentinels in errors.go and read HTTP details with errors.As(*APIError).
//
// # Concurrency
//
// HTTPClient and Session are safe for concurrent use. Refreshes are
// serialised: a caller that finds the pair already rotated reuses it.
package client
