// Package common contains shared constants and sentinel errors used across
// the client and the reference server.
package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix expected by the API.
const BearerScheme = "Bearer"

// Roles carried in the "role" claim of access tokens.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
