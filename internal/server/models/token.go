package models

import "time"

// RefreshToken is a server-stored, single-use refresh token.
type RefreshToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// RevokedToken blacklists an access token by its jti until it would have
// expired anyway.
type RevokedToken struct {
	JTI       string
	ExpiresAt time.Time
}
