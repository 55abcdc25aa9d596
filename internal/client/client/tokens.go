package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenPair is the credential pair owned by one session. It is replaced
// wholesale on refresh or logout and never modified in place.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// Expiry of the access token; zero when unknown.
	Expiry time.Time
}

// IsZero reports whether the pair holds no access token.
func (p TokenPair) IsZero() bool {
	return p.AccessToken == ""
}

// OAuth2 exposes the pair as an *oauth2.Token with the bearer type.
func (p TokenPair) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  p.AccessToken,
		TokenType:    common.BearerScheme,
		RefreshToken: p.RefreshToken,
		Expiry:       p.Expiry,
	}
}

// ParseTokenResponse is the single parser for register, login and refresh
// answers. It accepts "accessToken" or the legacy "token" field and fails
// with ErrMalformedTokenResponse when neither is present.
func ParseTokenResponse(body []byte) (TokenPair, error) {
	var r api.TokenResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrMalformedTokenResponse, err)
	}

	access := r.AccessToken
	if access == "" {
		access = r.Token
	}
	if access == "" {
		return TokenPair{}, fmt.Errorf("%w: neither accessToken nor token present", ErrMalformedTokenResponse)
	}
	if r.TokenType != "" && !strings.EqualFold(r.TokenType, common.BearerScheme) {
		return TokenPair{}, fmt.Errorf("%w: unsupported token type %q", ErrMalformedTokenResponse, r.TokenType)
	}

	pair := TokenPair{AccessToken: access, RefreshToken: r.RefreshToken}
	if claims, err := DecodeClaims(access); err == nil && !claims.ExpiresAt.IsZero() {
		pair.Expiry = claims.ExpiresAt
	} else if r.ExpiresIn > 0 {
		pair.Expiry = time.Now().Add(time.Duration(r.ExpiresIn) * time.Millisecond)
	}
	return pair, nil
}

// Claims is the client-side view of an access token.
type Claims struct {
	Subject   string
	Role      string
	UserID    string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	UserID string `json:"uid"`
}

// DecodeClaims reads the claims of a JWT access token without verifying its
// signature. The client cannot verify it and only uses it for display.
func DecodeClaims(token string) (Claims, error) {
	var c accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Claims{}, fmt.Errorf("decode access token: %w", err)
	}

	out := Claims{Subject: c.Subject, Role: c.Role, UserID: c.UserID}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	return out, nil
}
