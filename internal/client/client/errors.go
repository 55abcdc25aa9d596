package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork is a transport-level failure (connection refused, timeout).
	ErrNetwork = errors.New("network error")
	// ErrAuthenticationFailed is a rejected login or registration.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrAuthenticationExpired means the access token was rejected and the
	// single refresh-then-retry did not help. A fresh login is required.
	ErrAuthenticationExpired = errors.New("authentication expired")
	// ErrRefreshTokenInvalid means the backend refused the refresh token
	// (expired, already rotated, malformed). A fresh login is required.
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")
	// ErrAuthorizationDenied is a valid token with an insufficient role.
	ErrAuthorizationDenied = errors.New("authorization denied")
	// ErrValidationFailed is a rejected request body.
	ErrValidationFailed = errors.New("validation failed")

	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("conflict")
	ErrUnexpectedStatus       = errors.New("unexpected status")
	ErrMalformedTokenResponse = errors.New("malformed token response")
)

// APIError carries the HTTP details of a non-2xx answer. It wraps the
// sentinel describing its class, so errors.Is works on it directly.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
	class      error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: %d %s", e.class, e.Method, e.Path, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	return e.class
}

// classifyStatus maps a non-2xx status of a domain call to its error class.
// 401 is handled by the retry logic before this is reached.
func classifyStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrAuthenticationExpired
	case http.StatusForbidden:
		return ErrAuthorizationDenied
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidationFailed
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrUnexpectedStatus
	}
}

// classifyRefreshStatus maps a non-2xx answer of the refresh endpoint.
func classifyRefreshStatus(code int) error {
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return ErrRefreshTokenInvalid
	default:
		return ErrUnexpectedStatus
	}
}
