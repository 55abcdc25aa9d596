package cli

import (
	"errors"

	"github.com/dmitrijs2005/schoolauth/internal/client/client"
)

// errorClass names the class of err for display. The order matters: a
// rejected refresh token matches both it and authentication expired.
func errorClass(err error) string {
	switch {
	case errors.Is(err, errUsage):
		return "usage"
	case errors.Is(err, client.ErrNotAuthenticated):
		return "not authenticated"
	case errors.Is(err, client.ErrRefreshTokenInvalid):
		return "refresh token invalid"
	case errors.Is(err, client.ErrAuthenticationExpired):
		return "authentication expired"
	case errors.Is(err, client.ErrAuthenticationFailed):
		return "authentication failed"
	case errors.Is(err, client.ErrAuthorizationDenied):
		return "authorization denied"
	case errors.Is(err, client.ErrValidationFailed):
		return "validation failed"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	case errors.Is(err, client.ErrConflict):
		return "conflict"
	case errors.Is(err, client.ErrNetwork):
		return "network"
	case errors.Is(err, client.ErrMalformedTokenResponse):
		return "bad server response"
	case errors.Is(err, client.ErrUnexpectedStatus):
		return "server error"
	default:
		return "error"
	}
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, client.ErrNotAuthenticated),
		errors.Is(err, client.ErrAuthenticationExpired),
		errors.Is(err, client.ErrRefreshTokenInvalid):
		return "Please log in again (login)."
	case errors.Is(err, client.ErrAuthorizationDenied):
		return "Your role does not allow this operation."
	case errors.Is(err, client.ErrNetwork):
		return "The server is unreachable; check the address (-a) and try again."
	default:
		return ""
	}
}
