package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"too large", fmt.Errorf("%w: file exceeds 10 bytes", common.ErrorTooLarge), http.StatusRequestEntityTooLarge},
		{"validation", fmt.Errorf("%w: title is required", common.ErrorValidation), http.StatusBadRequest},
		{"unauthorized", common.ErrorUnauthorized, http.StatusUnauthorized},
		{"revoked", common.ErrTokenRevoked, http.StatusUnauthorized},
		{"refresh invalid", common.ErrRefreshTokenInvalid, http.StatusUnauthorized},
		{"forbidden", common.ErrorForbidden, http.StatusForbidden},
		{"not found", common.ErrorNotFound, http.StatusNotFound},
		{"exists", common.ErrorAlreadyExists, http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestFail_TooLargeEnvelope(t *testing.T) {
	h := &Handler{logger: logging.Discard()}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, api.PathBodyUpload, nil)

	h.fail(rec, req, fmt.Errorf("%w: file exceeds 10 bytes", common.ErrorTooLarge))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, body.Code)
	assert.Contains(t, body.Message, "payload too large")
}
