package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registerBody = `{"firstname":"Ann","lastname":"Lee","email":"ann@school.test","password":"pw","confirmPassword":"pw","rgpdAccepted":true}`

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestRegister(t *testing.T) {
	ta := newTestAPI(t)

	resp := ta.post(t, api.PathRegister, registerBody, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tr := decode[api.TokenResponse](t, resp)
	assert.NotEmpty(t, tr.AccessToken)
	assert.NotEmpty(t, tr.RefreshToken)
	assert.Equal(t, common.BearerScheme, tr.TokenType)
	assert.Equal(t, int64(3600000), tr.ExpiresIn)

	dup := ta.post(t, api.PathRegister, registerBody, "")
	require.Equal(t, http.StatusBadRequest, dup.StatusCode)
	env := decode[api.ErrorResponse](t, dup)
	assert.Equal(t, http.StatusBadRequest, env.Code)
	assert.NotZero(t, env.Timestamp)
	assert.NotEmpty(t, env.Message)
}

func TestRegister_Validation(t *testing.T) {
	ta := newTestAPI(t)

	for name, body := range map[string]string{
		"mismatch":   `{"email":"b@school.test","password":"a","confirmPassword":"b","rgpdAccepted":true}`,
		"no consent": `{"email":"b@school.test","password":"a"}`,
		"not json":   `{`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := ta.post(t, api.PathRegister, body, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	ta := newTestAPI(t)
	ta.post(t, api.PathRegister, registerBody, "")

	bad := ta.post(t, api.PathLogin, `{"email":"ann@school.test","password":"nope"}`, "")
	require.Equal(t, http.StatusUnauthorized, bad.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, decode[api.ErrorResponse](t, bad).Code)

	ok := ta.post(t, api.PathLogin, `{"email":"ann@school.test","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, ok.StatusCode)
	tr := decode[api.TokenResponse](t, ok)

	profile := ta.get(t, api.PathProfile, tr.AccessToken)
	require.Equal(t, http.StatusOK, profile.StatusCode)
	p := decode[api.Profile](t, profile)
	assert.Equal(t, "ann@school.test", p.Email)
	assert.Equal(t, common.RoleUser, p.Role)
}

func TestRefreshToken_RotationAndReuse(t *testing.T) {
	ta := newTestAPI(t)
	tr := decode[api.TokenResponse](t, ta.post(t, api.PathRegister, registerBody, ""))

	first := ta.post(t, api.PathRefreshToken, `{"refreshToken":"`+tr.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, first.StatusCode)
	rotated := decode[api.TokenResponse](t, first)
	assert.NotEqual(t, tr.RefreshToken, rotated.RefreshToken)

	reuse := ta.post(t, api.PathRefreshToken, `{"refreshToken":"`+tr.RefreshToken+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, reuse.StatusCode)

	unknown := ta.post(t, api.PathRefreshToken, `{"refreshToken":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
}

func TestBearer(t *testing.T) {
	ta := newTestAPI(t)

	assert.Equal(t, http.StatusUnauthorized, ta.get(t, api.PathProfile, "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, ta.get(t, api.PathProfile, "invalid.token.here").StatusCode)

	tr := decode[api.TokenResponse](t, ta.post(t, api.PathRegister, registerBody, ""))

	logout := ta.post(t, api.PathLogout, `{"refreshToken":"`+tr.RefreshToken+`"}`, tr.AccessToken)
	require.Equal(t, http.StatusOK, logout.StatusCode)
	assert.True(t, decode[api.MessageResponse](t, logout).Success)

	assert.Equal(t, http.StatusUnauthorized, ta.get(t, api.PathProfile, tr.AccessToken).StatusCode)
	assert.Equal(t, http.StatusUnauthorized,
		ta.post(t, api.PathRefreshToken, `{"refreshToken":"`+tr.RefreshToken+`"}`, "").StatusCode)
}

func TestRoles(t *testing.T) {
	ta := newTestAPI(t)
	user := decode[api.TokenResponse](t, ta.post(t, api.PathRegister, registerBody, ""))
	admin := decode[api.TokenResponse](t, ta.post(t, api.PathLogin, `{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`, ""))

	offer := `{"title":"Basic","price":10,"durationHours":1}`
	assert.Equal(t, http.StatusForbidden, ta.post(t, api.PathOffers, offer, user.AccessToken).StatusCode)
	assert.Equal(t, http.StatusCreated, ta.post(t, api.PathOffers, offer, admin.AccessToken).StatusCode)

	assert.Equal(t, http.StatusForbidden, ta.get(t, api.PathOffers+"/user/someone-else/pending", user.AccessToken).StatusCode)
	assert.Equal(t, http.StatusOK, ta.get(t, api.PathOffers+"/user/someone-else/pending", admin.AccessToken).StatusCode)
}

func TestNotFoundEnvelope(t *testing.T) {
	ta := newTestAPI(t)
	resp := ta.get(t, "/api/nowhere", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, decode[api.ErrorResponse](t, resp).Code)

	health := ta.get(t, api.PathHealth, "")
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestUpload_MissingField(t *testing.T) {
	ta := newTestAPI(t)
	tr := decode[api.TokenResponse](t, ta.post(t, api.PathRegister, registerBody, ""))

	resp := ta.post(t, api.PathBodyUpload, `{}`, tr.AccessToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOfferListings(t *testing.T) {
	ta := newTestAPI(t)
	user := decode[api.TokenResponse](t, ta.post(t, api.PathRegister, registerBody, ""))
	admin := decode[api.TokenResponse](t, ta.post(t, api.PathLogin, `{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`, ""))
	me := decode[api.Profile](t, ta.get(t, api.PathProfile, user.AccessToken))

	resp := ta.post(t, api.PathOffers, `{"title":"Month","price":10,"durationHours":720}`, admin.AccessToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	offer := decode[api.Offer](t, resp)
	assert.Equal(t, 720, offer.DurationHours)

	first := decode[api.UserOffer](t, ta.post(t, api.PathOffers+"/"+offer.ID+"/purchase", "", user.AccessToken))
	second := decode[api.UserOffer](t, ta.post(t, api.PathOffers+"/"+offer.ID+"/purchase", "", user.AccessToken))
	assert.Equal(t, first.ID, second.ID)
	assert.WithinDuration(t, first.CreatedAt.Add(720*time.Hour), first.ExpiresAt, time.Minute)

	listing := func(name string) []api.UserOffer {
		resp := ta.get(t, api.PathOffers+"/user/"+me.ID+"/"+name, user.AccessToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decode[[]api.UserOffer](t, resp)
	}
	assert.Len(t, listing("pending"), 1)

	require.Equal(t, http.StatusOK, ta.put(t, api.PathOffers+"/"+first.ID+"/approve", admin.AccessToken).StatusCode)

	assert.Empty(t, listing("pending"))
	assert.Len(t, listing("approved"), 1)
	assert.Empty(t, listing("rejected"))
	assert.Len(t, listing("purchases"), 1)

	access := decode[api.AccessResponse](t, ta.get(t, api.PathOffers+"/user/"+me.ID+"/access", user.AccessToken))
	assert.True(t, access.HasAccess)

	assert.Equal(t, http.StatusForbidden, ta.get(t, api.PathOffers+"/user/someone-else/purchases", user.AccessToken).StatusCode)
}
