package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/logging"
	"github.com/dmitrijs2005/schoolauth/internal/server/auth"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/schoolauth/internal/server/services"
	"github.com/dmitrijs2005/schoolauth/internal/server/storage"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@school.test"
	adminPassword = "admin-pw"
)

type testAPI struct {
	srv       *httptest.Server
	users     *services.UserService
	storage   *storage.MemoryStorage
	refreshes atomic.Int32
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager()
	tx := dbx.NopTransactor{}
	issuer := auth.NewIssuer([]byte("test-secret"), "school-api", time.Hour)
	us := services.NewUserService(tx, rm, issuer, 24*time.Hour)
	st := storage.NewMemoryStorage()

	_, err := us.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	h := NewHandler(us,
		services.NewOfferService(tx, rm),
		services.NewCourseService(tx, rm),
		services.NewUploadService(st),
		logging.Discard(),
	)

	ta := &testAPI{users: us, storage: st}
	router := h.Router()
	ta.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.PathRefreshToken {
			ta.refreshes.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ta.srv.Close)
	return ta
}

func (ta *testAPI) post(t *testing.T, path, body, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ta.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (ta *testAPI) put(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, ta.srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ta.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (ta *testAPI) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ta.srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
