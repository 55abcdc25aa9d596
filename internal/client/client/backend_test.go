package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/schoolauth/internal/api"
)

// fakeBackend issues opaque tokens and rotates refresh tokens on use.
type fakeBackend struct {
	mu sync.Mutex

	users   map[string]string
	access  map[string]string // access token -> email
	refresh map[string]string // refresh token -> email
	seq     int

	refreshCalls  int
	refreshStatus int // forced status for refresh-token, 0 = normal
	alwaysReject  bool
	logoutStatus  int

	profileCalls int
	echoBodies   []string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{
		users:   map[string]string{"student@school.test": "secret"},
		access:  map[string]string{},
		refresh: map[string]string{},
	}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *fakeBackend) issue(email string) api.TokenResponse {
	b.seq++
	a := fmt.Sprintf("access-%d", b.seq)
	r := fmt.Sprintf("refresh-%d", b.seq)
	b.access[a] = email
	b.refresh[r] = email
	return api.TokenResponse{AccessToken: a, RefreshToken: r, TokenType: "Bearer", ExpiresIn: 900000}
}

func (b *fakeBackend) bearer(r *http.Request) (string, bool) {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || b.alwaysReject {
		return "", false
	}
	email, ok := b.access[tok]
	return email, ok
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, api.ErrorResponse{Message: msg, Code: code})
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.URL.Path {
	case api.PathLogin:
		var req api.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if pw, ok := b.users[req.Email]; !ok || pw != req.Password {
			writeErr(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeJSON(w, http.StatusOK, b.issue(req.Email))

	case api.PathRegister:
		var req api.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if _, ok := b.users[req.Email]; ok {
			writeErr(w, http.StatusBadRequest, "Email already in use")
			return
		}
		b.users[req.Email] = req.Password
		tr := b.issue(req.Email)
		// legacy spelling
		tr.Token, tr.AccessToken = tr.AccessToken, ""
		writeJSON(w, http.StatusCreated, tr)

	case api.PathRefreshToken:
		b.refreshCalls++
		if b.refreshStatus != 0 {
			writeErr(w, b.refreshStatus, "forced")
			return
		}
		var req api.RefreshTokenRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		email, ok := b.refresh[req.RefreshToken]
		if !ok {
			writeErr(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		delete(b.refresh, req.RefreshToken)
		writeJSON(w, http.StatusOK, b.issue(email))

	case api.PathLogout:
		if b.logoutStatus != 0 {
			writeErr(w, b.logoutStatus, "logout failed")
			return
		}
		var req api.LogoutRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		delete(b.access, req.AccessToken)
		delete(b.refresh, req.RefreshToken)
		writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Logged out", Success: true})

	case api.PathProfile:
		b.profileCalls++
		email, ok := b.bearer(r)
		if !ok {
			writeErr(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, api.Profile{Email: email, Role: "USER"})

	case "/api/echo":
		body, _ := io.ReadAll(r.Body)
		b.echoBodies = append(b.echoBodies, string(body))
		if _, ok := b.bearer(r); !ok {
			writeErr(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)

	case "/api/admin":
		if _, ok := b.bearer(r); !ok {
			writeErr(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeErr(w, http.StatusForbidden, "Access denied")

	default:
		code := http.StatusNotFound
		if _, err := fmt.Sscanf(r.URL.Path, "/api/status/%d", &code); err == nil {
			if _, ok := b.bearer(r); !ok {
				writeErr(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
		}
		writeErr(w, code, http.StatusText(code))
	}
}

func (b *fakeBackend) counts() (refresh, profile int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshCalls, b.profileCalls
}
