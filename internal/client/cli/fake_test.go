package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/client/client"
	"github.com/dmitrijs2005/schoolauth/internal/logging"
)

type fakeBackend struct {
	session *client.Session
	claims  client.Claims
	replies map[string]any
	errs    map[string]error
	calls   []string

	loginErr   error
	password   string
	registered api.RegisterRequest
	uploaded   []byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		session: client.NewSession(nil),
		replies: map[string]any{},
		errs:    map[string]error{},
	}
}

func (f *fakeBackend) Session() *client.Session { return f.session }

func (f *fakeBackend) DoJSON(_ context.Context, method, path string, _, out any) error {
	key := method + " " + path
	f.calls = append(f.calls, key)
	if err := f.errs[key]; err != nil {
		return err
	}
	if r, ok := f.replies[key]; ok && out != nil {
		b, _ := json.Marshal(r)
		return json.Unmarshal(b, out)
	}
	return nil
}

func (f *fakeBackend) Do(_ context.Context, r client.Request) (*client.Response, error) {
	key := r.Method + " " + r.Path
	f.calls = append(f.calls, key)
	f.uploaded = r.Body
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	b, _ := json.Marshal(f.replies[key])
	return &client.Response{StatusCode: 200, Body: b}, nil
}

func (f *fakeBackend) Register(ctx context.Context, req api.RegisterRequest) (client.TokenPair, error) {
	f.registered = req
	pair := client.TokenPair{AccessToken: "A", RefreshToken: "R"}
	return pair, f.session.Establish(ctx, pair)
}

func (f *fakeBackend) Login(ctx context.Context, _ string, password string) (client.TokenPair, error) {
	f.password = password
	if f.loginErr != nil {
		return client.TokenPair{}, f.loginErr
	}
	pair := client.TokenPair{AccessToken: "A", RefreshToken: "R"}
	return pair, f.session.Establish(ctx, pair)
}

func (f *fakeBackend) Refresh(context.Context) (client.TokenPair, error) {
	f.calls = append(f.calls, "refresh")
	return client.TokenPair{AccessToken: "B"}, nil
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	return f.session.Invalidate(ctx)
}

func (f *fakeBackend) Claims() (client.Claims, error) {
	if f.session.State() == client.StateUnauthenticated {
		return client.Claims{}, client.ErrNotAuthenticated
	}
	return f.claims, nil
}

// runScript feeds input to a fresh App and returns everything it printed.
func runScript(t *testing.T, b *fakeBackend, input string) string {
	t.Helper()
	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	var out bytes.Buffer
	app := newApp(b, NewPrompter(strings.NewReader(input), &out, 0), &out, logging.Discard())
	app.openFile = func(name string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("x,y\n1,2")), nil
	}
	app.Run(context.Background())
	return out.String()
}
