package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/client/client"
)

type call struct {
	Method string
	Path   string
	In     any
}

// fakeCaller records calls and answers with a canned JSON body or error.
type fakeCaller struct {
	calls    []call
	requests []client.Request
	reply    any
	err      error

	registered api.RegisterRequest
	loginEmail string
	loginPass  string
	refreshed  int
	loggedOut  int
	claims     client.Claims
}

func (f *fakeCaller) DoJSON(_ context.Context, method, path string, in, out any) error {
	f.calls = append(f.calls, call{Method: method, Path: path, In: in})
	if f.err != nil {
		return f.err
	}
	if out != nil && f.reply != nil {
		b, _ := json.Marshal(f.reply)
		return json.Unmarshal(b, out)
	}
	return nil
}

func (f *fakeCaller) Do(_ context.Context, r client.Request) (*client.Response, error) {
	f.requests = append(f.requests, r)
	if f.err != nil {
		return nil, f.err
	}
	b, _ := json.Marshal(f.reply)
	return &client.Response{StatusCode: 200, Body: b}, nil
}

func (f *fakeCaller) Register(_ context.Context, req api.RegisterRequest) (client.TokenPair, error) {
	f.registered = req
	return client.TokenPair{AccessToken: "A"}, f.err
}

func (f *fakeCaller) Login(_ context.Context, email, password string) (client.TokenPair, error) {
	f.loginEmail, f.loginPass = email, password
	return client.TokenPair{AccessToken: "A"}, f.err
}

func (f *fakeCaller) Refresh(context.Context) (client.TokenPair, error) {
	f.refreshed++
	return client.TokenPair{AccessToken: "B"}, f.err
}

func (f *fakeCaller) Logout(context.Context) error {
	f.loggedOut++
	return f.err
}

func (f *fakeCaller) Claims() (client.Claims, error) {
	return f.claims, f.err
}
