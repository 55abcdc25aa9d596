package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/logging"
)

const defaultTimeout = 30 * time.Second

// Request is a buffered API call. Body is kept as bytes so the single retry
// after a refresh replays it unchanged.
type Request struct {
	Method      string
	Path        string
	Body        []byte
	ContentType string
}

// Response is a fully read 2xx answer.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	session   *Session
	logger    logging.Logger
	refreshMu sync.Mutex
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithSession(s *Session) Option {
	return func(c *HTTPClient) { c.session = s }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http = &http.Client{Timeout: d} }
}

func New(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.session == nil {
		c.session = NewSession(nil)
	}
	return c
}

func (c *HTTPClient) Session() *Session {
	return c.session
}

// SetTokens establishes the session with an externally obtained pair.
func (c *HTTPClient) SetTokens(ctx context.Context, pair TokenPair) error {
	return c.session.Establish(ctx, pair)
}

// Register creates an account and establishes the session with the issued pair.
func (c *HTTPClient) Register(ctx context.Context, req api.RegisterRequest) (TokenPair, error) {
	return c.issue(ctx, api.PathRegister, req)
}

// Login exchanges credentials for a pair and establishes the session.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (TokenPair, error) {
	return c.issue(ctx, api.PathLogin, api.LoginRequest{Email: email, Password: password})
}

func (c *HTTPClient) issue(ctx context.Context, path string, payload any) (TokenPair, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return TokenPair{}, err
	}
	r := Request{Method: http.MethodPost, Path: path, Body: body, ContentType: "application/json"}

	resp, err := c.send(ctx, r, TokenPair{})
	if err != nil {
		return TokenPair{}, err
	}
	if !isSuccess(resp.StatusCode) {
		return TokenPair{}, newAPIError(r, resp, ErrAuthenticationFailed)
	}

	pair, err := ParseTokenResponse(resp.Body)
	if err != nil {
		return TokenPair{}, err
	}
	if err := c.session.Establish(ctx, pair); err != nil {
		return pair, err
	}
	c.logger.Info(ctx, "session established", "path", path)
	return pair, nil
}

// ExchangeRefreshToken calls the refresh endpoint with an explicit refresh
// token. The session is not touched.
func (c *HTTPClient) ExchangeRefreshToken(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, fmt.Errorf("%w: no refresh token", ErrRefreshTokenInvalid)
	}
	body, err := json.Marshal(api.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return TokenPair{}, err
	}
	r := Request{Method: http.MethodPost, Path: api.PathRefreshToken, Body: body, ContentType: "application/json"}

	resp, err := c.send(ctx, r, TokenPair{})
	if err != nil {
		return TokenPair{}, err
	}
	if !isSuccess(resp.StatusCode) {
		return TokenPair{}, newAPIError(r, resp, classifyRefreshStatus(resp.StatusCode))
	}
	return ParseTokenResponse(resp.Body)
}

// Refresh rotates the session's pair now.
func (c *HTTPClient) Refresh(ctx context.Context) (TokenPair, error) {
	pair, ok := c.session.Tokens()
	if !ok {
		return TokenPair{}, ErrNotAuthenticated
	}
	return c.refreshSession(ctx, pair)
}

// refreshSession rotates the pair unless another caller already replaced
// stale, in which case the current pair is returned as is.
func (c *HTTPClient) refreshSession(ctx context.Context, stale TokenPair) (TokenPair, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	cur, ok := c.session.Tokens()
	if !ok {
		return TokenPair{}, ErrNotAuthenticated
	}
	if cur.AccessToken != stale.AccessToken {
		return cur, nil
	}

	cur, err := c.session.beginRefresh()
	if err != nil {
		return TokenPair{}, err
	}

	pair, err := c.ExchangeRefreshToken(ctx, cur.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenInvalid) {
			c.logger.Warn(ctx, "refresh token rejected, session cleared")
			if cerr := c.session.Invalidate(ctx); cerr != nil {
				c.logger.Error(ctx, "clear session", "error", cerr)
			}
		} else {
			c.logger.Warn(ctx, "refresh failed, keeping current pair", "error", err)
			c.session.abortRefresh()
		}
		return TokenPair{}, err
	}

	if err := c.session.Establish(ctx, pair); err != nil {
		c.logger.Error(ctx, "persist refreshed pair", "error", err)
	}
	c.logger.Debug(ctx, "access token refreshed")
	return pair, nil
}

// Do sends r with the session's bearer token. A 401 triggers one refresh
// and one replay of r. Any other non-2xx answer is returned as an error
// wrapping *APIError.
func (c *HTTPClient) Do(ctx context.Context, r Request) (*Response, error) {
	pair, ok := c.session.Tokens()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	resp, err := c.send(ctx, r, pair)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return checkStatus(r, resp)
	}

	c.logger.Debug(ctx, "access token rejected", "method", r.Method, "path", r.Path)
	fresh, err := c.refreshSession(ctx, pair)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenInvalid) || errors.Is(err, ErrNotAuthenticated) {
			return nil, fmt.Errorf("%w: %w", ErrAuthenticationExpired, err)
		}
		return nil, err
	}

	resp, err = c.send(ctx, r, fresh)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		if cerr := c.session.Invalidate(ctx); cerr != nil {
			c.logger.Error(ctx, "clear session", "error", cerr)
		}
		return nil, newAPIError(r, resp, ErrAuthenticationExpired)
	}
	return checkStatus(r, resp)
}

// DoJSON encodes in (when non-nil) as the body and decodes a 2xx answer
// into out (when non-nil).
func (c *HTTPClient) DoJSON(ctx context.Context, method, path string, in, out any) error {
	r := Request{Method: method, Path: path}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r.Body = body
		r.ContentType = "application/json"
	}

	resp, err := c.Do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Logout revokes the pair on the server and clears the session. The local
// session is cleared even when the server call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	pair, ok := c.session.Tokens()
	if !ok {
		return ErrNotAuthenticated
	}

	var serverErr error
	body, err := json.Marshal(api.LogoutRequest{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
	if err != nil {
		serverErr = err
	} else {
		r := Request{Method: http.MethodPost, Path: api.PathLogout, Body: body, ContentType: "application/json"}
		resp, err := c.send(ctx, r, pair)
		if err != nil {
			serverErr = err
		} else {
			_, serverErr = checkStatus(r, resp)
		}
	}

	clearErr := c.session.Invalidate(ctx)
	c.logger.Info(ctx, "logged out")
	return errors.Join(serverErr, clearErr)
}

// Claims decodes the current access token without verifying it.
func (c *HTTPClient) Claims() (Claims, error) {
	pair, ok := c.session.Tokens()
	if !ok {
		return Claims{}, ErrNotAuthenticated
	}
	return DecodeClaims(pair.AccessToken)
}

func (c *HTTPClient) send(ctx context.Context, r Request, pair TokenPair) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	req.Header.Set("Accept", "application/json")
	if !pair.IsZero() {
		pair.OAuth2().SetAuthHeader(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func checkStatus(r Request, resp *Response) (*Response, error) {
	if isSuccess(resp.StatusCode) {
		return resp, nil
	}
	return nil, newAPIError(r, resp, classifyStatus(resp.StatusCode))
}

func newAPIError(r Request, resp *Response, class error) *APIError {
	e := &APIError{StatusCode: resp.StatusCode, Method: r.Method, Path: r.Path, class: class}
	var env api.ErrorResponse
	if err := json.Unmarshal(resp.Body, &env); err == nil {
		e.Message = env.Message
	}
	return e
}
