package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
)

// State is the authentication state of a Session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unauthenticated"
	}
}

// Session owns exactly one TokenPair for one logged-in actor.
type Session struct {
	mu    sync.RWMutex
	state State
	pair  TokenPair
	store TokenStore
}

// NewSession creates an unauthenticated session backed by store
// (a MemoryStore when store is nil).
func NewSession(store TokenStore) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store}
}

// Restore loads a previously saved pair from the store.
func (s *Session) Restore(ctx context.Context) error {
	pair, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if pair.IsZero() {
		s.state, s.pair = StateUnauthenticated, TokenPair{}
		return nil
	}
	s.state, s.pair = StateAuthenticated, pair
	return nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Tokens returns the current pair; ok is false when unauthenticated.
func (s *Session) Tokens() (TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == StateUnauthenticated {
		return TokenPair{}, false
	}
	return s.pair, true
}

// Token implements oauth2.TokenSource. It never refreshes on its own.
func (s *Session) Token() (*oauth2.Token, error) {
	pair, ok := s.Tokens()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return pair.OAuth2(), nil
}

var _ oauth2.TokenSource = (*Session)(nil)

// Establish replaces the pair and moves to Authenticated. The in-memory
// state always changes; a store failure is still returned.
func (s *Session) Establish(ctx context.Context, pair TokenPair) error {
	if pair.IsZero() {
		return fmt.Errorf("%w: empty access token", ErrMalformedTokenResponse)
	}

	s.mu.Lock()
	s.state, s.pair = StateAuthenticated, pair
	s.mu.Unlock()

	if err := s.store.Save(ctx, pair); err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}
	return nil
}

// Invalidate drops the pair and moves to Unauthenticated.
func (s *Session) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.state, s.pair = StateUnauthenticated, TokenPair{}
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

// beginRefresh moves Authenticated -> Refreshing and returns the pair whose
// refresh token is about to be exchanged.
func (s *Session) beginRefresh() (TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return TokenPair{}, ErrNotAuthenticated
	}
	s.state = StateRefreshing
	return s.pair, nil
}

// abortRefresh returns Refreshing -> Authenticated keeping the old pair.
func (s *Session) abortRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRefreshing {
		s.state = StateAuthenticated
	}
}
