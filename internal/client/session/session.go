// Package session holds the authentication state of the running client:
// the current user, the access token and a loading flag.
package session

import (
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// State is a point-in-time copy of the session.
type State struct {
	User      *models.User
	Token     string
	IsLoading bool
}

// Authenticated reports whether both a user and a token are present.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Store is the session store. The zero value is an unauthenticated session
// ready for use. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	user    *models.User
	token   string
	loading bool
}

// New returns an unauthenticated Store.
func New() *Store {
	return &Store{}
}

// SetAuth records user and token as the current session.
func (s *Store) SetAuth(user models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
}

// ClearAuth drops the user and token.
func (s *Store) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// Logout is ClearAuth.
func (s *Store) Logout() { s.ClearAuth() }

// SetToken replaces the token of an authenticated session. It does nothing
// when no user is set.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.token = token
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAuthenticated is true iff both user and token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current access token, "" when unauthenticated. Store
// satisfies client.TokenSource through it.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Token: s.token, IsLoading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}
