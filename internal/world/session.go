package world

import "sync"

// Session owns the cached bearer token for the lifetime of a server. The token starts empty,
// is adopted from configuration on first use, and is replaced after every successful
// re-acquisition. It is never cleared.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession creates an empty Session
func NewSession() *Session {
	return &Session{}
}

// Token returns the cached token, or "" when none is cached.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a token is cached.
func (s *Session) HasToken() bool {
	return s.Token() != ""
}

// Adopt caches token only when the cache is empty. It reports whether the token was taken.
func (s *Session) Adopt(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return false
	}
	s.token = token
	return true
}

// Replace overwrites the cached token. Empty tokens are ignored.
func (s *Session) Replace(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
