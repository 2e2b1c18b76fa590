// Package session owns the admin bearer token. The store is the single
// writer; every surface that needs the token reads it from here.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/storage"
)

const storageKey = "authToken"

// Store holds the session token and mirrors it to scoped storage on a
// best-effort basis. Storage failure degrades to a no-persistence session;
// it is logged, never surfaced.
type Store struct {
	storage storage.TokenStorage
	logger  *slog.Logger

	mu    sync.Mutex
	token string
}

func NewStore(st storage.TokenStorage, logger *slog.Logger) *Store {
	return &Store{storage: st, logger: logger}
}

// Restore loads a previously saved token at startup. Any storage failure
// leaves the session unauthenticated.
func (s *Store) Restore() {
	token, err := s.storage.Get(storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Could not access session storage; continuing logged out", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Login transitions the session to authenticated and persists the token.
func (s *Store) Login(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.storage.Set(storageKey, token); err != nil {
		s.logger.Warn("Could not write to session storage", "error", err)
	}
}

// Logout transitions the session to unauthenticated regardless of whether
// the stored token could be removed.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Delete(storageKey); err != nil {
		s.logger.Warn("Could not remove token from session storage", "error", err)
	}
}

// Token returns the current bearer token, empty when unauthenticated. The
// token's validity is never checked here; the API rejecting it is the only
// validity signal.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a session exists.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
