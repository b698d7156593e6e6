// token keeps the current access credential: an in-memory value written
// through to a durable backend so the token survives restarts. The store
// never fails reads: a broken backend degrades to "no token", which the
// request pipeline treats the same as being signed out.
package token

import (
	"log/slog"
	"sync"
)

type Store struct {
	mu      sync.RWMutex
	current string
	backend Backend
	log     *slog.Logger
}

func NewStore(backend Backend, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{backend: backend, log: log}
}

// Get returns the current token. Memory wins; on a cold start the value is
// read from the backend and cached.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	if s.current != "" {
		tok := s.current
		s.mu.RUnlock()
		return tok, true
	}
	s.mu.RUnlock()

	tok, err := s.backend.Load()
	if err != nil {
		s.log.Debug("token backend load failed", "err", err)
		return "", false
	}
	if tok == "" {
		return "", false
	}

	s.mu.Lock()
	s.current = tok
	s.mu.Unlock()
	return tok, true
}

// Set overwrites the token in memory and in the backend.
func (s *Store) Set(tok string) {
	s.mu.Lock()
	s.current = tok
	s.mu.Unlock()

	if err := s.backend.Save(tok); err != nil {
		s.log.Warn("token backend save failed", "err", err)
	}
}

// Clear removes the token from memory and from the backend. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()

	if err := s.backend.Delete(); err != nil {
		s.log.Warn("token backend delete failed", "err", err)
	}
}

func (s *Store) Has() bool {
	_, ok := s.Get()
	return ok
}

func (s *Store) Close() error {
	return s.backend.Close()
}
