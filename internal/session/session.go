// Package session persists the authenticated session (bearer token and
// profile) on disk and exposes it as the single injected capability the
// API facade reads from. There is exactly one shared mutable resource in
// the whole client, and this is it.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"karat/internal/api"
	"karat/internal/logging"
)

const fileName = "session.json"

// Session is the persisted login state.
type Session struct {
	Token   string   `json:"token"`
	Refresh string   `json:"refresh,omitempty"`
	User    api.User `json:"user"`
}

// Store reads and writes the session file. Safe for concurrent use
// within a process; a flock guards against concurrent karat processes
// writing the same file.
type Store struct {
	path string
	lock *flock.Flock

	mu      sync.RWMutex
	current *Session
}

// NewStore opens (or prepares) the session file under home. An existing
// file is loaded; a missing or unreadable one means logged out.
func NewStore(home string) (*Store, error) {
	if home == "" {
		return nil, fmt.Errorf("karat home path required")
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	path := filepath.Join(home, fileName)
	s := &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
	s.reload()
	return s, nil
}

// Path returns the session file location.
func (s *Store) Path() string { return s.path }

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Current returns a copy of the session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Save persists a new session, replacing any previous one.
func (s *Store) Save(sess Session) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock session file: %w", err)
	}
	defer s.lock.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	s.mu.Lock()
	stored := sess
	s.current = &stored
	s.mu.Unlock()

	logging.Session("session saved for %s", sess.User.Email)
	return nil
}

// Clear logs out. Idempotent: clearing an already-clear session is a
// no-op, so the facade's 401 path and an explicit logout cannot race
// into an error.
func (s *Store) Clear() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock session file: %w", err)
	}
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	logging.Session("session cleared")
	return nil
}

// reload re-reads the file into memory. A missing or corrupt file is
// treated as logged out rather than an error.
func (s *Store) reload() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		return
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
}
