// Package session holds the client-side authentication state: the
// current user plus the token pair, persisted as one JSON file under
// the user config dir. Only Login, Logout and SetTokens mutate it;
// everything else reads a copy.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jxhee99/HappyMeal/internal/app"
	"github.com/jxhee99/HappyMeal/internal/model"
)

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type state struct {
	Tokens
	User *model.User `json:"user,omitempty"`
}

// Store is the single holder of session state for a process.
type Store struct {
	mu   sync.Mutex
	path string
	st   state
}

// Open reads any persisted session synchronously; a missing file means
// anonymous, not an error. No network call validates the tokens here —
// expiry surfaces on the first failing request.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := app.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.st); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return s, nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.AccessToken != "" && s.st.User != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.User != nil && s.st.User.Role == model.RoleAdmin
}

// User returns the logged-in user, or nil when anonymous.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.User == nil {
		return nil
	}
	u := *s.st.User
	return &u
}

func (s *Store) TokenPair() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Tokens
}

// Login persists the user and tokens atomically and flips the store to
// authenticated.
func (s *Store) Login(user model.User, tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{Tokens: tokens, User: &user}
	return s.persist()
}

// SetTokens replaces the token pair after a refresh, keeping the user.
func (s *Store) SetTokens(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.User == nil {
		return fmt.Errorf("set tokens: not logged in")
	}
	s.st.Tokens = tokens
	return s.persist()
}

// Logout clears storage and state. Logging out while anonymous is a
// no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.User == nil && s.st.AccessToken == "" {
		return nil
	}
	s.st = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Store) persist() error {
	if err := app.EnsureParentDir(s.path); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Path reports where the session is persisted, mostly for doctor-style
// diagnostics.
func (s *Store) Path() string {
	return filepath.Clean(s.path)
}
