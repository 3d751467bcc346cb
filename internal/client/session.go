package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoSession indicates that a protected call was attempted without a token.
var ErrNoSession = errors.New("not logged in")

// Session holds the current bearer token: an in-memory copy plus a persisted
// file so it survives restarts. It never checks token freshness itself; the
// server rejecting a request with 401 is the only staleness signal.
//
// Subscribe is the single notification point for "session changed"; callers
// must not read the token file directly.
type Session struct {
	mu    sync.Mutex
	path  string
	token string
	subs  []func(token string)
}

// OpenSession loads any persisted token from path. A missing file simply means
// no session.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// DefaultSessionPath places the token file under the user config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "taskboard", "token"), nil
}

// Token returns the held token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Active reports whether a token is held. It says nothing about validity.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// Set stores a freshly issued token in memory and on disk, then notifies
// subscribers.
func (s *Session) Set(token string) error {
	s.mu.Lock()
	s.token = token
	subs := append([]func(string){}, s.subs...)
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	for _, fn := range subs {
		fn(token)
	}
	return nil
}

// Clear logs out: drops the in-memory token, removes the persisted file and
// notifies subscribers with an empty token.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	subs := append([]func(string){}, s.subs...)
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}

	for _, fn := range subs {
		fn("")
	}
	return nil
}

// Subscribe registers fn to run on every session change. The current token is
// not replayed; only future changes are delivered.
func (s *Session) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
