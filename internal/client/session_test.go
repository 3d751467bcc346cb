package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Active() {
		t.Fatalf("fresh session should be inactive")
	}

	if err := s.Set("tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// a second open (simulating a restart) must see the token
	reopened, err := OpenSession(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Token() != "tok-123" {
		t.Fatalf("token not persisted: %q", reopened.Token())
	}
}

func TestSessionClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Active() {
		t.Fatalf("session still active after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("token file still present after clear")
	}

	// clearing an already-clear session is fine
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSessionSubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var changes []string
	s.Subscribe(func(token string) {
		changes = append(changes, token)
	})

	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if len(changes) != 2 || changes[0] != "tok-1" || changes[1] != "" {
		t.Fatalf("unexpected change sequence: %v", changes)
	}
}
