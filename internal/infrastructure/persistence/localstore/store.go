// Package localstore persists the session on disk, standing in for the
// browser's session storage: the same two keys, written together, cleared
// together on logout.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// Store is a file-backed session.Store. The file holds a flat JSON object
// keyed by the storage-key constants.
type Store struct {
	mu   sync.Mutex
	path string
}

var _ session.Store = (*Store)(nil)

// New creates a store writing to the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Save persists the session's token and student id.
func (s *Store) Save(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(map[string]string{
		session.KeyToken:  sess.Token,
		session.KeyUserID: sess.StudentID.String(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	// The token is a credential; keep the file owner-only.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load returns the persisted session. A missing file means no session and is
// not an error. The expiry is re-derived from the stored token.
func (s *Store) Load() (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Session{}, nil
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("read session: %w", err)
	}

	var keys map[string]string
	if err := json.Unmarshal(data, &keys); err != nil {
		return session.Session{}, fmt.Errorf("decode session: %w", err)
	}

	return session.New(keys[session.KeyToken], student.ID(keys[session.KeyUserID])), nil
}

// Clear removes every persisted key. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
