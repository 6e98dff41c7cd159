package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vcm-medical/vcmclient/domain"
)

// storedSession is the on-disk record layout. isAuthenticated is written
// for compatibility with the original client's storage but is never
// trusted on load; the user+token pair is what decides validity.
type storedSession struct {
	User            *domain.User `json:"user"`
	Token           string       `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// FileStore implements domain.SessionStore as a single JSON record on
// disk. The session controller is its only writer.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store. An empty dir places the
// record under the user config directory, namespaced by namespace.
func NewFileStore(dir, namespace string) (*FileStore, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		dir = filepath.Join(configDir, namespace)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, "session.json")}, nil
}

// Load implements domain.SessionStore. A missing record yields
// ErrSessionNotFound; an unparseable one yields ErrSessionCorrupt so
// the caller can discard it silently.
func (s *FileStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var record storedSession
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, domain.ErrSessionCorrupt
	}

	return &domain.Session{User: record.User, Token: record.Token}, nil
}

// Save implements domain.SessionStore via temp-file+rename so a crash
// mid-write never leaves a truncated record.
func (s *FileStore) Save(ctx context.Context, session *domain.Session) error {
	record := storedSession{
		User:            session.User,
		Token:           session.Token,
		IsAuthenticated: session.IsAuthenticated(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session record: %w", err)
	}
	return nil
}

// Clear implements domain.SessionStore. Clearing an absent record is
// not an error; logout must be idempotent.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session record: %w", err)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*FileStore)(nil)
