// Package credential persists the authenticated session across runs and
// holds the current bearer token for the API client.
package credential

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"canopus/config"
	"canopus/internal/domain/entity"
	"canopus/internal/errors"

	"go.uber.org/fx"
)

// Store is the durable {user, token} holder. The in-memory session is
// mutated only by the session store; the API client reads the token
// through Token at request time.
type Store struct {
	mu      sync.RWMutex
	path    string
	session *entity.Session
}

// Params holds dependencies for the Store, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
}

// NewStore creates a credential store persisting at the configured path.
func NewStore(params Params) *Store {
	return NewStoreAt(params.Config.Credentials.Path)
}

// NewStoreAt creates a credential store persisting at path; used by
// tests and by NewStore.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Current returns the held session, or nil when none is held.
func (s *Store) Current() *entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

// Token returns the current bearer token, empty when unauthenticated.
// Satisfies api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}

	return s.session.Token
}

// Set replaces the in-memory session without touching disk.
func (s *Store) Set(session *entity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
}

// Load reads the persisted session from disk. A missing file is not an
// error; it returns (nil, nil).
func (s *Store) Load() (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to read credential file")
	}

	session := new(entity.Session)
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, errors.Wrap(err, "failed to parse credential file")
	}

	s.session = session

	return session, nil
}

// Save sets the in-memory session and writes it to disk. The write is
// atomic: a temp file in the same directory is renamed over the target.
func (s *Store) Save(session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "failed to create credential directory")
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp credential file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "failed to write credential file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "failed to chmod credential file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "failed to close credential file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "failed to replace credential file")
	}

	s.session = session

	return nil
}

// Clear drops the in-memory session and removes the credential file.
// Removing an already-absent file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove credential file")
	}

	return nil
}
