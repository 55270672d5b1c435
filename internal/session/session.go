// Package session holds the persisted current-actor reference. It is a
// collaborator of the store, never part of it: deleting a user clears the
// reference here, not inside the store's cascade.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"ripple/internal/models"
	"ripple/internal/store"
)

// Manager persists the current user ID to a small file.
type Manager struct {
	path string
}

// NewManager returns a Manager backed by the given file path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Resume resolves the persisted reference into a user. A missing file, or a
// reference to a user that no longer exists, yields ok=false; a stale
// reference is cleared.
func (m *Manager) Resume(st *store.Store) (models.User, bool, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return models.User{}, false, nil
	}
	user, ok := st.GetUser(id)
	if !ok {
		return models.User{}, false, m.Clear()
	}
	return user, true, nil
}

// Set records the given user as the current actor.
func (m *Manager) Set(userID string) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte(userID+"\n"), 0o600)
}

// Clear removes the current-actor reference.
func (m *Manager) Clear() error {
	err := os.Remove(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ClearIf removes the reference only when it points at the given user.
func (m *Manager) ClearIf(userID string) error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(string(data)) != userID {
		return nil
	}
	return m.Clear()
}
