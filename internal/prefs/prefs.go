// Package prefs persists user preferences that outlive a painting session.
// Today that is only the theme.
package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rohankatakam/gitart/internal/errors"
	bolt "go.etcd.io/bbolt"
)

// Theme is the colour scheme of the painter
type Theme string

const (
	ThemeUnset Theme = ""
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return ThemeUnset, errors.ValidationErrorf("unknown theme %q (want light or dark)", s)
}

// Toggle flips light and dark. An unset theme toggles to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Store reads and writes preferences
type Store interface {
	// Theme returns ThemeUnset when nothing has been saved yet
	Theme() (Theme, error)
	SetTheme(Theme) error
	Close() error
}

// preferences is the stored record
type preferences struct {
	Theme     Theme     `json:"theme"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	bucketName = "prefs"
	recordKey  = "preferences"
)

// BoltStore keeps preferences in a bbolt file
type BoltStore struct {
	db     *bolt.DB
	logger *slog.Logger
}

// OpenBolt opens (creating if needed) the preferences database at path
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.FileSystemError(err, "failed to create preferences directory")
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.StorageError(err, "failed to open preferences").WithContext("path", path)
	}

	return &BoltStore{
		db:     db,
		logger: slog.Default().With("component", "prefs"),
	}, nil
}

func (s *BoltStore) load() (preferences, error) {
	var p preferences
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(recordKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &p)
	})
	return p, err
}

// Theme returns the saved theme
func (s *BoltStore) Theme() (Theme, error) {
	p, err := s.load()
	if err != nil {
		return ThemeUnset, errors.StorageError(err, "failed to read preferences")
	}
	return p.Theme, nil
}

// SetTheme saves the theme
func (s *BoltStore) SetTheme(theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		return errors.ValidationErrorf("unknown theme %q", theme)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		data, err := json.Marshal(preferences{Theme: theme, UpdatedAt: time.Now()})
		if err != nil {
			return err
		}
		return bucket.Put([]byte(recordKey), data)
	})
	if err != nil {
		return errors.StorageError(err, "failed to save preferences")
	}

	s.logger.Debug("theme saved", "theme", theme)
	return nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// MemoryStore is a Store that forgets everything on exit
type MemoryStore struct {
	mu    sync.Mutex
	theme Theme
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Theme() (Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, nil
}

func (m *MemoryStore) SetTheme(theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Resolve returns the saved theme, or fallback when none is saved or the store fails
func Resolve(s Store, fallback Theme) Theme {
	if s == nil {
		return fallback
	}
	t, err := s.Theme()
	if err != nil {
		slog.Default().With("component", "prefs").Warn("failed to read theme", "error", err)
		return fallback
	}
	if t == ThemeUnset {
		return fallback
	}
	return t
}
