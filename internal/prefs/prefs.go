// Package prefs persists the player's mode and speed as a small TOML file.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tomz197/pong/internal/sim"
)

// FileName is the preference file inside a config directory.
const FileName = "prefs.toml"

// Store loads and saves settings at one path.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns pong/prefs.toml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "pong", FileName), nil
}

// Open returns the store at path, or at DefaultPath when path is empty.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return NewStore(path), nil
}

// UserPath returns the preference file for a named user below dir. Characters
// outside [A-Za-z0-9._-] are replaced so the name is safe as a file name.
func UserPath(dir, user string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == '.':
			return r
		}
		return '_'
	}, user)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "anonymous"
	}
	return filepath.Join(dir, name+".toml")
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored settings. A missing file yields the defaults and no
// error; an unreadable or malformed one yields the defaults and an error.
func (s *Store) Load() (sim.Settings, error) {
	settings := sim.DefaultSettings()
	if _, err := toml.DecodeFile(s.path, &settings); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sim.DefaultSettings(), nil
		}
		return sim.DefaultSettings(), fmt.Errorf("load preferences %s: %w", s.path, err)
	}
	return settings, nil
}

// Save writes settings, creating the parent directory if needed. The file is
// replaced atomically so a crash never leaves half a file behind.
func (s *Store) Save(settings sim.Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preferences %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace preferences %s: %w", s.path, err)
	}
	return nil
}

// Override applies non-empty mode and speed names on top of settings, as
// given by environment variables.
func Override(settings sim.Settings, mode, speed string) sim.Settings {
	if strings.TrimSpace(mode) != "" {
		settings.Mode = sim.ParseMode(mode)
	}
	if strings.TrimSpace(speed) != "" {
		settings.Speed = sim.ParseSpeed(speed)
	}
	return settings
}
