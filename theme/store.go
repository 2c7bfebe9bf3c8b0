package theme

import (
	"encoding/json"
	"os"
	"sync"

	"invoice-portal/logger"
)

// Persisted keys. Values are plain strings so any key-value backend works.
const (
	keyMode      = "theme.mode"
	keyOverrides = "theme.overrides"
)

const (
	ModeDark  = "dark"
	ModeLight = "light"
)

// SettingsStore is the persistence port for theme preferences.
// Implementations must treat a missing key as (value "", ok false, nil).
type SettingsStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store owns the theme state: the two base token sets, the user overrides
// and the dark-mode flag. Every mutation persists through the settings port
// and re-applies the engine synchronously. Persistence failures are logged
// and swallowed; in-memory state stays authoritative.
type Store struct {
	mu        sync.Mutex
	darkMode  bool
	overrides Overrides

	settings SettingsStore
	engine   *Engine
}

func NewStore(settings SettingsStore, engine *Engine) *Store {
	return &Store{settings: settings, engine: engine}
}

// Initialize loads the persisted mode and overrides. A missing mode falls
// back to THEME_DEFAULT_MODE, then to dark. Corrupt or missing override
// data is treated as empty, never as an error.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode, ok := s.read(keyMode)
	if !ok || (mode != ModeDark && mode != ModeLight) {
		mode = os.Getenv("THEME_DEFAULT_MODE")
	}
	if mode != ModeDark && mode != ModeLight {
		mode = ModeDark
	}
	s.darkMode = mode == ModeDark

	s.overrides = Overrides{}
	if raw, ok := s.read(keyOverrides); ok && raw != "" {
		var ov Overrides
		if err := json.Unmarshal([]byte(raw), &ov); err != nil {
			logger.L.WithError(err).Warn("theme: discarding corrupt overrides")
		} else {
			s.overrides = ov
		}
	}

	s.apply()
}

// DarkMode reports the current mode flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// Mode returns "dark" or "light".
func (s *Store) Mode() string {
	if s.DarkMode() {
		return ModeDark
	}
	return ModeLight
}

// Overrides returns a copy of the current overrides.
func (s *Store) Overrides() Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Overrides{
		Light: copyTokens(s.overrides.Light),
		Dark:  copyTokens(s.overrides.Dark),
	}
}

// Toggle flips dark mode, persists the new value and re-applies.
func (s *Store) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	mode := ModeLight
	if s.darkMode {
		mode = ModeDark
	}
	s.write(keyMode, mode)
	s.apply()
	return s.darkMode
}

// SetOverrides replaces the override set, persists it and re-applies.
func (s *Store) SetOverrides(next Overrides) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = next
	if raw, err := json.Marshal(next); err != nil {
		logger.L.WithError(err).Warn("theme: could not encode overrides")
	} else {
		s.write(keyOverrides, string(raw))
	}
	s.apply()
}

// ResetOverrides clears persisted overrides and re-applies with empty ones.
func (s *Store) ResetOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = Overrides{}
	if s.settings != nil {
		if err := s.settings.Delete(keyOverrides); err != nil {
			logger.L.WithError(err).Warn("theme: could not clear overrides")
		}
	}
	s.apply()
}

// apply pushes the merged sets into the engine. Caller holds s.mu.
func (s *Store) apply() {
	s.engine.Apply(DefaultLight(), DefaultDark(), s.overrides)
}

func (s *Store) read(key string) (string, bool) {
	if s.settings == nil {
		return "", false
	}
	v, ok, err := s.settings.Get(key)
	if err != nil {
		logger.L.WithError(err).WithField("key", key).Warn("theme: settings read failed")
		return "", false
	}
	return v, ok
}

func (s *Store) write(key, value string) {
	if s.settings == nil {
		return
	}
	if err := s.settings.Set(key, value); err != nil {
		logger.L.WithError(err).WithField("key", key).Warn("theme: settings write failed")
	}
}

func copyTokens(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
