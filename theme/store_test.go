package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSettings is an in-memory settings port for tests.
type memSettings struct {
	data    map[string]string
	failSet bool
}

func newMemSettings() *memSettings {
	return &memSettings{data: map[string]string{}}
}

func (m *memSettings) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memSettings) Set(key, value string) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *memSettings) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func TestInitializeDefaultsToDark(t *testing.T) {
	store := NewStore(newMemSettings(), NewEngine())
	store.Initialize()
	assert.True(t, store.DarkMode())
	assert.Equal(t, ModeDark, store.Mode())
}

func TestInitializeReadsPersistedMode(t *testing.T) {
	settings := newMemSettings()
	settings.data[keyMode] = ModeLight
	store := NewStore(settings, NewEngine())
	store.Initialize()
	assert.False(t, store.DarkMode())
}

func TestInitializeTreatsCorruptOverridesAsEmpty(t *testing.T) {
	settings := newMemSettings()
	settings.data[keyOverrides] = "{not json"
	store := NewStore(settings, NewEngine())
	store.Initialize()
	assert.Empty(t, store.Overrides().Light)
	assert.Empty(t, store.Overrides().Dark)
}

func TestTogglePersistsAndReapplies(t *testing.T) {
	settings := newMemSettings()
	engine := NewEngine()
	store := NewStore(settings, engine)
	store.Initialize()

	dark := store.Toggle()
	assert.False(t, dark)
	assert.Equal(t, ModeLight, settings.data[keyMode])

	dark = store.Toggle()
	assert.True(t, dark)
	assert.Equal(t, ModeDark, settings.data[keyMode])
}

func TestSetOverridesPersistsAndApplies(t *testing.T) {
	settings := newMemSettings()
	engine := NewEngine()
	store := NewStore(settings, engine)
	store.Initialize()

	store.SetOverrides(Overrides{Light: map[string]string{TokenAccent: "#ff0000"}})

	v, ok := engine.Token(TokenAccent, TargetRoot)
	require.True(t, ok)
	assert.Equal(t, "#ff0000", v)
	assert.Contains(t, settings.data[keyOverrides], "#ff0000")

	// Dark scope keeps its base value.
	v, _ = engine.Token(TokenAccent, TargetDark)
	assert.Equal(t, DefaultDark()[TokenAccent], v)
}

func TestResetOverridesClearsPersisted(t *testing.T) {
	settings := newMemSettings()
	engine := NewEngine()
	store := NewStore(settings, engine)
	store.Initialize()

	store.SetOverrides(Overrides{Light: map[string]string{TokenAccent: "#ff0000"}})
	store.ResetOverrides()

	_, ok := settings.data[keyOverrides]
	assert.False(t, ok)
	v, _ := engine.Token(TokenAccent, TargetRoot)
	assert.Equal(t, DefaultLight()[TokenAccent], v)
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	settings := newMemSettings()
	settings.failSet = true
	engine := NewEngine()
	store := NewStore(settings, engine)
	store.Initialize()

	store.SetOverrides(Overrides{Light: map[string]string{TokenAccent: "#00ff00"}})
	v, _ := engine.Token(TokenAccent, TargetRoot)
	assert.Equal(t, "#00ff00", v)
}

func TestNilSettingsStoreIsSafe(t *testing.T) {
	store := NewStore(nil, NewEngine())
	store.Initialize()
	store.Toggle()
	store.SetOverrides(Overrides{})
	store.ResetOverrides()
}
