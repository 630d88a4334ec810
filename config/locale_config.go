package config

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// LocaleSettings describes how a locale lays out dashboard charts
type LocaleSettings struct {
	RTL bool `json:"rtl"`
}

// defaultLocales seeds a missing locale file
var defaultLocales = map[string]LocaleSettings{
	"en": {RTL: false},
	"fr": {RTL: false},
	"ar": {RTL: true},
	"fa": {RTL: true},
	"he": {RTL: true},
	"ur": {RTL: true},
}

// LocaleConfigManager manages the locale -> direction table
type LocaleConfigManager struct {
	configPath string
	mu         sync.RWMutex
	Locales    map[string]LocaleSettings `json:"locales"`
}

// NewLocaleConfigManager creates a new manager. An empty path keeps the
// table in memory only.
func NewLocaleConfigManager(path string) *LocaleConfigManager {
	m := &LocaleConfigManager{
		configPath: path,
		Locales:    make(map[string]LocaleSettings),
	}
	for k, v := range defaultLocales {
		m.Locales[k] = v
	}
	return m
}

// Load reads the table from disk
func (m *LocaleConfigManager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.configPath == "" {
		return nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Write the seed table so operators can edit it
			return m.saveInternal()
		}
		return err
	}

	if len(data) == 0 {
		return nil
	}

	locales := make(map[string]LocaleSettings)
	if err := json.Unmarshal(data, &locales); err != nil {
		return err
	}
	m.Locales = locales
	return nil
}

// Save replaces the table and writes it to disk
func (m *LocaleConfigManager) Save(locales map[string]LocaleSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Locales = locales
	return m.saveInternal()
}

// saveInternal writes to disk (must hold lock)
func (m *LocaleConfigManager) saveInternal() error {
	if m.configPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(m.Locales, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns settings for a locale tag. "ar-EG" falls back to "ar".
func (m *LocaleConfigManager) Get(locale string) (LocaleSettings, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tag := strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
	if s, ok := m.Locales[tag]; ok {
		return s, true
	}
	base, _, _ := strings.Cut(tag, "-")
	s, ok := m.Locales[base]
	return s, ok
}

// GetAll returns a copy of the table
func (m *LocaleConfigManager) GetAll() map[string]LocaleSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copy := make(map[string]LocaleSettings, len(m.Locales))
	for k, v := range m.Locales {
		copy[k] = v
	}
	return copy
}
