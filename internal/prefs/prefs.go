// Package prefs keeps per-user window preferences through gdata,
// which picks the platform's app data directory.
package prefs

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName names the gdata storage directory.
const AppName = "flappy_arcade"

const (
	settingsObject   = "settings"
	settingsProperty = "window"
)

// Settings are the persisted preferences.
type Settings struct {
	Muted  bool           `yaml:"muted"`
	Volume float64        `yaml:"volume"` // 0..1
	Best   map[string]int `yaml:"best"`   // Variant ID -> best score on this machine
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Volume: 0.8,
		Best:   make(map[string]int),
	}
}

// Manager loads and saves Settings. A nil gdata manager keeps settings in memory only.
type Manager struct {
	data     *gdata.Manager
	settings Settings
	logger   *log.Logger
}

// Open opens the gdata store for AppName. On failure it returns a
// memory-only manager along with the error.
func Open(logger *log.Logger) (*Manager, error) {
	data, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return NewManager(nil, logger), fmt.Errorf("prefs: cannot open storage: %w", err)
	}
	return NewManager(data, logger), nil
}

// NewManager wraps data and loads stored settings. Load errors fall back to defaults.
func NewManager(data *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{data: data, settings: DefaultSettings(), logger: logger}
	if err := m.Load(); err != nil {
		logger.Warn("using default settings", "error", err)
	}
	return m
}

// Load reads the stored settings.
func (m *Manager) Load() error {
	m.settings = DefaultSettings()
	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("prefs: cannot load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("prefs: cannot parse settings: %w", err)
	}
	if loaded.Best == nil {
		loaded.Best = make(map[string]int)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	m.settings = loaded
	return nil
}

// Save writes the settings. It is a no-op for a memory-only manager.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("prefs: cannot encode settings: %w", err)
	}
	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("prefs: cannot save settings: %w", err)
	}
	return nil
}

// Persistent reports whether settings survive a restart.
func (m *Manager) Persistent() bool {
	return m.data != nil
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	s := m.settings
	s.Best = make(map[string]int, len(m.settings.Best))
	for k, v := range m.settings.Best {
		s.Best[k] = v
	}
	return s
}

// Muted reports whether sound is off.
func (m *Manager) Muted() bool {
	return m.settings.Muted
}

// ToggleMute flips the mute flag and returns the new value.
func (m *Manager) ToggleMute() bool {
	m.settings.Muted = !m.settings.Muted
	return m.settings.Muted
}

// Volume returns the effect volume, 0 when muted.
func (m *Manager) Volume() float64 {
	if m.settings.Muted {
		return 0
	}
	return m.settings.Volume
}

// SetVolume sets the effect volume, clamped to 0..1.
func (m *Manager) SetVolume(v float64) {
	m.settings.Volume = clampVolume(v)
}

// Best returns the local best score for a variant.
func (m *Manager) Best(variant string) int {
	return m.settings.Best[variant]
}

// RecordBest stores score if it beats the local best and reports whether it did.
func (m *Manager) RecordBest(variant string, score int) bool {
	if score <= m.settings.Best[variant] {
		return false
	}
	m.settings.Best[variant] = score
	return true
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
