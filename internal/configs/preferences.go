package configs

import (
	"fmt"
	"os"
	"time"
)

// Preferences holds the user settings read from settings.toml.
type Preferences struct {
	// StatusBarFormat is the template printed by `envault status`; empty disables it.
	StatusBarFormat string `toml:"status_bar_format"`

	// AddedWatchCommands are commands treated as builds even when --select is given.
	AddedWatchCommands []string `toml:"added_watch_commands"`

	// DefaultAPIKey and DefaultAPIURL fill the template of newly created configs.
	DefaultAPIKey string `toml:"default_api_key"`
	DefaultAPIURL string `toml:"default_api_url"`

	ReloadConfigOnSave bool `toml:"reload_config_on_save"`
	Debug              bool `toml:"debug"`

	// RequestTimeout is a Go duration string; "0s" leaves the HTTP client default.
	RequestTimeout string `toml:"request_timeout"`
}

// DefaultPreferences returns the settings used when no settings file exists.
func DefaultPreferences() *Preferences {
	return &Preferences{
		StatusBarFormat:    "[Envault: ${file_base_name}]",
		AddedWatchCommands: []string{},
		DefaultAPIKey:      "envault_dev_key",
		DefaultAPIURL:      "http://localhost:8787/",
		ReloadConfigOnSave: true,
		Debug:              false,
		RequestTimeout:     "0s",
	}
}

// LoadPreferences loads the user settings file over the defaults.
// Keys missing from the file keep their default values.
func LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	path := SettingsPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return prefs, nil
	}

	if err := LoadTOML(path, prefs); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return prefs, nil
}

// SavePreferences writes the settings file.
func SavePreferences(prefs *Preferences) error {
	if err := SaveTOML(SettingsPath(), prefs); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Timeout parses RequestTimeout. Empty or invalid values yield zero.
func (p *Preferences) Timeout() time.Duration {
	if p.RequestTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(p.RequestTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// IsWatchCommand reports whether name is listed in AddedWatchCommands.
func (p *Preferences) IsWatchCommand(name string) bool {
	for _, c := range p.AddedWatchCommands {
		if c == name {
			return true
		}
	}
	return false
}
