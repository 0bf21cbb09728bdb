package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUserConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	original := UserEnvaultSettings
	UserEnvaultSettings = &UserSettings{UserConfigsPath: dir}
	t.Cleanup(func() { UserEnvaultSettings = original })
	return dir
}

func TestLoadPreferencesDefaultsWhenMissing(t *testing.T) {
	withUserConfigDir(t)

	prefs, err := LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)
	assert.Equal(t, "[Envault: ${file_base_name}]", prefs.StatusBarFormat)
	assert.True(t, prefs.ReloadConfigOnSave)
}

func TestLoadPreferencesPartialFileKeepsDefaults(t *testing.T) {
	dir := withUserConfigDir(t)

	content := "debug = true\ndefault_api_url = \"https://vault.example.com/\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(content), 0600))

	prefs, err := LoadPreferences()
	require.NoError(t, err)
	assert.True(t, prefs.Debug)
	assert.Equal(t, "https://vault.example.com/", prefs.DefaultAPIURL)
	assert.Equal(t, "envault_dev_key", prefs.DefaultAPIKey)
	assert.True(t, prefs.ReloadConfigOnSave)
}

func TestLoadPreferencesMalformed(t *testing.T) {
	dir := withUserConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("debug = = true"), 0600))

	_, err := LoadPreferences()
	assert.Error(t, err)
}

func TestSavePreferencesRoundTrip(t *testing.T) {
	withUserConfigDir(t)

	prefs := DefaultPreferences()
	prefs.StatusBarFormat = ""
	prefs.AddedWatchCommands = []string{"make"}
	require.NoError(t, SavePreferences(prefs))

	loaded, err := LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "", loaded.StatusBarFormat)
	assert.True(t, loaded.IsWatchCommand("make"))
	assert.False(t, loaded.IsWatchCommand("go"))
}

func TestPreferencesTimeout(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 0},
		{"0s", 0},
		{"15s", 15 * time.Second},
		{"bogus", 0},
		{"-5s", 0},
	}
	for _, tc := range tests {
		p := &Preferences{RequestTimeout: tc.raw}
		assert.Equal(t, tc.want, p.Timeout(), "RequestTimeout %q", tc.raw)
	}
}
