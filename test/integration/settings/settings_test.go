package settings_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/test/integration/shared"
)

// TestSettingsIntegration contains integration tests for the `envault settings` command.
func TestSettingsIntegration(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	originalUserSettings := configs.UserEnvaultSettings

	t.Run("SettingsShowsDefaults", func(t *testing.T) {
		testSettingsShowsDefaults(t, originalWd, originalUserSettings)
	})

	t.Run("SettingsInit", func(t *testing.T) {
		testSettingsInit(t, originalWd, originalUserSettings)
	})

	t.Run("SettingsReadsFile", func(t *testing.T) {
		testSettingsReadsFile(t, originalWd, originalUserSettings)
	})
}

func testSettingsShowsDefaults(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "settings")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)

	output, err := shared.RunCLI("settings")
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}

	for _, want := range []string{
		"Settings (defaults):",
		`"[Envault: ${file_base_name}]"`,
		"envault_dev_key",
		"http://localhost:8787/",
		"reload_config_on_save",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output: %s", want, output)
		}
	}
}

func testSettingsInit(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "settings-init")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)

	output, err := shared.RunCLI("settings", "init")
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}
	if !strings.Contains(output, "✓ Wrote default settings") {
		t.Errorf("Expected success message in output: %s", output)
	}

	path := filepath.Join(tempUserDir, "config", "settings.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected settings file to be written: %v", err)
	}
	if !strings.Contains(string(data), "reload_config_on_save = true") {
		t.Errorf("Expected defaults in settings file: %s", data)
	}

	output, err = shared.RunCLI("settings", "init")
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected exists message in output: %s", output)
	}
}

func testSettingsReadsFile(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "settings-file")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)

	path := filepath.Join(tempUserDir, "config", "settings.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create settings folder: %v", err)
	}
	content := "default_api_key = \"TEAM_KEY\"\nadded_watch_commands = [\"make\"]\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	output, err := shared.RunCLI("settings")
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}

	if !strings.Contains(output, "TEAM_KEY") || !strings.Contains(output, "[make]") {
		t.Errorf("Expected file values in output: %s", output)
	}
	// Keys missing from the file keep their defaults.
	if !strings.Contains(output, "http://localhost:8787/") {
		t.Errorf("Expected default URL in output: %s", output)
	}
}
