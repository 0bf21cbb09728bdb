package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envault/internal/utils"
)

const (
	// StateDirName is the per-workspace folder holding local state and the audit log.
	StateDirName = ".envault"

	stateFileName    = "state.toml"
	auditFileName    = "audit.jsonl"
	settingsFileName = "settings.toml"
)

type UserSettings struct {
	UserConfigsPath string
}

type WorkspaceSettings struct {
	Root      string
	Name      string
	Folders   []string
	StatePath string
	AuditPath string
}

var (
	UserEnvaultSettings      *UserSettings
	WorkspaceEnvaultSettings *WorkspaceSettings
)

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	UserEnvaultSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "envault"),
	}
	WorkspaceEnvaultSettings = &WorkspaceSettings{}
}

// SettingsPath returns the path of the user settings file.
func SettingsPath() string {
	return filepath.Join(UserEnvaultSettings.UserConfigsPath, settingsFileName)
}

// InitWorkspaceSettings locates the workspace root from the working directory
// and records its folders. extraFolders are added after the root; relative
// entries are resolved against the working directory.
//
// When no workspace is found the settings are reset and Root is empty; that
// is not an error, so commands can report it in their own words.
func InitWorkspaceSettings(extraFolders []string) error {
	root, err := utils.FindWorkspaceRoot()
	if err != nil {
		return fmt.Errorf("error getting workspace root: %w", err)
	}

	if root == "" {
		WorkspaceEnvaultSettings = &WorkspaceSettings{}
		return nil
	}

	return SetWorkspaceRoot(root, extraFolders)
}

// SetWorkspaceRoot initializes the workspace settings for an explicit root.
func SetWorkspaceRoot(root string, extraFolders []string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("error resolving workspace root: %w", err)
	}

	folders := []string{absRoot}
	for _, f := range extraFolders {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("error resolving folder %s: %w", f, err)
		}
		folders = append(folders, abs)
	}

	WorkspaceEnvaultSettings = &WorkspaceSettings{
		Root:      absRoot,
		Name:      filepath.Base(absRoot),
		Folders:   utils.Dedupe(folders),
		StatePath: filepath.Join(absRoot, StateDirName, stateFileName),
		AuditPath: filepath.Join(absRoot, StateDirName, auditFileName),
	}
	return nil
}

// ResetWorkspaceSettings clears the workspace settings.
func ResetWorkspaceSettings() {
	WorkspaceEnvaultSettings = &WorkspaceSettings{}
}
