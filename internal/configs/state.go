package configs

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/envault/internal/errors"

	"github.com/google/uuid"
)

// WorkspaceState is the per-workspace data persisted in .envault/state.toml.
type WorkspaceState struct {
	// Current is the absolute path of the selected config, or "".
	Current string `toml:"current"`

	// Session identifies this workspace in audit entries.
	Session string `toml:"session"`
}

// LoadState loads the workspace state. A missing file yields an empty state.
// Note: Caller should ensure the workspace settings are initialized first.
func LoadState() (*WorkspaceState, error) {
	path := WorkspaceEnvaultSettings.StatePath
	if path == "" {
		return nil, kerrors.ErrWorkspaceNotFound
	}

	state := &WorkspaceState{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return state, nil
	}

	if err := LoadTOML(path, state); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidState, err)
	}

	return state, nil
}

// SaveState writes the workspace state, assigning a session ID if missing.
func SaveState(state *WorkspaceState) error {
	path := WorkspaceEnvaultSettings.StatePath
	if path == "" {
		return kerrors.ErrWorkspaceNotFound
	}

	if state.Session == "" {
		state.Session = GenerateSessionID()
	}

	if err := SaveTOML(path, state); err != nil {
		return fmt.Errorf("failed to save workspace state: %w", err)
	}
	return nil
}

// GenerateSessionID generates a new workspace session ID.
func GenerateSessionID() string {
	return uuid.New().String()
}

// GetCurrentConfig returns the selected config path, or "" when none is set.
func GetCurrentConfig() (string, error) {
	state, err := LoadState()
	if err != nil {
		return "", err
	}
	return state.Current, nil
}

// SetCurrentConfig records config as the selected config for the workspace.
func SetCurrentConfig(config string) error {
	state, err := LoadState()
	if err != nil {
		return err
	}
	state.Current = config
	return SaveState(state)
}

// SessionID returns the workspace session ID, creating and saving one if needed.
func SessionID() (string, error) {
	state, err := LoadState()
	if err != nil {
		return "", err
	}
	if state.Session == "" {
		if err := SaveState(state); err != nil {
			return "", err
		}
	}
	return state.Session, nil
}
