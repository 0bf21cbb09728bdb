package workflows

import (
	"context"
	"path/filepath"

	"github.com/PolarWolf314/envault/internal/configs"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/secrets"
	"github.com/PolarWolf314/envault/internal/utils"
)

// ConfigInfo describes a config file found in the workspace.
type ConfigInfo struct {
	// Path is the absolute path of the config.
	Path string

	// Name is Path relative to the workspace root when it lies beneath it.
	Name string

	// Folder is the workspace folder holding the config.
	Folder string

	// Current is true for the selected config.
	Current bool

	// Err is set when the config fails to load.
	Err error
}

// Valid reports whether the config loaded cleanly.
func (c ConfigInfo) Valid() bool {
	return c.Err == nil
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	Configs []ConfigInfo

	// Current is the selected config path, or "".
	Current string
}

// List returns every config in the workspace folders along with its
// validity.
//
// Returns ErrWorkspaceNotFound if there is no workspace.
// Returns ErrNoConfigsFound if no workspace folder has a config.
func List(ctx context.Context) (*ListResult, error) {
	folders, err := workspaceFolders()
	if err != nil {
		return nil, err
	}

	files, err := secrets.ScanWorkspace(folders)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, kerrors.ErrNoConfigsFound
	}

	current, err := configs.GetCurrentConfig()
	if err != nil {
		return nil, err
	}

	root := configs.WorkspaceEnvaultSettings.Root
	result := &ListResult{Current: current}
	for _, f := range files {
		_, loadErr := secrets.LoadIfExists(f)
		result.Configs = append(result.Configs, ConfigInfo{
			Path:    f,
			Name:    filepath.ToSlash(utils.RelOrAbs(root, f)),
			Folder:  filepath.Dir(filepath.Dir(f)),
			Current: utils.SamePath(f, current),
			Err:     loadErr,
		})
	}

	return result, nil
}
