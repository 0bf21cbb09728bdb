package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/envault/internal/audit"
	"github.com/PolarWolf314/envault/internal/configs"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/secrets"
	"github.com/PolarWolf314/envault/internal/utils"
)

// CreateOptions configures the create workflow.
type CreateOptions struct {
	// Name is the config name; any extension is replaced with .yml.
	Name string

	// Folder is the workspace folder to create the config in. Defaults to
	// the workspace root.
	Folder string

	// Activate chooses the new config once it is written.
	Activate bool

	// Force overwrites an existing config.
	Force bool
}

// CreateResult contains the outcome of a create operation.
type CreateResult struct {
	// Path is the absolute path of the new config.
	Path string

	// Activated is the choose result when Activate was set.
	Activated *ChooseResult
}

// Create writes a new config from the template, filling in the default
// API key name and URL from the user settings.
//
// Returns ErrInvalidConfigName if the name is empty or has invalid characters.
// Returns ErrFolderNotInWorkspace if Folder is not a workspace folder.
// Returns ErrConfigExists if the config exists and Force is not set.
func (s *Session) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	folders, err := workspaceFolders()
	if err != nil {
		return nil, err
	}

	if !secrets.ValidConfigName(opts.Name) {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidConfigName, opts.Name)
	}

	folder := configs.WorkspaceEnvaultSettings.Root
	if opts.Folder != "" {
		folder, err = matchFolder(folders, opts.Folder)
		if err != nil {
			return nil, err
		}
	}

	path := secrets.ConfigPath(folder, opts.Name)
	entry := audit.NewEntry("create", path)

	if err := secrets.CreateConfig(path, s.Prefs.DefaultAPIKey, s.Prefs.DefaultAPIURL, opts.Force); err != nil {
		audit.Log(entry.Fail(err))
		return nil, err
	}
	audit.Log(entry)
	s.Logger.Infof("Created config %s", path)

	result := &CreateResult{Path: path}
	if !opts.Activate {
		return result, nil
	}

	result.Activated, err = s.Choose(ctx, ChooseOptions{Config: path})
	if err != nil {
		return result, err
	}
	return result, nil
}

func matchFolder(folders []string, folder string) (string, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("resolving folder %s: %w", folder, err)
	}
	for _, f := range folders {
		if utils.SamePath(f, abs) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", kerrors.ErrFolderNotInWorkspace, folder)
}
