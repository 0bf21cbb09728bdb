package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/envault/internal/audit"
	"github.com/PolarWolf314/envault/internal/configs"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/utils"
)

// ChooseOptions configures the choose workflow.
type ChooseOptions struct {
	// Config is a config path or the name of a config in the workspace.
	Config string
}

// ChooseResult contains the outcome of a choose or reload operation.
type ChooseResult struct {
	// Config is the absolute path of the selected config.
	Config string

	// VarNames lists the fetched variable names, sorted.
	VarNames []string

	// FetchErr is set when the variables could not be fetched. The config
	// stays selected with no variables.
	FetchErr error
}

// Choose selects a config for the workspace and fetches its variables.
// Choosing the config that is already selected fetches again.
//
// Returns ErrWorkspaceNotFound if there is no workspace.
// Returns ErrConfigNotFound if the config does not exist.
// Returns ErrInvalidConfig if the config fails validation; it stays selected.
func (s *Session) Choose(ctx context.Context, opts ChooseOptions) (*ChooseResult, error) {
	path, err := ResolveConfig(opts.Config)
	if err != nil {
		return nil, err
	}

	if err := configs.SetCurrentConfig(path); err != nil {
		return nil, fmt.Errorf("saving current config: %w", err)
	}
	s.Logger.Infof("Selected config %s", path)

	return s.fetchCurrent(ctx, "choose", path)
}

// Reload fetches the variables of the current config again.
//
// Returns ErrNoConfigSelected if the workspace has no current config.
func (s *Session) Reload(ctx context.Context) (*ChooseResult, error) {
	path, err := currentConfig()
	if err != nil {
		return nil, err
	}
	return s.fetchCurrent(ctx, "reload", path)
}

func (s *Session) fetchCurrent(ctx context.Context, op, path string) (*ChooseResult, error) {
	entry := audit.NewEntry(op, path)

	vars, err := s.LoadAndFetch(ctx, path)
	if err != nil && !errors.Is(err, kerrors.ErrFetchFailed) {
		audit.Log(entry.Fail(err))
		return nil, err
	}

	entry.VarsCount = len(vars)
	audit.Log(entry.Fail(err))

	return &ChooseResult{
		Config:   path,
		VarNames: utils.SortedKeys(vars),
		FetchErr: err,
	}, nil
}
