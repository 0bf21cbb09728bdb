package workflows

import (
	"context"
	"errors"

	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/utils"
)

// ShowResult contains the variables of the current config.
type ShowResult struct {
	Config string

	// Vars maps variable names to values.
	Vars map[string]string

	// Names lists the variable names, sorted.
	Names []string

	// FetchErr is set when a fetch was needed and failed.
	FetchErr error
}

// Show returns the variables currently in effect for the current config,
// fetching them if this session has not loaded the config yet.
//
// Returns ErrNoConfigSelected if the workspace has no current config.
func (s *Session) Show(ctx context.Context) (*ShowResult, error) {
	path, err := currentConfig()
	if err != nil {
		return nil, err
	}

	vars, err := s.cachedOrFetch(ctx, path)
	if err != nil && !errors.Is(err, kerrors.ErrFetchFailed) {
		return nil, err
	}

	return &ShowResult{
		Config:   path,
		Vars:     vars,
		Names:    utils.SortedKeys(vars),
		FetchErr: err,
	}, nil
}
