package workflows

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envault/internal/audit"
	"github.com/PolarWolf314/envault/internal/environment"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
)

// RunOptions configures the run workflow.
type RunOptions struct {
	Command environment.Command

	// Select only reports the command instead of running it, unless the
	// command is listed in added_watch_commands.
	Select bool
}

// RunResult contains the outcome of a run operation.
type RunResult struct {
	// Config is the config whose variables were applied, or "" when none
	// is selected.
	Config string

	// Build is false when the command was only selected, not run.
	Build bool

	VarsCount int
	ExitCode  int

	// FetchErr is set when a fetch was needed and failed; the command ran
	// with no envault variables.
	FetchErr error
}

// IsBuild reports whether opts describe a command that should run with the
// config's variables applied.
func (s *Session) IsBuild(opts RunOptions) bool {
	if !opts.Select {
		return true
	}
	return s.Prefs.IsWatchCommand(commandName(opts.Command))
}

// Run runs a command with the current config's variables applied, then
// restores the environment whatever the outcome. Without a selected config
// the command runs in the unchanged environment.
//
// Returns ErrNoCommand if the command is empty.
// Returns ErrInvalidConfig if the current config fails validation.
// Returns ErrInvalidVariableName if a fetched name cannot be set; the
// environment is left as it was and the command does not run.
func (s *Session) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Command.Empty() {
		return nil, kerrors.ErrNoCommand
	}

	result := &RunResult{Build: s.IsBuild(opts)}
	if !result.Build {
		return result, nil
	}

	path, err := currentConfig()
	switch {
	case errors.Is(err, kerrors.ErrNoConfigSelected):
		s.Logger.WarnfAlways("no envault config selected; running without envault variables")
		return s.runPlain(ctx, opts, result)
	case err != nil:
		return nil, err
	}
	result.Config = path

	entry := audit.NewEntry("run", path)
	entry.Command = opts.Command.String()

	vars, err := s.cachedOrFetch(ctx, path)
	if err != nil && !errors.Is(err, kerrors.ErrFetchFailed) {
		audit.Log(entry.Fail(err))
		return nil, err
	}
	result.FetchErr = err
	result.VarsCount = len(vars)
	entry.VarsCount = len(vars)

	if err := s.Env.Set(path, vars); err != nil {
		if rerr := s.Env.Restore(); rerr != nil && !errors.Is(rerr, kerrors.ErrEnvNotSaved) {
			s.Logger.Errorf("failed to restore environment: %v", rerr)
		}
		audit.Log(entry.Fail(err))
		return nil, err
	}

	cmd := opts.Command
	if cmd.Env == nil {
		cmd.Env = environment.FormatEnviron(s.Env.Current())
	}
	code, runErr := environment.Run(ctx, cmd)

	if err := s.Env.Restore(); err != nil && runErr == nil {
		runErr = err
	}

	result.ExitCode = code
	entry.ExitCode = code
	if runErr == nil && code != 0 {
		entry.Status = audit.StatusFailed
	}
	audit.Log(entry.Fail(runErr))

	if runErr != nil {
		return result, runErr
	}
	return result, nil
}

func (s *Session) runPlain(ctx context.Context, opts RunOptions, result *RunResult) (*RunResult, error) {
	code, err := environment.Run(ctx, opts.Command)
	result.ExitCode = code
	return result, err
}

// commandName returns the base name of the program a command runs.
func commandName(cmd environment.Command) string {
	if cmd.Shell != "" {
		fields := strings.Fields(cmd.Shell)
		if len(fields) == 0 {
			return ""
		}
		return filepath.Base(fields[0])
	}
	if len(cmd.Args) == 0 {
		return ""
	}
	return filepath.Base(cmd.Args[0])
}
