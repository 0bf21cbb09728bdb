package environment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/envault/internal/errors"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const killTimeout = 2 * time.Second

// Command is a command to run inside the managed environment. Exactly one
// of Args or Shell is used; Shell wins when both are set.
type Command struct {
	Args  []string
	Shell string
	Dir   string

	// Env overrides the inherited process environment when non-nil.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String returns a printable form of the command.
func (c Command) String() string {
	if c.Shell != "" {
		return c.Shell
	}
	return strings.Join(c.Args, " ")
}

// Empty reports whether there is nothing to run.
func (c Command) Empty() bool {
	return strings.TrimSpace(c.Shell) == "" && len(c.Args) == 0
}

// Run runs the command and returns its exit code. The error is non-nil only
// when the command could not be started or parsed.
func Run(ctx context.Context, c Command) (int, error) {
	if c.Empty() {
		return 0, kerrors.ErrNoCommand
	}
	if strings.TrimSpace(c.Shell) != "" {
		return runShell(ctx, c)
	}
	return runExec(ctx, c)
}

func runExec(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to run %s: %w", c.Args[0], err)
}

func runShell(ctx context.Context, c Command) (int, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(c.Shell), "")
	if err != nil {
		return -1, fmt.Errorf("parse error: %w", err)
	}

	env := c.Env
	if env == nil {
		env = os.Environ()
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(c.Stdin, c.Stdout, c.Stderr),
		interp.ExecHandler(interp.DefaultExecHandler(killTimeout)),
	}
	if c.Dir != "" {
		opts = append(opts, interp.Dir(c.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return -1, fmt.Errorf("runner creation error: %w", err)
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return 0, nil
	}

	if status, ok := interp.IsExitStatus(err); ok {
		return int(status), nil
	}
	return -1, err
}
