package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/environment"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	runSelect bool
	runShell  string
)

func init() {
	runCmd.Flags().BoolVar(&runSelect, "select", false, "only report the command; do not run it or apply variables")
	runCmd.Flags().StringVar(&runShell, "shell", "", "run a shell script instead of a command")
	runCmd.Flags().SetInterspersed(false)
}

// resetRunCommandState resets the run command's global state for testing.
func resetRunCommandState() {
	runSelect = false
	runShell = ""
}

var runCmd = &cobra.Command{
	Use:   "run [--select] [--shell script] [--] [command [args...]]",
	Short: "Run a command with the selected config's variables",
	Long: `Runs a command with the variables of the selected config applied to its
environment, along with ENVAULT=1 and ENVAULT_CONFIG set to the config path.
The environment is restored afterwards and the command's exit code is
returned.

--select reports the command without running it, unless the command is
listed in the added_watch_commands setting.

Examples:
  envault run -- make build
  envault run --shell 'echo "$DATABASE_URL" && make test'
  envault run --select -- make build`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting run command")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := workflows.RunOptions{
			Command: environment.Command{
				Args:   args,
				Shell:  runShell,
				Stdin:  os.Stdin,
				Stdout: os.Stdout,
				Stderr: os.Stderr,
			},
			Select: runSelect,
		}
		return runWithSession(ctx, newSession(), opts)
	},
}

func runWithSession(ctx context.Context, session *workflows.Session, opts workflows.RunOptions) error {
	if opts.Command.Empty() {
		printError(kerrors.ErrNoCommand)
		return &ExitError{Code: 1}
	}

	if !session.IsBuild(opts) {
		fmt.Println(ui.Info.Sprint("→") + " Selected " + ui.Code.Sprint(opts.Command.String()) + " " + ui.Muted.Sprint("not run"))
		return nil
	}

	// Fetch up front so the spinner does not overlap the command's output.
	spinner, cleanup := startSpinner("Fetching variables...", verbose)
	shown, err := session.Show(ctx)
	switch {
	case err == nil && shown.FetchErr != nil:
		spinner.FinalMSG = formatFetchWarning(shown.FetchErr)
	case err == nil:
		Logger.Infof("Applying %s from %s", formatVarCount(len(shown.Names)), displayName(shown.Config))
	case !errors.Is(err, kerrors.ErrNoConfigSelected):
		spinner.FinalMSG = formatError(err)
		cleanup()
		if isUnexpectedError(err) {
			return err
		}
		return &ExitError{Code: 1}
	}
	cleanup()

	result, err := session.Run(ctx, opts)
	if err != nil {
		if errors.Is(err, kerrors.ErrInvalidConfig) || errors.Is(err, kerrors.ErrNoCommand) || errors.Is(err, kerrors.ErrInvalidVariableName) {
			printError(err)
			return &ExitError{Code: 1}
		}
		return Logger.ErrorfAndReturn("failed to run %s: %v", opts.Command.String(), err)
	}

	Logger.Infof("Command exited with code %d", result.ExitCode)
	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
