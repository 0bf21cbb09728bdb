package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/envault/internal/configs"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/utils"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/briandowns/spinner"
)

// ExitError carries the exit code of a command run by envault.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !Logger.Debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// newSession creates a workflow session from the loaded settings and flags.
func newSession() *workflows.Session {
	p := prefs
	if p == nil {
		p = configs.DefaultPreferences()
	}
	if timeout > 0 {
		overridden := *p
		overridden.RequestTimeout = timeout.String()
		p = &overridden
	}
	return workflows.NewSession(p, Logger)
}

// displayName returns a config path relative to the workspace root.
func displayName(path string) string {
	root := configs.WorkspaceEnvaultSettings.Root
	if root == "" {
		return path
	}
	return utils.RelOrAbs(root, path)
}

// formatVarCount returns "1 variable" or "N variables".
func formatVarCount(n int) string {
	if n == 1 {
		return "1 variable"
	}
	return fmt.Sprintf("%d variables", n)
}

// formatFetchWarning formats a failed fetch for display to the user.
func formatFetchWarning(err error) string {
	return ui.Warning.Sprint("⚠") + " Unable to fetch variables: " + err.Error() + "\n" +
		ui.Info.Sprint("→") + " No envault variables are available until the config is reloaded with " + ui.Code.Sprint("envault reload")
}

// formatChooseResult formats the outcome of choose or reload.
func formatChooseResult(verb string, result *workflows.ChooseResult) string {
	if result.FetchErr != nil {
		return ui.Success.Sprint("✓") + " " + verb + " " + ui.Path.Sprint(displayName(result.Config)) + "\n" +
			formatFetchWarning(result.FetchErr)
	}
	return ui.Success.Sprint("✓") + " " + verb + " " + ui.Path.Sprint(displayName(result.Config)) +
		" " + ui.Muted.Sprint(formatVarCount(len(result.VarNames)))
}

// formatError formats a workflow error for display to the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrWorkspaceNotFound):
		return ui.Error.Sprint("✗") + " No envault workspace found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault create <name>") + " to start one in this folder"

	case errors.Is(err, kerrors.ErrNoConfigSelected):
		return ui.Error.Sprint("✗") + " No envault config selected\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault choose") + " to select one"

	case errors.Is(err, kerrors.ErrNoConfigsFound):
		return ui.Error.Sprint("✗") + " No envault config files found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault create <name>") + " to create one"

	case errors.Is(err, kerrors.ErrConfigNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault list") + " to see the available configs"

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " Invalid envault config: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault open") + " to fix it"

	case errors.Is(err, kerrors.ErrConfigExists):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it"

	case errors.Is(err, kerrors.ErrInvalidConfigName):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Config names cannot be empty or contain " + ui.Highlight.Sprint(`/<>:"\|?*`)

	case errors.Is(err, kerrors.ErrFolderNotInWorkspace):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Add it with " + ui.Flag.Sprint("--folder")

	case errors.Is(err, kerrors.ErrReloadDisabled):
		return ui.Error.Sprint("✗") + " Reload on save is disabled\n" +
			ui.Info.Sprint("→") + " Set " + ui.Code.Sprint("reload_config_on_save = true") + " in " + ui.Path.Sprint(configs.SettingsPath())

	case errors.Is(err, kerrors.ErrNoCommand):
		return ui.Error.Sprint("✗") + " No command to run\n" +
			ui.Info.Sprint("→") + " Usage: " + ui.Code.Sprint("envault run -- <command> [args...]") + " or " + ui.Flag.Sprint("--shell") + " " + ui.Highlight.Sprint("<script>")

	case errors.Is(err, kerrors.ErrInvalidVariableName):
		return ui.Error.Sprint("✗") + " The envault service returned an unusable variable: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The command was not run and the environment is unchanged"

	case errors.Is(err, kerrors.ErrInvalidState):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Delete " + ui.Path.Sprint(configs.WorkspaceEnvaultSettings.StatePath) + " and choose a config again"

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrWorkspaceNotFound),
		errors.Is(err, kerrors.ErrNoConfigSelected),
		errors.Is(err, kerrors.ErrNoConfigsFound),
		errors.Is(err, kerrors.ErrConfigNotFound),
		errors.Is(err, kerrors.ErrInvalidConfig),
		errors.Is(err, kerrors.ErrConfigExists),
		errors.Is(err, kerrors.ErrInvalidConfigName),
		errors.Is(err, kerrors.ErrFolderNotInWorkspace),
		errors.Is(err, kerrors.ErrReloadDisabled),
		errors.Is(err, kerrors.ErrInvalidVariableName),
		errors.Is(err, kerrors.ErrNoCommand):
		return false
	default:
		return true
	}
}

// printError prints a workflow error without a spinner.
func printError(err error) {
	fmt.Println(formatError(err))
}

// printSuccess prints a success message without a spinner.
func printSuccess(msg string) {
	fmt.Println(ui.Success.Sprint("✓") + " " + msg)
}
