package cmd

import (
	"os"
	"os/exec"
	"strings"

	"github.com/PolarWolf314/envault/internal/configs"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [config]",
	Short: "Open an envault config for editing",
	Long: `Opens the selected config, or the named one, in $VISUAL or $EDITOR.
Without either set, the config is opened with the system default
application.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting open command")

		path, err := configToOpen(args)
		if err != nil {
			printError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		editor := os.Getenv("VISUAL")
		if editor == "" {
			editor = os.Getenv("EDITOR")
		}

		if fields := strings.Fields(editor); len(fields) > 0 {
			Logger.Debugf("Opening %s with %s", path, editor)
			editorCmd := exec.Command(fields[0], append(fields[1:], path)...)
			editorCmd.Stdin = os.Stdin
			editorCmd.Stdout = os.Stdout
			editorCmd.Stderr = os.Stderr
			if err := editorCmd.Run(); err != nil {
				return Logger.ErrorfAndReturn("failed to run editor %s: %v", editor, err)
			}
			return nil
		}

		Logger.Debugf("Opening %s with the default application", path)
		if err := open.Run(path); err != nil {
			return Logger.ErrorfAndReturn("failed to open %s: %v", path, err)
		}
		printSuccess("Opened " + ui.Path.Sprint(displayName(path)))
		return nil
	},
}

func configToOpen(args []string) (string, error) {
	if len(args) == 1 {
		return workflows.ResolveConfig(args[0])
	}
	if configs.WorkspaceEnvaultSettings.Root == "" {
		return "", kerrors.ErrWorkspaceNotFound
	}
	current, err := configs.GetCurrentConfig()
	if err != nil {
		return "", err
	}
	if current == "" {
		return "", kerrors.ErrNoConfigSelected
	}
	return current, nil
}
