package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/PolarWolf314/envault/internal/environment"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/spf13/cobra"
)

var watchShell string

func init() {
	watchCmd.Flags().StringVar(&watchShell, "shell", "", "re-run a shell script after each reload")
	watchCmd.Flags().SetInterspersed(false)
}

// resetWatchCommandState resets the watch command's global state for testing.
func resetWatchCommandState() {
	watchShell = ""
}

var watchCmd = &cobra.Command{
	Use:   "watch [--shell script] [--] [command [args...]]",
	Short: "Reload the selected config whenever it is saved",
	Long: `Watches the selected config and fetches its variables again each time
the file is saved. When a command is given it is run after every
successful reload with the refreshed variables. Stop with Ctrl-C.

Requires the reload_config_on_save setting, which is on by default.

Examples:
  envault watch
  envault watch -- go test ./...
  envault watch --shell 'make build && ./bin/server'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting watch command")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := workflows.WatchOptions{
			Command: workflows.RunOptions{
				Command: environment.Command{
					Args:   args,
					Shell:  watchShell,
					Stdin:  os.Stdin,
					Stdout: os.Stdout,
					Stderr: os.Stderr,
				},
			},
			OnReload: func(result *workflows.ChooseResult, err error) {
				if err != nil {
					printError(err)
					return
				}
				fmt.Println(formatChooseResult("Reloaded", result))
			},
			OnRun: func(result *workflows.RunResult, err error) {
				if err != nil {
					printError(err)
					return
				}
				if result.ExitCode != 0 {
					fmt.Println(ui.Warning.Sprint("⚠") + " Command exited with code " + fmt.Sprint(result.ExitCode))
				}
			},
		}

		err := newSession().Watch(ctx, opts)
		if err != nil {
			printError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		return nil
	},
}
