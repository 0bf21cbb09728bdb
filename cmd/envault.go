package cmd

import (
	"fmt"
	"time"

	"github.com/PolarWolf314/envault/internal/configs"
	logger "github.com/PolarWolf314/envault/internal/logging"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	folders []string
	timeout time.Duration
	Logger  logger.Logger
	prefs   *configs.Preferences

	RootCmd = &cobra.Command{
		Use:   "envault",
		Short: "Envault - run commands with variables fetched from an envault service",
		Long: `Envault requests environment variables from an envault service and
applies them to the commands you run.

Each workspace keeps its configs in an envault/ folder. A config names the
service URL, the environment variable holding the API key, and the variable
specs to request. Choose a config once, then run builds with its variables.

Examples:
  envault create dev --activate    # Create envault/dev.yml and select it
  envault choose dev               # Select a config and fetch its variables
  envault run -- make build        # Run a command with the variables applied
  envault watch -- go test ./...   # Reload on save and re-run the command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := configs.LoadPreferences()
			if err != nil {
				// Keep going with the defaults; settings are never required.
				loaded = configs.DefaultPreferences()
				Logger = logger.Logger{Verbose: verbose, Debug: debug}
				Logger.WarnfAlways("%v; using default settings", err)
			}
			prefs = loaded

			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug || prefs.Debug,
			}
			Logger.Debugf("Initializing envault with verbose=%t, debug=%t", verbose, Logger.Debug)

			if err := configs.InitWorkspaceSettings(folders); err != nil {
				return Logger.ErrorfAndReturn("failed to initialize workspace: %v", err)
			}
			Logger.Debugf("Workspace root: %q, folders: %v", configs.WorkspaceEnvaultSettings.Root, configs.WorkspaceEnvaultSettings.Folders)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(ui.Info.Sprint(figure.NewFigure("envault", "", true).String()))
			fmt.Println("Run " + ui.Code.Sprint("envault --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringArrayVarP(&folders, "folder", "f", nil, "add a workspace folder (repeatable)")
	RootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout, overriding the request_timeout setting")

	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(chooseCmd)
	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(openCmd)
	RootCmd.AddCommand(reloadCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(settingsCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	folders = nil
	timeout = 0
	prefs = nil
	resetCreateCommandState()
	resetShowCommandState()
	resetRunCommandState()
	resetWatchCommandState()
	resetLogCommandState()
	resetSettingsCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marker on every flag to prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	unset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	cmd.Flags().VisitAll(unset)
	cmd.PersistentFlags().VisitAll(unset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
