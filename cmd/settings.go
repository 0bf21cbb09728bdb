package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/spf13/cobra"
)

var settingsForce bool

func init() {
	settingsInitCmd.Flags().BoolVar(&settingsForce, "force", false, "overwrite an existing settings file")
	settingsCmd.AddCommand(settingsInitCmd)
}

// resetSettingsCommandState resets the settings command's global state for testing.
func resetSettingsCommandState() {
	settingsForce = false
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective envault settings",
	Long: `Shows the settings in effect, read from settings.toml in the user
configuration directory. Settings missing from the file use their defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings command")

		p := prefs
		if p == nil {
			p = configs.DefaultPreferences()
		}

		path := configs.SettingsPath()
		source := "defaults"
		if _, err := os.Stat(path); err == nil {
			source = path
		}

		fmt.Println("Settings " + ui.Muted.Sprint(source) + ":")
		printSetting("status_bar_format", fmt.Sprintf("%q", p.StatusBarFormat))
		printSetting("added_watch_commands", "["+strings.Join(p.AddedWatchCommands, ", ")+"]")
		printSetting("default_api_key", p.DefaultAPIKey)
		printSetting("default_api_url", p.DefaultAPIURL)
		printSetting("reload_config_on_save", fmt.Sprint(p.ReloadConfigOnSave))
		printSetting("debug", fmt.Sprint(p.Debug))
		printSetting("request_timeout", p.RequestTimeout)
		return nil
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings init command")

		path := configs.SettingsPath()
		if _, err := os.Stat(path); err == nil && !settingsForce {
			fmt.Println(ui.Error.Sprint("✗") + " Settings file already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		}

		if err := configs.SavePreferences(configs.DefaultPreferences()); err != nil {
			return Logger.ErrorfAndReturn("failed to write settings: %v", err)
		}
		printSuccess("Wrote default settings to " + ui.Path.Sprint(path))
		return nil
	},
}

func printSetting(name, value string) {
	fmt.Printf("  %-22s %s\n", ui.Key.Sprint(name), value)
}
