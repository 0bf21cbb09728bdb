package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/spf13/cobra"
)

var (
	showValues bool
	showJSON   bool
)

func init() {
	showCmd.Flags().BoolVar(&showValues, "values", false, "show variable values as well as names")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
}

// resetShowCommandState resets the show command's global state for testing.
func resetShowCommandState() {
	showValues = false
	showJSON = false
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the variables of the selected config",
	Long: `Shows the names of the variables the selected config provides. Values
are hidden unless --values is given.

Examples:
  envault show
  envault show --values
  envault show --json --values`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command")

		spinner, cleanup := startSpinner("Loading variables...", verbose)
		result, err := newSession().Show(context.Background())
		if err != nil {
			spinner.FinalMSG = formatError(err)
			cleanup()
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		if result.FetchErr != nil {
			spinner.FinalMSG = formatFetchWarning(result.FetchErr)
		}
		cleanup()

		if showJSON {
			var out any = result.Names
			if showValues {
				out = result.Vars
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal variables to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println("Variables from " + ui.Path.Sprint(displayName(result.Config)) + " " + ui.Muted.Sprint(formatVarCount(len(result.Names))) + ":")
		for _, name := range result.Names {
			if showValues {
				fmt.Println("  " + ui.Key.Sprint(name) + "=" + result.Vars[name])
			} else {
				fmt.Println("  " + ui.Key.Sprint(name))
			}
		}
		return nil
	},
}
