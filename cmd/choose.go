package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/utils"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/spf13/cobra"
)

var chooseCmd = &cobra.Command{
	Use:   "choose [config]",
	Short: "Select the envault config for the workspace",
	Long: `Selects the config whose variables are applied to commands run in this
workspace, and fetches its variables.

The config can be given as a path or by name, with or without the .yml
extension. Without an argument the available configs are offered for
selection when running in a terminal.

Examples:
  envault choose dev
  envault choose envault/staging.yml
  envault choose`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting choose command")
		ctx := context.Background()

		var config string
		if len(args) == 1 {
			config = args[0]
		} else {
			picked, err := pickConfig(ctx)
			if err != nil {
				printError(err)
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}
			if picked == "" {
				return nil
			}
			config = picked
		}

		spinner, cleanup := startSpinner("Fetching variables...", verbose)
		defer cleanup()

		result, err := newSession().Choose(ctx, workflows.ChooseOptions{Config: config})
		if err != nil {
			spinner.FinalMSG = formatError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		spinner.FinalMSG = formatChooseResult("Selected", result)
		return nil
	},
}

// pickConfig prompts for a config when attached to a terminal. Returns ""
// when there is no terminal to prompt on.
func pickConfig(ctx context.Context) (string, error) {
	list, err := workflows.List(ctx)
	if err != nil {
		return "", err
	}

	names := make([]string, len(list.Configs))
	defaultIdx := 0
	for i, c := range list.Configs {
		names[i] = c.Name
		if !c.Valid() {
			names[i] += " " + ui.Muted.Sprint("invalid")
		}
		if c.Current {
			defaultIdx = i
		}
	}

	if !utils.IsTerminal() {
		fmt.Println(ui.Error.Sprint("✗") + " No config given" + utils.FormatPaths(names) +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault choose <config>") + " with one of the configs above")
		return "", nil
	}

	idx, err := utils.PromptChoice(os.Stdin, os.Stdout, "Select an envault config", names, defaultIdx)
	if err != nil {
		return "", err
	}
	return list.Configs[idx].Path, nil
}
