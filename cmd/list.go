package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the envault configs in the workspace",
	Long: `Lists the config files found in the envault/ folder of every workspace
folder. The selected config is marked with an asterisk and configs that fail
validation are flagged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		result, err := workflows.List(context.Background())
		if err != nil {
			printError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		fmt.Println("Configs in " + ui.Path.Sprint(configs.WorkspaceEnvaultSettings.Root) + ":")
		for _, c := range result.Configs {
			marker := "  "
			if c.Current {
				marker = ui.Success.Sprint("*") + " "
			}

			line := "  " + marker + ui.Path.Sprint(c.Name)
			if !c.Valid() {
				line += " " + ui.Error.Sprint("invalid: "+c.Err.Error())
			}
			fmt.Println(line)
		}

		if result.Current == "" {
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault choose") + " to select a config")
		}
		return nil
	},
}
