package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	createFolder   string
	createActivate bool
	createForce    bool
)

func init() {
	createCmd.Flags().StringVar(&createFolder, "in", "", "workspace folder to create the config in (default: workspace root)")
	createCmd.Flags().BoolVar(&createActivate, "activate", false, "select the new config once it is created")
	createCmd.Flags().BoolVar(&createForce, "force", false, "overwrite an existing config")
}

// resetCreateCommandState resets the create command's global state for testing.
func resetCreateCommandState() {
	createFolder = ""
	createActivate = false
	createForce = false
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new envault config",
	Long: `Creates envault/<name>.yml from a template, using the default_api_key
and default_api_url settings. Outside a workspace the current folder
becomes the workspace root.

Examples:
  envault create dev
  envault create staging --activate
  envault create shared --in ../common --folder ../common`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create command")

		if configs.WorkspaceEnvaultSettings.Root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to get working directory: %v", err)
			}
			if err := configs.SetWorkspaceRoot(wd, folders); err != nil {
				return Logger.ErrorfAndReturn("failed to initialize workspace: %v", err)
			}
			Logger.Infof("No workspace found; using %s", wd)
		}

		spinner, cleanup := startSpinner("Creating config...", verbose)
		defer cleanup()

		result, err := newSession().Create(context.Background(), workflows.CreateOptions{
			Name:     args[0],
			Folder:   createFolder,
			Activate: createActivate,
			Force:    createForce,
		})
		if err != nil && result == nil {
			spinner.FinalMSG = formatError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		msg := ui.Success.Sprint("✓") + " Created " + ui.Path.Sprint(displayName(result.Path))
		switch {
		case err != nil:
			msg += "\n" + formatError(err)
		case result.Activated != nil:
			msg += "\n" + formatChooseResult("Selected", result.Activated)
		default:
			msg += "\n" + ui.Info.Sprint("→") + " Add variable specs to it, then run " + ui.Code.Sprint(fmt.Sprintf("envault choose %s", args[0]))
		}
		spinner.FinalMSG = msg
		return nil
	},
}
