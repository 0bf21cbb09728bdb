package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Fetch the variables of the selected config again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting reload command")

		spinner, cleanup := startSpinner("Fetching variables...", verbose)
		defer cleanup()

		result, err := newSession().Reload(context.Background())
		if err != nil {
			spinner.FinalMSG = formatError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		spinner.FinalMSG = formatChooseResult("Reloaded", result)
		return nil
	},
}
