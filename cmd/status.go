package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status line for the selected config",
	Long: `Prints the status_bar_format setting expanded for the selected config,
for use in shell prompts and editor status bars. Prints nothing when no
config is selected or the format is empty.

Template variables: ${file}, ${folder}, ${file_path}, ${file_name},
${file_base_name}, ${file_extension}.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		status, err := newSession().Status()
		if err != nil {
			Logger.Infof("No status available: %v", err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		if status != "" {
			fmt.Println(status)
		}
		return nil
	},
}
