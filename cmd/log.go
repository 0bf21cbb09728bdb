package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/envault/internal/audit"
	"github.com/PolarWolf314/envault/internal/ui"
	"github.com/PolarWolf314/envault/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logOperation string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "limit number of entries shown")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logOperation = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the workspace audit log: which configs were chosen, reloaded
and run with, and when. Variable values are never logged.

Examples:
  envault log                       # View full log
  envault log -n 10                 # Last 10 entries
  envault log --operation run       # Filter by operation
  envault log --json                # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		result, err := workflows.Log(context.Background(), workflows.LogOptions{
			Limit:      logLimit,
			Operations: logOperation,
		})
		if err != nil {
			printError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Println("No audit log entries found.")
			} else {
				fmt.Println("No audit log entries found matching the filters.")
			}
			return nil
		}

		if logJSON {
			data, err := json.MarshalIndent(result.Entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal entries to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, e := range result.Entries {
			status := ui.Success.Sprint(e.Status)
			if e.Status == audit.StatusFailed {
				status = ui.Error.Sprint(e.Status)
			}
			fmt.Printf("%-19s  %-7s  %-6s  %s\n", formatDateTime(e.Timestamp), e.Operation, status, formatDetails(e))
		}
		return nil
	},
}

// formatDateTime converts an audit timestamp to local "YYYY-MM-DD HH:MM:SS".
func formatDateTime(ts string) string {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// formatDetails summarises the operation-specific fields of an entry.
func formatDetails(e audit.Entry) string {
	var parts []string
	if e.Config != "" {
		parts = append(parts, e.Config)
	}
	if e.VarsCount > 0 {
		parts = append(parts, formatVarCount(e.VarsCount))
	}
	if e.Command != "" {
		parts = append(parts, "cmd="+e.Command)
	}
	if e.ExitCode != 0 {
		parts = append(parts, fmt.Sprintf("exit=%d", e.ExitCode))
	}
	if e.Error != "" {
		parts = append(parts, "error="+e.Error)
	}
	return strings.Join(parts, "  ")
}
