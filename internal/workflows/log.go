package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/envault/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Operations filters entries by operation types (comma-separated).
	Operations string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries, oldest first.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrWorkspaceNotFound if there is no workspace. A missing log
// yields no entries.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if _, err := workspaceFolders(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.TrimSpace(op)] = true
		}

		var filtered []audit.Entry
		for _, e := range entries {
			if ops[e.Operation] {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	result.Entries = audit.Tail(entries, opts.Limit)
	return result, nil
}
