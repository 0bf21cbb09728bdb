// Package audit provides audit trail logging for envault operations.
//
// Choosing, reloading and running with a config is recorded in a
// workspace-level audit log, so a team can see which configs were used
// and when. Variable names and values are never written.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	.envault/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Workspace session ID
//   - Operation name and status
//   - Operation-specific details (config, variable count, exit code)
//
// # Usage
//
//	entry := audit.NewEntry("choose", configPath)
//	entry.VarsCount = len(vars)
//	audit.Log(entry.Fail(err))
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display.
// Malformed entries are silently skipped to handle partial writes.
package audit
