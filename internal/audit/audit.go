package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/internal/utils"
)

// Status values recorded for an operation.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry represents a single audit log entry. Variable values are never recorded.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	Session   string `json:"session"` // Workspace session ID.
	Operation string `json:"op"`      // Operation name.
	Status    string `json:"status"`  // StatusOK or StatusFailed.

	// Optional fields depending on operation.
	Config    string `json:"config,omitempty"`     // Config path, relative to the workspace root.
	VarsCount int    `json:"vars_count,omitempty"` // For choose/reload/run.
	ExitCode  int    `json:"exit_code,omitempty"`  // For run/watch.
	Command   string `json:"command,omitempty"`    // For run/watch.
	Error     string `json:"error,omitempty"`      // When Status is StatusFailed.
}

// Log appends an entry to the audit log.
// If logging fails, the operation continues; audit logging is best-effort.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.Status == "" {
		entry.Status = StatusOK
	}

	logPath := LogPath()
	if logPath == "" {
		// Workspace not found, skip logging.
		return
	}

	if entry.Session == "" {
		if id, err := configs.SessionID(); err == nil {
			entry.Session = id
		}
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return
	}

	// #nosec G302 -- audit log holds no variable values.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// NewEntry returns an entry for op with the config path made relative to
// the workspace root.
func NewEntry(op, config string) Entry {
	entry := Entry{Operation: op}
	if config != "" {
		entry.Config = relToWorkspace(config)
	}
	return entry
}

// Fail marks the entry as failed with err.
func (e Entry) Fail(err error) Entry {
	if err == nil {
		return e
	}
	e.Status = StatusFailed
	e.Error = err.Error()
	return e
}

// LogPath returns the path to the audit log file.
// Returns empty string if no workspace was found.
func LogPath() string {
	return configs.WorkspaceEnvaultSettings.AuditPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Tail returns the last n entries; n <= 0 returns all of them.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

func relToWorkspace(path string) string {
	root := configs.WorkspaceEnvaultSettings.Root
	if root == "" {
		return path
	}
	return filepath.ToSlash(utils.RelOrAbs(root, path))
}
