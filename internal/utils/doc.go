// Package utils provides shared utility functions for the Envault CLI.
//
// # Filesystem Utilities
//
//   - FindWorkspaceRoot: walks up directories to find envault/ or .envault/
//   - IsDir, SamePath, RelOrAbs: small path helpers
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - SortedKeys, Dedupe
//
// # Terminal Utilities
//
//   - IsTerminal: checks if stdin is a terminal
//   - PromptChoice: numbered selection prompt used by `envault choose`
package utils
