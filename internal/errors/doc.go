// Package errors provides typed error values for the Envault CLI.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Workspace errors: ErrWorkspaceNotFound, ErrNoConfigSelected
//   - Config file errors: ErrConfigNotFound, ErrInvalidConfig, ErrConfigExists
//   - Fetch errors: ErrFetchFailed
//   - Environment errors: ErrEnvNotSaved, ErrNoCommand
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%s: apiKeyName must exist and be a string: %w", path, errors.ErrInvalidConfig)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrNoConfigSelected) {
//	    // Point the user at `envault choose`
//	}
package errors
