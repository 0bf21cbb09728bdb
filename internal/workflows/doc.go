// Package workflows provides high-level orchestration for envault commands.
//
// Workflows coordinate the config files, the variable service, the session
// cache and the process environment to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Sessions
//
// A Session plays the part of an editor window: it owns the variable cache,
// the fetch client and the environment manager for one workspace. Fetches
// run on their own goroutine and the result is applied to the cache by the
// goroutine that started them, so the cache has a single writer.
//
//	session := workflows.NewSession(prefs, log)
//	result, err := session.Choose(ctx, workflows.ChooseOptions{Config: "dev"})
//
// # Available Workflows
//
//   - Choose: selects a config and fetches its variables
//   - Reload: re-fetches the variables of the current config
//   - Create: writes a new config from the template
//   - List: lists the configs in the workspace folders
//   - Show: reports the variables of the current config
//   - Status: expands the status template for the current config
//   - Run: runs a command with the current config's variables applied
//   - Watch: reloads the current config whenever it is saved
//   - Log: reads the audit log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. A failed
// fetch is not fatal: the config stays selected with no variables and the
// fetch error is reported on the result.
//
//	result, err := session.Reload(ctx)
//	if errors.Is(err, kerrors.ErrNoConfigSelected) {
//	    // Suggest `envault choose`
//	}
//	if result.FetchErr != nil {
//	    // Warn that no variables are available
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancelling it abandons an in-flight fetch or stops a running command.
package workflows
