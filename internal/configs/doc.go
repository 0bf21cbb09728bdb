// Package configs manages user settings and workspace state for Envault.
//
// Configuration is stored in TOML format at two levels:
//
//   - User settings: <user config dir>/envault/settings.toml
//   - Workspace state: <workspace>/.envault/state.toml
//
// # User Settings
//
// Preferences mirror the editor settings of the original tool:
// status_bar_format, default_api_key, default_api_url,
// reload_config_on_save, debug, added_watch_commands and request_timeout.
// A missing file, or a missing key, falls back to DefaultPreferences.
//
// # Workspace
//
// A workspace is the nearest directory above the working directory that
// contains an envault/ folder (config files) or a .envault/ folder (state).
// Additional folders can be attached with --folder; each folder may carry
// its own envault/ config folder.
//
// The workspace state records the currently selected config and a session
// UUID. It never holds variable values.
//
// Call InitWorkspaceSettings() before loading or saving state.
package configs
