package errors

import "errors"

// Workspace errors indicate issues locating the workspace or its selection.
var (
	// ErrWorkspaceNotFound indicates no envault/ or .envault/ folder was found above the working directory.
	ErrWorkspaceNotFound = errors.New("no envault workspace found")

	// ErrFolderNotInWorkspace indicates a folder argument is not one of the workspace folders.
	ErrFolderNotInWorkspace = errors.New("folder is not part of the workspace")

	// ErrNoConfigSelected indicates the workspace has no current config.
	ErrNoConfigSelected = errors.New("no envault config selected")

	// ErrInvalidState indicates the workspace state file is malformed.
	ErrInvalidState = errors.New("workspace state is invalid")
)

// Config file errors indicate issues with envault config files.
var (
	// ErrNoConfigsFound indicates no config files exist in any workspace folder.
	ErrNoConfigsFound = errors.New("no envault config files found")

	// ErrConfigNotFound indicates a specific config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates a config file failed to parse or validate.
	ErrInvalidConfig = errors.New("config file is invalid")

	// ErrConfigExists indicates a config file would be overwritten.
	ErrConfigExists = errors.New("config file already exists")

	// ErrInvalidConfigName indicates a config name is empty or contains invalid characters.
	ErrInvalidConfigName = errors.New("invalid config name")
)

// Fetch errors indicate the variable service could not be queried.
var (
	// ErrFetchFailed indicates the request for variables failed.
	ErrFetchFailed = errors.New("failed to fetch variables")
)

// Environment errors indicate issues applying variables to the process.
var (
	// ErrEnvNotSaved indicates a restore was attempted before the environment was saved.
	ErrEnvNotSaved = errors.New("environment restored before it was saved")

	// ErrInvalidVariableName indicates a variable name cannot be placed in the environment.
	ErrInvalidVariableName = errors.New("invalid environment variable name")

	// ErrNoCommand indicates run was invoked without a command.
	ErrNoCommand = errors.New("no command to run")

	// ErrReloadDisabled indicates watch was started with reload_config_on_save turned off.
	ErrReloadDisabled = errors.New("reload on save is disabled")
)
