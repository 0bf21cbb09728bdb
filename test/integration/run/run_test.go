package run_test

import (
	"errors"
	"net/http"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/PolarWolf314/envault/cmd"
	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/test/integration/shared"
)

// TestRunIntegration contains integration tests for the `envault run` command.
func TestRunIntegration(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	originalUserSettings := configs.UserEnvaultSettings

	t.Run("RunShellWithVariables", func(t *testing.T) {
		testRunShellWithVariables(t, originalWd, originalUserSettings)
	})

	t.Run("RunRestoresEnvironment", func(t *testing.T) {
		testRunRestoresEnvironment(t, originalWd, originalUserSettings)
	})

	t.Run("RunPropagatesExitCode", func(t *testing.T) {
		testRunPropagatesExitCode(t, originalWd, originalUserSettings)
	})

	t.Run("RunSelectDoesNotRun", func(t *testing.T) {
		testRunSelectDoesNotRun(t, originalWd, originalUserSettings)
	})

	t.Run("RunWithoutCommand", func(t *testing.T) {
		testRunWithoutCommand(t, originalWd, originalUserSettings)
	})

	t.Run("RunWithFailedFetch", func(t *testing.T) {
		testRunWithFailedFetch(t, originalWd, originalUserSettings)
	})
}

func chooseDev(t *testing.T, tempDir string, status int, vars map[string]string) *shared.VaultServer {
	t.Helper()
	vs := shared.StartVaultServer(t, status, vars)
	shared.WriteConfig(t, tempDir, "dev.yml", vs.URL, "a")
	if _, err := shared.RunCLI("choose", "dev"); err != nil {
		t.Fatalf("Failed to choose config: %v", err)
	}
	return vs
}

func testRunShellWithVariables(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "run-shell")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	chooseDev(t, tempDir, http.StatusOK, map[string]string{"GREETING": "hello"})

	output, err := shared.RunCLI("run", "--shell", `echo "greeting=$GREETING envault=$ENVAULT"`)
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}

	if !strings.Contains(output, "greeting=hello envault=1") {
		t.Errorf("Expected variables in command output: %s", output)
	}
}

func testRunRestoresEnvironment(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "run-restore")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	chooseDev(t, tempDir, http.StatusOK, map[string]string{"ENVAULT_RUN_TEST_ONLY": "set"})

	if _, err := shared.RunCLI("run", "--shell", "true"); err != nil {
		t.Fatalf("Command failed unexpectedly: %v", err)
	}

	if _, ok := os.LookupEnv("ENVAULT_RUN_TEST_ONLY"); ok {
		t.Errorf("Expected fetched variable to be removed after run")
	}
	if _, ok := os.LookupEnv("ENVAULT_CONFIG"); ok {
		t.Errorf("Expected ENVAULT_CONFIG to be removed after run")
	}
	if os.Getenv(shared.TestAPIKeyName) != "test-api-key" {
		t.Errorf("Expected original environment to be restored")
	}
}

func testRunPropagatesExitCode(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	tempDir, tempUserDir := shared.NewTempDirs(t, "run-exit")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	chooseDev(t, tempDir, http.StatusOK, map[string]string{"A": "1"})

	_, err := shared.RunCLI("run", "--", "sh", "-c", "exit 3")

	var exitErr *cmd.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Expected exit code 3, got %d", exitErr.Code)
	}
}

func testRunSelectDoesNotRun(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "run-select")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	vs := chooseDev(t, tempDir, http.StatusOK, map[string]string{"A": "1"})

	output, err := shared.RunCLI("run", "--select", "--shell", "echo ran-the-command")
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}

	if !strings.Contains(output, "Selected `echo ran-the-command`") {
		t.Errorf("Expected selection message in output: %s", output)
	}
	if strings.Contains(output, "ran-the-command\n") {
		t.Errorf("Command should not have run: %s", output)
	}
	if len(vs.Requests()) != 1 {
		t.Errorf("Expected no fetch for a selection, got %d requests", len(vs.Requests()))
	}
}

func testRunWithoutCommand(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "run-empty")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)

	output, err := shared.RunCLI("run")

	var exitErr *cmd.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("Expected exit code 1, got %v", err)
	}
	if !strings.Contains(output, "No command to run") {
		t.Errorf("Expected usage message in output: %s", output)
	}
}

func testRunWithFailedFetch(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, tempUserDir := shared.NewTempDirs(t, "run-fail")
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	chooseDev(t, tempDir, http.StatusForbidden, nil)

	output, err := shared.RunCLI("run", "--shell", `echo "marker=$ENVAULT"`)
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}

	if !strings.Contains(output, "Unable to fetch variables") {
		t.Errorf("Expected fetch warning in output: %s", output)
	}
	// The command still runs, without envault variables beyond the markers.
	if !strings.Contains(output, "marker=1") {
		t.Errorf("Expected command to run: %s", output)
	}
}
