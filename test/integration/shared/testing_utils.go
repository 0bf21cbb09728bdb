// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test workspaces,
// capturing output, and standing in for the envault service.
package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/PolarWolf314/envault/cmd"
	"github.com/PolarWolf314/envault/internal/configs"
	logger "github.com/PolarWolf314/envault/internal/logging"
	"github.com/spf13/cobra"
)

// TestAPIKeyName is the API key variable written into test configs.
const TestAPIKeyName = "ENVAULT_TEST_API_KEY"

// SetupTestEnvironment changes into tempDir and points the user settings at tempUserDir.
func SetupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserEnvaultSettings = originalUserSettings
		configs.ResetWorkspaceSettings()
		cmd.ResetGlobalState()
	})

	// Override user settings to use temp directory
	configs.UserEnvaultSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
	}

	t.Setenv(TestAPIKeyName, "test-api-key")
	t.Setenv("NO_COLOR", "1")
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI prepares the root command to run with args.
func CreateTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.ResetGlobalState()

	// Set global flags for the actual command (needed for the real command implementations)
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)

	// Initialize the logger with the test flags
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := cmd.GetRootCmd()

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
		for _, subcmd := range rootCmd.Commands() {
			subcmd.SetOut(stdout)
		}
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
		for _, subcmd := range rootCmd.Commands() {
			subcmd.SetErr(stderr)
		}
	}

	rootCmd.SetArgs(args)

	if err := rootCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := rootCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// RunCLI runs envault with args and returns the captured output.
func RunCLI(args ...string) (string, error) {
	return CaptureOutput(func() error {
		return CreateTestCLI(args, nil, nil, false, false).Execute()
	})
}

// VaultServer stands in for the envault service, answering every load
// request with the same variables. A non-200 status fails every request.
type VaultServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

// Requests returns the variable specs of each request received, comma-joined.
func (vs *VaultServer) Requests() []string {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return append([]string(nil), vs.requests...)
}

// StartVaultServer starts a VaultServer that is closed when the test ends.
func StartVaultServer(t *testing.T, status int, vars map[string]string) *VaultServer {
	t.Helper()
	vs := &VaultServer{}
	vs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var specs []string
		_ = json.NewDecoder(r.Body).Decode(&specs)
		vs.mu.Lock()
		vs.requests = append(vs.requests, strings.Join(specs, ","))
		vs.mu.Unlock()

		if r.URL.Path != "/load" || r.Header.Get("api-key") != "test-api-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if status != http.StatusOK {
			http.Error(w, "error 1010", status)
			return
		}
		_ = json.NewEncoder(w).Encode(vars)
	}))
	t.Cleanup(vs.Close)
	return vs
}

// WriteConfig writes envault/<name> under dir and returns its absolute path.
func WriteConfig(t *testing.T, dir, name, url string, vars ...string) string {
	t.Helper()
	configDir := filepath.Join(dir, "envault")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create envault folder: %v", err)
	}

	content := fmt.Sprintf("apiKeyName: %s\nurl: %s\nvars: [%s]\n", TestAPIKeyName, url, strings.Join(vars, ", "))
	path := filepath.Join(configDir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("Failed to resolve config path: %v", err)
	}
	return abs
}

// ReadCurrentConfig returns the selected config recorded in dir's workspace state.
func ReadCurrentConfig(t *testing.T, dir string) string {
	t.Helper()
	state := &configs.WorkspaceState{}
	path := filepath.Join(dir, configs.StateDirName, "state.toml")
	if err := configs.LoadTOML(path, state); err != nil {
		t.Fatalf("Failed to read workspace state: %v", err)
	}
	return state.Current
}

// NewTempDirs creates a workspace folder and a user folder for one test.
func NewTempDirs(t *testing.T, pattern string) (string, string) {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "envault-test-"+pattern+"-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	tempUserDir, err := os.MkdirTemp("", "envault-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempUserDir) })

	return tempDir, tempUserDir
}
