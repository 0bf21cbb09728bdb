package workflows

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/internal/environment"
	logger "github.com/PolarWolf314/envault/internal/logging"

	"github.com/stretchr/testify/require"
)

// vaultServer is a stand-in for the variable service.
type vaultServer struct {
	*httptest.Server

	mu       sync.Mutex
	vars     map[string]string
	status   int
	requests atomic.Int32
}

func newVaultServer(t *testing.T, vars map[string]string) *vaultServer {
	t.Helper()
	vs := &vaultServer{vars: vars, status: http.StatusOK}
	vs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vs.requests.Add(1)

		vs.mu.Lock()
		status, vars := vs.status, vs.vars
		vs.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = fmt.Fprint(w, "denied")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(vars)
	}))
	t.Cleanup(vs.Close)
	return vs
}

func (vs *vaultServer) set(status int, vars map[string]string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.status = status
	vs.vars = vars
}

func (vs *vaultServer) count() int {
	return int(vs.requests.Load())
}

// setupWorkspace creates a workspace root (plus any extra folders) and
// points the workspace settings at it for the duration of the test.
func setupWorkspace(t *testing.T, extra ...string) string {
	t.Helper()
	root := t.TempDir()

	original := configs.WorkspaceEnvaultSettings
	require.NoError(t, configs.SetWorkspaceRoot(root, extra))
	t.Cleanup(func() { configs.WorkspaceEnvaultSettings = original })
	return root
}

func writeConfig(t *testing.T, folder, name, url string, vars ...string) string {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "apiKeyName: TEST_API_KEY\nurl: %s\nvars:\n", url)
	if len(vars) == 0 {
		b.Reset()
		fmt.Fprintf(&b, "apiKeyName: TEST_API_KEY\nurl: %s\nvars: []\n", url)
	}
	for _, v := range vars {
		fmt.Fprintf(&b, "  - %s\n", v)
	}
	return writeRaw(t, folder, name, b.String())
}

func writeRaw(t *testing.T, folder, name, content string) string {
	t.Helper()
	dir := filepath.Join(folder, "envault")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newTestSession(t *testing.T, env environment.MapEnv) *Session {
	t.Helper()
	prefs := configs.DefaultPreferences()
	s := NewSession(prefs, logger.Logger{})
	s.Client.LookupEnv = func(name string) (string, bool) {
		if name == "TEST_API_KEY" {
			return "test-key", true
		}
		return "", false
	}
	if env == nil {
		env = environment.MapEnv{"PATH": os.Getenv("PATH")}
	}
	s.Env = environment.NewManager(env, logger.Logger{})
	return s
}
