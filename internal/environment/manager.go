package environment

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	kerrors "github.com/PolarWolf314/envault/internal/errors"
	logger "github.com/PolarWolf314/envault/internal/logging"
)

const (
	// MarkerVar is set to "1" while envault variables are applied.
	MarkerVar = "ENVAULT"

	// ConfigVar holds the path of the config whose variables are applied.
	ConfigVar = "ENVAULT_CONFIG"
)

// Environment is a mutable set of environment variables.
type Environment interface {
	Environ() []string
	Clearenv()
	Setenv(key, value string) error
}

type processEnv struct{}

func (processEnv) Environ() []string              { return os.Environ() }
func (processEnv) Clearenv()                      { os.Clearenv() }
func (processEnv) Setenv(key, value string) error { return os.Setenv(key, value) }

// ProcessEnvironment returns the environment of the running process.
func ProcessEnvironment() Environment {
	return processEnv{}
}

// MapEnv is an in-memory Environment.
type MapEnv map[string]string

func (m MapEnv) Environ() []string {
	return FormatEnviron(m)
}

func (m MapEnv) Clearenv() {
	for k := range m {
		delete(m, k)
	}
}

func (m MapEnv) Setenv(key, value string) error {
	if !ValidName(key) {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidVariableName, key)
	}
	m[key] = value
	return nil
}

// ValidName reports whether key can be used as an environment variable name.
func ValidName(key string) bool {
	return key != "" && !strings.ContainsAny(key, "=\x00")
}

// Manager applies config variables on top of a saved environment.
type Manager struct {
	mu       sync.Mutex
	env      Environment
	original map[string]string
	Logger   logger.Logger
}

// NewManager returns a Manager for env. A nil env manages the process
// environment.
func NewManager(env Environment, log logger.Logger) *Manager {
	if env == nil {
		env = ProcessEnvironment()
	}
	return &Manager{env: env, Logger: log}
}

// Saved reports whether the original environment has been captured.
func (m *Manager) Saved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.original != nil
}

// Current returns the variables currently in the managed environment.
func (m *Manager) Current() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ParseEnviron(m.env.Environ())
}

// Set replaces the environment with the saved original plus vars. The
// marker and config variables are added unless vars defines them.
//
// Returns ErrInvalidVariableName, leaving the environment untouched, if any
// name in vars cannot be set.
func (m *Manager) Set(configFile string, vars map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range sortedNames(vars) {
		if !ValidName(k) {
			return fmt.Errorf("%w: %q", kerrors.ErrInvalidVariableName, k)
		}
	}

	if m.original == nil {
		m.Logger.Debugf("saving original environment")
		m.original = ParseEnviron(m.env.Environ())
	}

	next := make(map[string]string, len(m.original)+len(vars)+2)
	for k, v := range m.original {
		next[k] = v
	}
	for k, v := range vars {
		next[k] = v
	}
	if _, ok := vars[MarkerVar]; !ok {
		next[MarkerVar] = "1"
	}
	if _, ok := vars[ConfigVar]; !ok {
		next[ConfigVar] = configFile
	}

	m.Logger.Debugf("applying %d variables from %s", len(vars), configFile)
	return m.apply(next)
}

// Restore puts back the environment saved by the first Set.
func (m *Manager) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.original == nil {
		return kerrors.ErrEnvNotSaved
	}

	m.Logger.Debugf("restoring original environment")
	return m.apply(m.original)
}

// apply replaces the environment with vars. If a variable cannot be set
// the original environment is put back before the error is returned.
func (m *Manager) apply(vars map[string]string) error {
	err := m.replace(vars)
	if err == nil {
		return nil
	}

	m.Logger.Warnf("restoring original environment after failed update: %v", err)
	if rerr := m.replace(m.original); rerr != nil {
		m.Logger.Errorf("failed to restore original environment: %v", rerr)
	}
	return err
}

func (m *Manager) replace(vars map[string]string) error {
	m.env.Clearenv()
	var firstErr error
	for _, k := range sortedNames(vars) {
		if err := m.env.Setenv(k, vars[k]); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return firstErr
}

// ParseEnviron converts KEY=value entries to a map. Entries without a
// separator are skipped.
func ParseEnviron(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		// Windows keeps per-drive entries such as "=C:=C:\\".
		i := strings.Index(kv[min(1, len(kv)):], "=")
		if i < 0 {
			continue
		}
		i += min(1, len(kv))
		vars[kv[:i]] = kv[i+1:]
	}
	return vars
}

// FormatEnviron converts a map to sorted KEY=value entries.
func FormatEnviron(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for _, k := range sortedNames(vars) {
		out = append(out, k+"="+vars[k])
	}
	return out
}

func sortedNames(vars map[string]string) []string {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
