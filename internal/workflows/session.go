package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envault/internal/configs"
	"github.com/PolarWolf314/envault/internal/environment"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
	logger "github.com/PolarWolf314/envault/internal/logging"
	"github.com/PolarWolf314/envault/internal/secrets"
	"github.com/PolarWolf314/envault/internal/utils"
)

// Session holds the per-workspace state shared by the workflows.
type Session struct {
	Cache  *secrets.Cache
	Client *secrets.Client
	Env    *environment.Manager
	Prefs  *configs.Preferences
	Logger logger.Logger
}

// NewSession creates a session managing the process environment. Nil
// prefs use the defaults.
func NewSession(prefs *configs.Preferences, log logger.Logger) *Session {
	if prefs == nil {
		prefs = configs.DefaultPreferences()
	}
	return &Session{
		Cache:  secrets.NewCache(log),
		Client: secrets.NewClient(prefs.Timeout(), log),
		Env:    environment.NewManager(nil, log),
		Prefs:  prefs,
		Logger: log,
	}
}

// LoadAndFetch loads the config at path and fetches its variables.
//
// A config that cannot be loaded is returned as an error without fetching,
// and any variables cached for it are dropped. Otherwise the fetch result replaces the cached variables for path; a
// failed fetch caches an empty set and the error wraps ErrFetchFailed.
func (s *Session) LoadAndFetch(ctx context.Context, path string) (map[string]string, error) {
	cfg, err := secrets.LoadIfExists(path)
	if err != nil {
		s.Logger.Errorf("%v", err)
		s.Cache.Clear(path)
		return nil, err
	}

	var res secrets.Result
	select {
	case res = <-s.Client.Start(ctx, cfg):
	case <-ctx.Done():
		res = secrets.Result{Err: fmt.Errorf("%w: %v", kerrors.ErrFetchFailed, ctx.Err())}
	}

	return s.accept(path, res), res.Err
}

func (s *Session) accept(path string, res secrets.Result) map[string]string {
	if res.Err != nil {
		s.Logger.Warnf("fetch for %s failed: %v", path, res.Err)
		s.Cache.Store(path, map[string]string{})
		return map[string]string{}
	}
	s.Cache.Store(path, res.Vars)
	s.Logger.Debugf("cached variables for %d config(s)", len(s.Cache.Configs()))
	return res.Vars
}

// cachedOrFetch returns the cached variables for path, fetching them when
// the session has none yet.
func (s *Session) cachedOrFetch(ctx context.Context, path string) (map[string]string, error) {
	if s.Cache.Has(path) {
		return s.Cache.Fetch(path), nil
	}
	return s.LoadAndFetch(ctx, path)
}

func workspaceFolders() ([]string, error) {
	ws := configs.WorkspaceEnvaultSettings
	if ws == nil || ws.Root == "" {
		return nil, kerrors.ErrWorkspaceNotFound
	}
	return ws.Folders, nil
}

func currentConfig() (string, error) {
	if _, err := workspaceFolders(); err != nil {
		return "", err
	}
	current, err := configs.GetCurrentConfig()
	if err != nil {
		return "", err
	}
	if current == "" {
		return "", kerrors.ErrNoConfigSelected
	}
	return current, nil
}

// ResolveConfig turns a config argument into an absolute config path. The
// argument may be a path to a file, or the name of a config in one of the
// workspace folders with or without its extension.
func ResolveConfig(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%w: no config given", kerrors.ErrConfigNotFound)
	}

	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		return filepath.Abs(arg)
	}

	folders, err := workspaceFolders()
	if err != nil {
		return "", err
	}
	files, err := secrets.ScanWorkspace(folders)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, f := range files {
		name := filepath.Base(f)
		if name == arg || strings.TrimSuffix(name, filepath.Ext(name)) == arg {
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", kerrors.ErrConfigNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		root := configs.WorkspaceEnvaultSettings.Root
		rel := make([]string, len(matches))
		for i, m := range matches {
			rel[i] = utils.RelOrAbs(root, m)
		}
		return "", fmt.Errorf("%q matches more than one config: %s", arg, strings.Join(rel, ", "))
	}
}
