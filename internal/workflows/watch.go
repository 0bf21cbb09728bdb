package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/utils"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups the burst of events an editor emits for one save.
const watchDebounce = 100 * time.Millisecond

// WatchOptions configures the watch workflow.
type WatchOptions struct {
	// Command is re-run after every successful reload when not empty.
	Command RunOptions

	// OnReload is called after each reload, including the initial one.
	OnReload func(*ChooseResult, error)

	// OnRun is called after each run of Command.
	OnRun func(*RunResult, error)

	// Ready, if set, is closed once changes are being watched.
	Ready chan<- struct{}
}

// Watch loads the current config and reloads it whenever the file is
// saved, until ctx is cancelled.
//
// Returns ErrReloadDisabled if reload_config_on_save is off.
// Returns ErrNoConfigSelected if the workspace has no current config.
func (s *Session) Watch(ctx context.Context, opts WatchOptions) error {
	if !s.Prefs.ReloadConfigOnSave {
		return kerrors.ErrReloadDisabled
	}

	path, err := currentConfig()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by replacing the file, so watch its folder.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	s.reloadAndRun(ctx, opts)
	if opts.Ready != nil {
		close(opts.Ready)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !utils.SamePath(event.Name, path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				s.Logger.Debugf("config changed: %s", event)
				debounce = time.After(watchDebounce)
			}

		case <-debounce:
			debounce = nil
			s.reloadAndRun(ctx, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.Logger.Warnf("watch error: %v", err)
		}
	}
}

func (s *Session) reloadAndRun(ctx context.Context, opts WatchOptions) {
	result, err := s.Reload(ctx)
	if opts.OnReload != nil {
		opts.OnReload(result, err)
	}
	if err != nil || opts.Command.Command.Empty() {
		return
	}

	runResult, err := s.Run(ctx, opts.Command)
	if opts.OnRun != nil {
		opts.OnRun(runResult, err)
	}
}
