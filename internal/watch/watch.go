// Package watch re-runs a check whenever a build report file is rewritten.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dbsmedya/deadfiles/internal/logger"
)

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 100 * time.Millisecond

// Options configures Run.
type Options struct {
	Debounce time.Duration
	Log      *logger.Logger
}

// Run calls fn once if path exists, then again after every write to path,
// until ctx is cancelled. Bursts of writes within the debounce delay produce
// one call. Errors from fn are logged and do not stop the watch.
//
// The parent directory is watched rather than the file so reports that are
// replaced by rename are still seen.
func Run(ctx context.Context, path string, opts Options, fn func(context.Context) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounceDelay
	}
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	trigger := func() {
		if err := fn(ctx); err != nil {
			log.Warnw("Check failed", "report", target, "error", err)
		}
	}

	if _, err := os.Stat(target); err == nil {
		trigger()
	}

	log.Infow("Watching build report", "report", target)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", "error", err)
		}
	}
}
