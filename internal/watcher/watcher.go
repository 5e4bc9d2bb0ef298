// Package watcher observes a directory tree for source changes and signals
// when the serving process should restart. It backs the development-only
// serve --watch mode.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces bursts of filesystem events (editors typically
// emit several per save) into a single restart signal.
const debounceWindow = 500 * time.Millisecond

// Watcher signals source changes under a root directory.
type Watcher struct {
	root    string
	watcher *fsnotify.Watcher
}

// New creates a Watcher for the given root directory and registers every
// subdirectory with the filesystem notifier.
func New(root string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		root:    root,
		watcher: fsWatcher,
	}

	if err := w.addRecursive(root); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// addRecursive registers root and all its subdirectories, skipping hidden
// directories and typical build output.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "vendor") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Watch blocks until a relevant change occurs or the context is cancelled.
// It returns nil when a change was detected and the caller should restart,
// or the context error on cancellation.
func (w *Watcher) Watch(ctx context.Context) error {
	var debounce *time.Timer
	var fired <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if !isRelevant(event) {
				continue
			}
			slog.Debug("Source change detected", "path", event.Name, "op", event.Op.String())

			// New directories must be registered to keep watching deeper changes.
			if event.Has(fsnotify.Create) {
				_ = w.watcher.Add(event.Name)
			}

			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
				fired = debounce.C
			} else {
				debounce.Reset(debounceWindow)
			}

		case <-fired:
			return nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// isRelevant filters out events that should not trigger a restart.
func isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return true
}
