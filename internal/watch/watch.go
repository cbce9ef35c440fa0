// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch drives the blocking build loop for one target file: an
// initial build, then one build per change notification, strictly
// sequential. See docs/ARCHITECTURE § Watch Loop.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/mdwatch/internal/status"
)

// BuildFunc performs one conversion cycle. The loop never inspects the
// outcome: a failed build leaves the loop waiting for the next save, which
// is how a document with a transient syntax error recovers.
type BuildFunc func()

// Watcher holds the change-notification subscription for one file.
//
// The loop is single-goroutine and blocking, so at most one build is ever
// in flight. Notifications arriving during a build sit in the event
// channel's buffer; the loop adds no debounce or coalescing of its own.
type Watcher struct {
	fsw *fsnotify.Watcher
	rep *status.Reporter

	// path is absolute; events are filtered by its base name.
	path string
}

// New subscribes to change notifications for path. The parent directory is
// watched rather than the file itself so the subscription survives editors
// that replace the file on save.
func New(path string, rep *status.Reporter) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	return &Watcher{fsw: fsw, rep: rep, path: abs}, nil
}

// Close releases the notification subscription.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run performs the initial build, then blocks on change notifications and
// runs one build per delivered event until ctx is cancelled. Cancellation
// is the normal exit and returns nil.
func (w *Watcher) Run(ctx context.Context, build BuildFunc) error {
	build()
	return w.loop(ctx, w.fsw.Events, w.fsw.Errors, build)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, build BuildFunc) error {
	base := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			// Write covers in-place saves; Create and Rename cover
			// editors that write a temp file and swap it in.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			build()

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.rep.Warnf("watch error: %v", err)
		}
	}
}
