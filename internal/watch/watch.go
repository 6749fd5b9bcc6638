// Package watch re-runs checks when BML sources change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bml-lang/bml/internal/check"
	"github.com/bml-lang/bml/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of file
// events to settle before checking again.
const DefaultDebounce = 100 * time.Millisecond

// Watcher checks a set of paths once and then again after every change.
type Watcher struct {
	checker  *check.Checker
	paths    []string
	files    map[string]bool // files named explicitly
	onReport func(*check.Report)
	log      *slog.Logger

	// Debounce delays a re-check until events stop arriving.
	Debounce time.Duration
}

// New returns a Watcher over paths. onReport is called from the
// watcher's goroutine after every check run.
func New(c *check.Checker, paths []string, onReport func(*check.Report), log *slog.Logger) *Watcher {
	if log == nil {
		log = logger.L()
	}
	return &Watcher{
		checker:  c,
		paths:    paths,
		files:    make(map[string]bool),
		onReport: onReport,
		log:      log.With("component", "watch"),
		Debounce: DefaultDebounce,
	}
}

// Run checks the paths, then watches them until ctx is cancelled.
// It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range w.paths {
		if err := w.add(fw, p); err != nil {
			return err
		}
	}

	w.check(ctx)

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fw, ev) {
				continue
			}
			w.log.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.Debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.check(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// add registers path with fw. Directories are watched recursively,
// skipping hidden ones; a file is watched through its directory.
func (w *Watcher) add(fw *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	if !info.IsDir() {
		w.files[filepath.Clean(path)] = true
		return fw.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// relevant reports whether ev should trigger a re-check. New
// directories are added to the watch as a side effect.
func (w *Watcher) relevant(fw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.add(fw, ev.Name); err != nil {
				w.log.Warn("cannot watch new directory", "dir", ev.Name, "error", err)
			}
			return true
		}
	}
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return w.files[filepath.Clean(ev.Name)] || w.checker.Matches(ev.Name)
}

// check runs one check. Failures to collect files are logged and the
// watch goes on, since a watched path may be missing only briefly.
func (w *Watcher) check(ctx context.Context) {
	rep, err := w.checker.Run(ctx, w.paths)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Warn("check failed", "error", err)
		}
		return
	}
	if w.onReport != nil {
		w.onReport(rep)
	}
}
