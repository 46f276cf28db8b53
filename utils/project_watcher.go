package utils

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
)

// WatcherOptions configures a ProjectWatcher.
type WatcherOptions struct {
	// Debounce is the quiet period after the last change before a batch is
	// delivered.
	Debounce        time.Duration
	ExcludedNames   []string
	AllowedDotfiles []string
	// IgnorePaths are absolute paths whose changes are dropped, such as the
	// snapshot file the watch loop itself writes.
	IgnorePaths []string
	Logger      *pterm.Logger
}

// ProjectWatcher reports batches of changed paths below a project root.
type ProjectWatcher struct {
	root    string
	opts    WatcherOptions
	ignored map[string]bool
	watcher *fsnotify.Watcher
}

// NewProjectWatcher starts watching every non-excluded directory under root.
func NewProjectWatcher(root string, opts WatcherOptions) (*ProjectWatcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = &pterm.DefaultLogger
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &ProjectWatcher{
		root:    absRoot,
		opts:    opts,
		ignored: make(map[string]bool, len(opts.IgnorePaths)),
		watcher: watcher,
	}
	for _, p := range opts.IgnorePaths {
		if abs, err := filepath.Abs(p); err == nil {
			w.ignored[abs] = true
		}
	}

	if err := w.addRecursive(absRoot); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *ProjectWatcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *ProjectWatcher) shouldIgnore(path string) bool {
	if w.ignored[path] {
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	return IsExcludedPath(rel, w.opts.ExcludedNames, w.opts.AllowedDotfiles)
}

// Run blocks until ctx is done, calling onChange with the sorted relative
// paths that changed during each debounce window.
func (w *ProjectWatcher) Run(ctx context.Context, onChange func(changed []string)) error {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || w.shouldIgnore(event.Name) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.opts.Logger.Warn("Could not watch directory", w.opts.Logger.Args("path", event.Name, "error", err))
					}
				}
			}

			rel, err := filepath.Rel(w.root, event.Name)
			if err != nil {
				continue
			}
			pending[filepath.ToSlash(rel)] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("Watcher error", w.opts.Logger.Args("error", err))

		case <-timerC:
			timer = nil
			timerC = nil

			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			if len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}

// Close stops the underlying watcher.
func (w *ProjectWatcher) Close() error {
	return w.watcher.Close()
}
