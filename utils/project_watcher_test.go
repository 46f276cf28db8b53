package utils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const watchTimeout = 5 * time.Second

type watchHarness struct {
	watcher *ProjectWatcher
	batches chan []string
	cancel  context.CancelFunc
	done    chan error
}

func startWatcher(t *testing.T, root string, ignorePaths ...string) *watchHarness {
	t.Helper()

	var logs bytes.Buffer
	watcher, err := NewProjectWatcher(root, WatcherOptions{
		Debounce:        100 * time.Millisecond,
		ExcludedNames:   testExcludedNames,
		AllowedDotfiles: testAllowedDotfiles,
		IgnorePaths:     ignorePaths,
		Logger:          pterm.DefaultLogger.WithWriter(&logs),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h := &watchHarness{
		watcher: watcher,
		batches: make(chan []string, 16),
		cancel:  cancel,
		done:    make(chan error, 1),
	}
	go func() {
		h.done <- watcher.Run(ctx, func(changed []string) {
			h.batches <- changed
		})
	}()

	return h
}

// stop ends Run and closes the watcher so no goroutine outlives the test.
func (h *watchHarness) stop(t *testing.T) {
	h.cancel()
	require.NoError(t, <-h.done)
	require.NoError(t, h.watcher.Close())
}

func (h *watchHarness) next(t *testing.T) []string {
	t.Helper()
	select {
	case batch := <-h.batches:
		return batch
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for a change batch")
		return nil
	}
}

func newWatchedProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "react"), 0755))
	return root
}

func TestProjectWatcher_ReportsSourceChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := newWatchedProject(t)
	h := startWatcher(t, root)
	defer h.stop(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "react", "index.js"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("A=1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "x.ts"), []byte("export {}"), 0644))

	require.Equal(t, []string{"src/x.ts"}, h.next(t))
}

func TestProjectWatcher_WatchesNewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := newWatchedProject(t)
	h := startWatcher(t, root)
	defer h.stop(t)

	require.NoError(t, os.Mkdir(filepath.Join(root, "src", "feature"), 0755))
	require.Equal(t, []string{"src/feature"}, h.next(t))

	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "feature", "a.ts"), []byte("export {}"), 0644))
	require.Equal(t, []string{"src/feature/a.ts"}, h.next(t))
}

func TestProjectWatcher_IgnoresOutputPath(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := newWatchedProject(t)
	output := filepath.Join(root, "application_context.json")
	h := startWatcher(t, root, output)
	defer h.stop(t)

	require.NoError(t, os.WriteFile(output, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "y.ts"), []byte("export {}"), 0644))

	require.Equal(t, []string{"src/y.ts"}, h.next(t))
}
