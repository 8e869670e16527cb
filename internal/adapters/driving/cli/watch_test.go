package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driven"
)

type stubWatcher struct {
	changes chan driven.CorpusChange
	err     error
	closed  bool
}

func (w *stubWatcher) Watch(_ context.Context, _ string) (<-chan driven.CorpusChange, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.changes, nil
}

func (w *stubWatcher) Close() error {
	w.closed = true
	return nil
}

// swapWatcherFactory installs a stub watcher for the duration of a test.
func swapWatcherFactory(t *testing.T, watcher *stubWatcher) {
	t.Helper()

	original := watcherFactory
	watcherFactory = func() (driven.CorpusWatcher, error) {
		return watcher, nil
	}
	t.Cleanup(func() {
		watcherFactory = original
	})
}

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [path]", watchCmd.Use)
}

func TestWatchCmd_HasStrictFlag(t *testing.T) {
	assert.NotNil(t, watchCmd.Flags().Lookup("strict"))
}

func TestWatchCmd_RevalidatesOnChanges(t *testing.T) {
	ts := setupTestServices(t)

	watcher := &stubWatcher{changes: make(chan driven.CorpusChange, 2)}
	watcher.changes <- driven.CorpusChange{Path: "/docs/MARKER.md", Type: domain.ChangeUpdated}
	close(watcher.changes)
	swapWatcherFactory(t, watcher)

	out, err := executeCommand(t, "watch", "/docs")

	require.NoError(t, err)
	assert.Equal(t, 2, ts.validator.calls, "initial run plus one revalidation")
	assert.Contains(t, out, "Watching /docs for changes")
	assert.Contains(t, out, "--- /docs/MARKER.md changed ---")
	assert.True(t, watcher.closed)
}

func TestWatchCmd_StrictFlag(t *testing.T) {
	ts := setupTestServices(t)

	watcher := &stubWatcher{changes: make(chan driven.CorpusChange)}
	close(watcher.changes)
	swapWatcherFactory(t, watcher)

	_, err := executeCommand(t, "watch", "--strict", "/docs")

	require.NoError(t, err)
	assert.True(t, ts.validator.lastCfg.Strict)
}

func TestWatchCmd_ReportsValidationErrorsAndKeepsWatching(t *testing.T) {
	ts := setupTestServices(t)
	ts.validator.err = errors.New("corpus is empty")

	watcher := &stubWatcher{changes: make(chan driven.CorpusChange)}
	close(watcher.changes)
	swapWatcherFactory(t, watcher)

	out, err := executeCommand(t, "watch", "/docs")

	require.NoError(t, err)
	assert.Contains(t, out, "validation error: corpus is empty")
}

func TestWatchCmd_PropagatesWatcherErrors(t *testing.T) {
	setupTestServices(t)

	watcher := &stubWatcher{err: errors.New("inotify limit reached")}
	swapWatcherFactory(t, watcher)

	_, err := executeCommand(t, "watch", "/docs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inotify limit reached")
}

func TestWatchCmd_RequiresValidator(t *testing.T) {
	SetServices(&Services{})
	t.Cleanup(resetFlags)

	_, err := executeCommand(t, "watch", "/docs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator not configured")
}
