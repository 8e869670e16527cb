package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driven"
	"github.com/transrapport/doclint/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.CorpusWatcher = (*Watcher)(nil)

// Watcher emits change events for markdown files under a corpus root.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
}

// NewWatcher creates a corpus watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{fsWatcher: fw}, nil
}

// Watch registers root and its visible subdirectories and returns a
// channel of markdown file changes. The channel closes when ctx is
// cancelled.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan driven.CorpusChange, error) {
	if err := w.addRecursive(root); err != nil {
		return nil, err
	}

	changes := make(chan driven.CorpusChange)

	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				change := w.handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent maps an fsnotify event to a corpus change. Directories,
// hidden files, and non-markdown files return nil.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *driven.CorpusChange {
	name := filepath.Base(event.Name)
	if isHidden(name) {
		return nil
	}

	if event.Op.Has(fsnotify.Create) {
		// New directories need to be watched for later file events.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				logger.Warn("watching new directory %s: %v", event.Name, err)
			}
			return nil
		}
	}

	if !isMarkdown(event.Name) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		return &driven.CorpusChange{Path: event.Name, Type: domain.ChangeCreated}
	case event.Op.Has(fsnotify.Write):
		return &driven.CorpusChange{Path: event.Name, Type: domain.ChangeUpdated}
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return &driven.CorpusChange{Path: event.Name, Type: domain.ChangeDeleted}
	default:
		return nil
	}
}

// addRecursive watches a directory and all visible subdirectories.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries.
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Close releases watcher resources.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
