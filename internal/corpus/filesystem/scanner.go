// Package filesystem provides the corpus scanner and watcher over a local
// directory tree. The corpus is strictly local: no network I/O.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driven"
)

// Ensure Scanner implements the interface.
var _ driven.CorpusScanner = (*Scanner)(nil)

// Scanner lists markdown files under a corpus root.
type Scanner struct{}

// NewScanner creates a new corpus scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan walks root and returns all markdown file paths in sorted order.
// Hidden files and directories are skipped. An unreadable root or a
// corpus with no markdown files returns domain.ErrEmptyCorpus.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyCorpus, root)
	}

	if !info.IsDir() {
		if isMarkdown(root) {
			abs, err := filepath.Abs(root)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", root, err)
			}
			return []string{abs}, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyCorpus, root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree; skip it, partial-failure semantics.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(d.Name()) || !isMarkdown(path) {
			return nil
		}

		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return absErr
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyCorpus, root)
	}

	// Declared corpus order: sorted paths, independent of walk order.
	sort.Strings(paths)
	return paths, nil
}

// isMarkdown reports whether a path has a markdown extension.
func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// isHidden reports whether a file or directory name is dot-prefixed.
// "." and ".." are not considered hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
