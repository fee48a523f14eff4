package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

// documentPattern matches every normalizable document under a directory
// target.
const documentPattern = "**/*.xhtml"

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension = errors.New("file must have .xhtml extension")
)

// discoverTargets resolves target into the ordered list of documents to
// process and reports whether target was a directory. Directory traversal
// is recursive; results are sorted so batches are deterministic.
func discoverTargets(target string) ([]string, bool, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, false, err
	}

	if !info.IsDir() {
		if ext := filepath.Ext(target); ext != ".xhtml" {
			return nil, false, fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
		}
		return []string{target}, false, nil
	}

	matches, err := doublestar.Glob(os.DirFS(target), documentPattern)
	if err != nil {
		return nil, true, fmt.Errorf("scanning %s: %w", target, err)
	}
	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(target, m))
	}
	return paths, true, nil
}

// excludeFromBatch removes designated filenames from a directory batch.
// Those documents carry intentionally significant whitespace that line
// unwrapping would destroy.
func excludeFromBatch(paths, excluded []string, logger *log.Logger) []string {
	if len(excluded) == 0 {
		return paths
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[name] = struct{}{}
	}

	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := skip[filepath.Base(p)]; ok {
			logger.Debug("excluded", "path", p)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
