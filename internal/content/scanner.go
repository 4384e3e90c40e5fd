package content

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// scanNotes walks the content directory and returns the relative paths
// (forward slashes) of all markdown files that pass the include and
// exclude filters, in sorted order. Dot-directories are skipped whole.
func scanNotes(root string, include, exclude []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving content dir: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if path != absRoot && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if !MatchesInclude(relPath, include) {
			return nil
		}
		if MatchesExclude(relPath, exclude) {
			return nil
		}

		paths = append(paths, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content dir: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}
