package content

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks if relPath matches any of the given glob patterns.
// It uses doublestar for ** support.
func matchesAny(relPath string, patterns []string) bool {
	// Normalize to forward slashes for consistent matching.
	normalized := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		// Try doublestar matching (supports **).
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}

		// Also try matching against just the filename.
		base := filepath.Base(normalized)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
