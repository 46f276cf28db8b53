package utils

import (
	"path/filepath"
	"slices"
	"strings"
)

// IsExcludedEntry reports whether a directory entry is left out of the
// project tree: dot-names unless allow-listed, and the conventional
// dependency and build output names. Matching is on the entry name only, so
// the rules apply the same way at every depth.
func IsExcludedEntry(name string, excludedNames []string, allowedDotfiles []string) bool {
	if strings.HasPrefix(name, ".") && !slices.Contains(allowedDotfiles, name) {
		return true
	}
	return slices.Contains(excludedNames, name)
}

// IsExcludedPath applies IsExcludedEntry to every segment of a relative path.
func IsExcludedPath(relativePath string, excludedNames []string, allowedDotfiles []string) bool {
	relativePath = filepath.ToSlash(filepath.Clean(relativePath))
	if relativePath == "." {
		return false
	}
	for _, part := range strings.Split(relativePath, "/") {
		if part == "" || part == "." {
			continue
		}
		if IsExcludedEntry(part, excludedNames, allowedDotfiles) {
			return true
		}
	}
	return false
}
