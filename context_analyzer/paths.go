package context_analyzer

import (
	"path/filepath"
	"slices"
	"strings"
)

// fileSuffix returns the final ".ext" of a file name. Names with no dot,
// names ending in a dot and names whose only dot is the leading one, such
// as ".env", have no suffix.
func fileSuffix(name string) string {
	name = filepath.Base(name)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// fileStem returns the file name without its suffix.
func fileStem(name string) string {
	name = filepath.Base(name)
	return strings.TrimSuffix(name, fileSuffix(name))
}

func hasSuffixIn(name string, suffixes []string) bool {
	return slices.Contains(suffixes, fileSuffix(name))
}

func toPosix(p string) string { return strings.ReplaceAll(p, string(filepath.Separator), "/") }

// normalizeNewlines turns CRLF and lone CR into LF, the way text-mode
// readers present a file.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// sortedSet returns the distinct values in ascending order, never nil.
func sortedSet(values []string) []string {
	out := make([]string, 0, len(values))
	out = append(out, values...)
	slices.Sort(out)
	return slices.Compact(out)
}
