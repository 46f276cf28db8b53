package context_analyzer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

// DiscoverSourceFiles returns the project-relative, slash-separated paths of
// every source file below rules.SourceDir, sorted. A missing source directory
// is not an error. No exclusion rules apply here.
func DiscoverSourceFiles(ctx context.Context, rootDir string, rules models.Rules) ([]string, error) {
	srcDir := filepath.Join(rootDir, rules.SourceDir)
	info, err := os.Stat(srcDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	} else if err != nil {
		return []string{}, fmt.Errorf("failed to stat source directory %s: %w", srcDir, err)
	}
	if !info.IsDir() || len(rules.SourceExtensions) == 0 {
		return []string{}, nil
	}

	prefix := toPosix(filepath.Clean(rules.SourceDir))
	files := []string{}

	err = doublestar.GlobWalk(os.DirFS(srcDir), extensionPattern(rules.SourceExtensions), func(p string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !hasSuffixIn(p, rules.SourceExtensions) {
			return nil
		}
		// Symlinks are not followed; skip the ones that point at directories.
		if d.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(filepath.Join(srcDir, filepath.FromSlash(p))); err == nil && target.IsDir() {
				return nil
			}
		}
		files = append(files, path.Join(prefix, p))
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithNoFollow())

	slices.Sort(files)
	if err != nil {
		return files, fmt.Errorf("failed to walk %s: %w", srcDir, err)
	}
	return files, nil
}

// extensionPattern builds "**/*{.js,.ts}" from an extension list.
func extensionPattern(extensions []string) string {
	quoted := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		quoted = append(quoted, escapeGlob(ext))
	}
	if len(quoted) == 1 {
		return "**/*" + quoted[0]
	}
	return "**/*{" + strings.Join(quoted, ",") + "}"
}

var globMeta = strings.NewReplacer(
	`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`, `,`, `\,`,
)

func escapeGlob(s string) string {
	return globMeta.Replace(s)
}
