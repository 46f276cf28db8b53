package context_analyzer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/satish1373/automation-pipeline-demo/utils"
)

// BuildFileTree snapshots the directory tree below rootDir. Listing and stat
// errors never propagate: a directory keeps whatever children were collected.
// Symlinks are followed, but a directory already on the current path is
// emitted empty, and recursion stops at rules.MaxTreeDepth.
func BuildFileTree(ctx context.Context, rootDir string, rules models.Rules) *models.FileTreeNode {
	realRoot, err := filepath.EvalSymlinks(rootDir)
	if err != nil {
		realRoot = filepath.Clean(rootDir)
	}
	ancestors := map[string]bool{realRoot: true}
	return buildTree(ctx, rootDir, rules, ancestors, 0)
}

func buildTree(ctx context.Context, dir string, rules models.Rules, ancestors map[string]bool, depth int) *models.FileTreeNode {
	node := models.NewDirectoryNode()
	if rules.MaxTreeDepth > 0 && depth >= rules.MaxTreeDepth {
		return node
	}

	// On error ReadDir still returns the entries read so far.
	entries, _ := os.ReadDir(dir)

	for _, entry := range entries {
		if ctx.Err() != nil {
			return node
		}

		name := entry.Name()
		if utils.IsExcludedEntry(name, rules.ExcludedDirs, rules.AllowedDotfiles) {
			continue
		}

		fullPath := filepath.Join(dir, name)
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}

		switch {
		case info.Mode().IsRegular():
			node.Children[name] = models.NewFileNode(info.Size(), fileSuffix(name))
		case info.IsDir():
			realPath, err := filepath.EvalSymlinks(fullPath)
			if err != nil {
				continue
			}
			if ancestors[realPath] {
				node.Children[name] = models.NewDirectoryNode()
				continue
			}
			ancestors[realPath] = true
			node.Children[name] = buildTree(ctx, fullPath, rules, ancestors, depth+1)
			delete(ancestors, realPath)
		}
	}

	return node
}
