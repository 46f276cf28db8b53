package context_analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverSourceFiles_SortedPosixPaths(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/index.js":                  "",
		"src/App.tsx":                   "",
		"src/components/Header.jsx":     "",
		"src/services/api.ts":           "",
		"src/styles/main.css":           "",
		"src/README.md":                 "",
		"src/types.d.ts":                "",
		"src/node_modules/lib/index.js": "",
		"src/.hidden/secret.ts":         "",
		"src/..ts":                      "",
		"src/.ts":                       "",
		"lib/outside.js":                "",
		"index.js":                      "",
	})

	files, err := DiscoverSourceFiles(context.Background(), root, models.DefaultRules())
	require.NoError(t, err)

	// Exclusions only apply to the tree, so node_modules and dot-dirs under
	// src are still scanned. ".ts" alone has no suffix, "..ts" does.
	assert.Equal(t, []string{
		"src/..ts",
		"src/.hidden/secret.ts",
		"src/App.tsx",
		"src/components/Header.jsx",
		"src/index.js",
		"src/node_modules/lib/index.js",
		"src/services/api.ts",
		"src/types.d.ts",
	}, files)
}

func TestDiscoverSourceFiles_MissingSourceDir(t *testing.T) {
	root := writeProject(t, map[string]string{"index.js": ""})

	files, err := DiscoverSourceFiles(context.Background(), root, models.DefaultRules())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestDiscoverSourceFiles_SourceIsAFile(t *testing.T) {
	root := writeProject(t, map[string]string{"src": "not a directory"})

	files, err := DiscoverSourceFiles(context.Background(), root, models.DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverSourceFiles_CustomRules(t *testing.T) {
	root := writeProject(t, map[string]string{
		"app/main.vue":  "",
		"app/store.js":  "",
		"app/notes.txt": "",
	})

	rules := models.DefaultRules()
	rules.SourceDir = "app"
	rules.SourceExtensions = []string{".vue"}

	files, err := DiscoverSourceFiles(context.Background(), root, rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"app/main.vue"}, files)
}

func TestDiscoverSourceFiles_SkipsSymlinkedDirectories(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/a.ts":         "",
		"shared/b.ts":      "",
		"shared/deep/c.js": "",
	})
	if err := os.Symlink(filepath.Join(root, "shared"), filepath.Join(root, "src", "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := DiscoverSourceFiles(context.Background(), root, models.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.ts"}, files)
}

func TestDiscoverSourceFiles_Cancelled(t *testing.T) {
	root := writeProject(t, map[string]string{"src/a.ts": "", "src/b.ts": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DiscoverSourceFiles(ctx, root, models.DefaultRules())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtensionPattern(t *testing.T) {
	assert.Equal(t, "**/*.js", extensionPattern([]string{".js"}))
	assert.Equal(t, "**/*{.js,.tsx}", extensionPattern([]string{".js", ".tsx"}))
	assert.Equal(t, `**/*\{x\}`, extensionPattern([]string{"{x}"}))
}
