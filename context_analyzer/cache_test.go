package context_analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnalysis(path string) *models.FileAnalysis {
	return &models.FileAnalysis{
		Record: models.FileRecord{
			Path:           path,
			Type:           models.FileTypeComponent,
			LinesOfCode:    3,
			Functions:      []string{"Header"},
			Imports:        []string{"import React from 'react'"},
			HooksUsed:      []string{"useState"},
			ComponentsUsed: []string{"Logo"},
		},
		Component: &models.ComponentRecord{
			Name:               "Header",
			FilePath:           path,
			HooksUsed:          []string{"useState"},
			ChildrenComponents: []string{"Logo"},
			HasState:           true,
		},
		EndpointTags: []string{"fetch_api_detected"},
		StateTags:    []string{"React Hooks"},
	}
}

// Test cache manager setup and basic operations
func TestCacheManager_BasicOperations(t *testing.T) {
	tempDir := t.TempDir()

	cacheManager, err := NewCacheManager(filepath.Join(tempDir, "cache"), "fp")
	require.NoError(t, err)
	require.NotNil(t, cacheManager)

	testFile := filepath.Join(tempDir, "Header.tsx")
	require.NoError(t, os.WriteFile(testFile, []byte("export const Header = () => null"), 0644))
	info, err := os.Stat(testFile)
	require.NoError(t, err)

	analysis, found := cacheManager.GetFileAnalysis(testFile, info)
	assert.False(t, found) // Should not be cached initially
	assert.Nil(t, analysis)

	expected := sampleAnalysis("src/Header.tsx")
	require.NoError(t, cacheManager.SetFileAnalysis(testFile, info, expected))

	analysis, found = cacheManager.GetFileAnalysis(testFile, info)
	require.True(t, found)
	assert.Equal(t, expected, analysis)
}

// Test cache invalidation when file is modified
func TestCacheManager_FileInvalidation(t *testing.T) {
	tempDir := t.TempDir()

	cacheManager, err := NewCacheManager(filepath.Join(tempDir, "cache"), "fp")
	require.NoError(t, err)

	testFile := filepath.Join(tempDir, "api.ts")
	require.NoError(t, os.WriteFile(testFile, []byte("original"), 0644))
	info, err := os.Stat(testFile)
	require.NoError(t, err)

	require.NoError(t, cacheManager.SetFileAnalysis(testFile, info, sampleAnalysis("src/api.ts")))
	_, found := cacheManager.GetFileAnalysis(testFile, info)
	assert.True(t, found)

	// Modify the file; the size change alone must invalidate the entry.
	require.NoError(t, os.WriteFile(testFile, []byte("modified content"), 0644))
	info, err = os.Stat(testFile)
	require.NoError(t, err)

	analysis, found := cacheManager.GetFileAnalysis(testFile, info)
	assert.False(t, found) // Should be invalidated due to file modification
	assert.Nil(t, analysis)

	// The stale entry is removed.
	stats, err := cacheManager.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["cache_files"])
}

func TestCacheManager_FingerprintSeparatesEntries(t *testing.T) {
	tempDir := t.TempDir()
	cacheDir := filepath.Join(tempDir, "cache")

	rules := models.DefaultRules()
	lexical, err := NewCacheManager(cacheDir, RulesFingerprint(rules, ExtractorLexical))
	require.NoError(t, err)
	syntax, err := NewCacheManager(cacheDir, RulesFingerprint(rules, ExtractorSyntax))
	require.NoError(t, err)

	testFile := filepath.Join(tempDir, "a.ts")
	require.NoError(t, os.WriteFile(testFile, []byte("a"), 0644))
	info, err := os.Stat(testFile)
	require.NoError(t, err)

	require.NoError(t, lexical.SetFileAnalysis(testFile, info, sampleAnalysis("src/a.ts")))

	_, found := syntax.GetFileAnalysis(testFile, info)
	assert.False(t, found)
	_, found = lexical.GetFileAnalysis(testFile, info)
	assert.True(t, found)
}

func TestRulesFingerprint(t *testing.T) {
	rules := models.DefaultRules()
	base := RulesFingerprint(rules, ExtractorLexical)

	assert.Len(t, base, 16)
	assert.Equal(t, base, RulesFingerprint(models.DefaultRules(), ExtractorLexical))
	assert.NotEqual(t, base, RulesFingerprint(rules, ExtractorSyntax))

	rules.HookNames = append(rules.HookNames, "useRef")
	assert.NotEqual(t, base, RulesFingerprint(rules, ExtractorLexical))
}

// Test cache statistics functionality
func TestCacheManager_Statistics(t *testing.T) {
	tempDir := t.TempDir()

	// Use a subdirectory to ensure clean cache
	cacheDir := filepath.Join(tempDir, "cache")
	cacheManager, err := NewCacheManager(cacheDir, "fp")
	require.NoError(t, err)

	// Initially empty
	stats, err := cacheManager.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, true, stats["cache_enabled"])
	assert.Equal(t, 0, stats["cache_files"])
	assert.Equal(t, int64(0), stats["total_size"])

	for i := 1; i <= 2; i++ {
		testFile := filepath.Join(tempDir, fmt.Sprintf("file%d.ts", i))
		require.NoError(t, os.WriteFile(testFile, []byte(fmt.Sprintf("content %d", i)), 0644))
		info, err := os.Stat(testFile)
		require.NoError(t, err)
		require.NoError(t, cacheManager.SetFileAnalysis(testFile, info, sampleAnalysis(fmt.Sprintf("src/file%d.ts", i))))

		_, found := cacheManager.GetFileAnalysis(testFile, info)
		require.True(t, found)
	}

	// A stray file in the cache directory is not an entry.
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "README"), []byte("x"), 0644))

	stats, err = cacheManager.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats["cache_files"])
	assert.Greater(t, stats["total_size"], int64(0))
	assert.Equal(t, cacheDir, stats["cache_dir"])
	assert.Equal(t, int64(2), stats["cache_hits"])
	assert.Equal(t, 100.0, stats["hit_rate"])

	cacheManager.ResetPerformanceStats()
	perf := cacheManager.GetPerformanceStats()
	assert.Equal(t, int64(0), perf["total_requests"])
}

func TestCacheManager_ClearCache(t *testing.T) {
	tempDir := t.TempDir()
	cacheDir := filepath.Join(tempDir, "cache")
	cacheManager, err := NewCacheManager(cacheDir, "fp")
	require.NoError(t, err)

	testFile := filepath.Join(tempDir, "a.ts")
	require.NoError(t, os.WriteFile(testFile, []byte("a"), 0644))
	info, err := os.Stat(testFile)
	require.NoError(t, err)
	require.NoError(t, cacheManager.SetFileAnalysis(testFile, info, sampleAnalysis("src/a.ts")))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "keep.txt"), []byte("x"), 0644))

	require.NoError(t, cacheManager.ClearCache())

	_, found := cacheManager.GetFileAnalysis(testFile, info)
	assert.False(t, found)
	assert.FileExists(t, filepath.Join(cacheDir, "keep.txt"))
}

// Test cache cleanup functionality
func TestCacheManager_CleanupExpired(t *testing.T) {
	tempDir := t.TempDir()
	cacheDir := filepath.Join(tempDir, "cache")
	cacheManager, err := NewCacheManager(cacheDir, "fp")
	require.NoError(t, err)

	testFile := filepath.Join(tempDir, "a.ts")
	require.NoError(t, os.WriteFile(testFile, []byte("a"), 0644))
	info, err := os.Stat(testFile)
	require.NoError(t, err)
	require.NoError(t, cacheManager.SetFileAnalysis(testFile, info, sampleAnalysis("src/a.ts")))

	// A corrupt entry is always cleaned up.
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "corrupt.cache"), []byte("not gob"), 0644))

	removed, err := cacheManager.CleanExpiredCache(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, found := cacheManager.GetFileAnalysis(testFile, info)
	assert.True(t, found)

	time.Sleep(10 * time.Millisecond)
	removed, err = cacheManager.CleanExpiredCache(time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, found = cacheManager.GetFileAnalysis(testFile, info)
	assert.False(t, found)
}
