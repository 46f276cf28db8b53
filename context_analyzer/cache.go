package context_analyzer

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/zeebo/xxh3"
)

const cacheFileSuffix = ".cache"

// CacheEntry is one cached per-file analysis plus the file metadata it was
// computed from.
type CacheEntry struct {
	Data      *models.FileAnalysis
	Timestamp time.Time
	FileSize  int64
	ModTime   time.Time
	Path      string
}

// FileCache stores gob-encoded entries, one file per analyzed source file.
type FileCache struct {
	cacheDir string
	mutex    sync.RWMutex
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// CacheManager caches per-file analyses across runs. Entries are keyed by the
// file path and a fingerprint of the rules, so changing any vocabulary or
// the extractor invalidates everything.
type CacheManager struct {
	fileCache   *FileCache
	stats       *CacheStats
	fingerprint string
}

// DefaultCacheDir returns <user cache dir>/appctx.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(base, "appctx"), nil
}

// NewCacheManager creates the cache directory if needed.
// If cacheDir is empty, DefaultCacheDir is used.
func NewCacheManager(cacheDir string, fingerprint string) (*CacheManager, error) {
	if cacheDir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		cacheDir = dir
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &CacheManager{
		fileCache:   &FileCache{cacheDir: cacheDir},
		stats:       &CacheStats{LastResetTime: time.Now()},
		fingerprint: fingerprint,
	}, nil
}

// RulesFingerprint hashes the rules and extractor name into a short key.
func RulesFingerprint(rules models.Rules, extractorName string) string {
	encoded, err := json.Marshal(rules)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%+v", rules))
	}
	return fmt.Sprintf("%016x", xxh3.Hash(append(encoded, []byte("|"+extractorName)...)))
}

func (fc *FileCache) generateCacheKey(filePath string, fingerprint string) string {
	return fmt.Sprintf("%016x%s", xxh3.HashString(fingerprint+"\x00"+filePath), cacheFileSuffix)
}

func (fc *FileCache) getCachePath(cacheKey string) string {
	return filepath.Join(fc.cacheDir, cacheKey)
}

func readCacheEntry(cachePath string) (*CacheEntry, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// get returns the entry for filePath if it was stored for the same size and
// modification time as info. Stale entries are removed.
func (fc *FileCache) get(filePath string, fingerprint string, info os.FileInfo) (*models.FileAnalysis, bool) {
	fc.mutex.RLock()
	cachePath := fc.getCachePath(fc.generateCacheKey(filePath, fingerprint))
	entry, err := readCacheEntry(cachePath)
	fc.mutex.RUnlock()

	if err != nil || entry.Data == nil {
		return nil, false
	}
	if entry.Path != filePath || entry.FileSize != info.Size() || !entry.ModTime.Equal(info.ModTime()) {
		fc.mutex.Lock()
		_ = os.Remove(cachePath)
		fc.mutex.Unlock()
		return nil, false
	}
	return entry.Data, true
}

func (fc *FileCache) set(filePath string, fingerprint string, info os.FileInfo, analysis *models.FileAnalysis) error {
	entry := CacheEntry{
		Data:      analysis,
		Timestamp: time.Now(),
		FileSize:  info.Size(),
		ModTime:   info.ModTime(),
		Path:      filePath,
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	cachePath := fc.getCachePath(fc.generateCacheKey(filePath, fingerprint))
	if err := os.WriteFile(cachePath, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// GetFileAnalysis retrieves a cached analysis for an unchanged file.
func (cm *CacheManager) GetFileAnalysis(filePath string, info os.FileInfo) (*models.FileAnalysis, bool) {
	analysis, found := cm.fileCache.get(filePath, cm.fingerprint, info)
	if found {
		cm.recordCacheHit()
	} else {
		cm.recordCacheMiss()
	}
	return analysis, found
}

// SetFileAnalysis stores the analysis computed from the file described by info.
func (cm *CacheManager) SetFileAnalysis(filePath string, info os.FileInfo, analysis *models.FileAnalysis) error {
	return cm.fileCache.set(filePath, cm.fingerprint, info, analysis)
}

// cacheFiles lists the entry files, ignoring anything else in the directory.
func (cm *CacheManager) cacheFiles() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(cm.fileCache.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	files := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), cacheFileSuffix) {
			files = append(files, entry)
		}
	}
	return files, nil
}

// GetCacheStats returns storage statistics merged with hit/miss counters.
func (cm *CacheManager) GetCacheStats() (map[string]interface{}, error) {
	cm.fileCache.mutex.RLock()
	defer cm.fileCache.mutex.RUnlock()

	files, err := cm.cacheFiles()
	if err != nil {
		return nil, err
	}

	var totalSize int64
	for _, file := range files {
		if info, err := file.Info(); err == nil {
			totalSize += info.Size()
		}
	}

	stats := cm.GetPerformanceStats()
	stats["cache_enabled"] = true
	stats["cache_files"] = len(files)
	stats["total_size"] = totalSize
	stats["cache_dir"] = cm.fileCache.cacheDir
	return stats, nil
}

// ClearCache removes every cache entry.
func (cm *CacheManager) ClearCache() error {
	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := cm.cacheFiles()
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := os.Remove(filepath.Join(cm.fileCache.cacheDir, file.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete cache file %s: %w", file.Name(), err)
		}
	}
	return nil
}

// CleanExpiredCache removes entries written more than maxAge ago, plus any
// entry that can no longer be decoded.
func (cm *CacheManager) CleanExpiredCache(maxAge time.Duration) (int, error) {
	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := cm.cacheFiles()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, file := range files {
		cachePath := filepath.Join(cm.fileCache.cacheDir, file.Name())
		entry, err := readCacheEntry(cachePath)
		if err != nil || entry.Timestamp.Before(cutoff) {
			if os.Remove(cachePath) == nil {
				removed++
			}
		}
	}
	return removed, nil
}
