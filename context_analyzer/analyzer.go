package context_analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/contracts"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidUTF8 marks a source file whose content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// Options configures a ContextAnalyzer. Zero values select the defaults;
// Rules counts as unset when its SourceDir is empty.
type Options struct {
	Rules     models.Rules
	Extractor contracts.IExtractor
	Workers   int
	Logger    *pterm.Logger
	Cache     *CacheManager
	Now       func() time.Time
}

// ContextAnalyzer builds a ProjectContext snapshot of a front-end project.
type ContextAnalyzer struct {
	rules        models.Rules
	extractor    contracts.IExtractor
	workers      int
	logger       *pterm.Logger
	logMutex     sync.Mutex
	cacheManager *CacheManager
	now          func() time.Time
}

// NewContextAnalyzer initializes a new ContextAnalyzer.
func NewContextAnalyzer(opts Options) contracts.IContextAnalyzer {
	return newContextAnalyzer(opts)
}

func newContextAnalyzer(opts Options) *ContextAnalyzer {
	if opts.Rules.SourceDir == "" {
		opts.Rules = models.DefaultRules()
	}

	analyzer := &ContextAnalyzer{
		rules:        opts.Rules,
		extractor:    opts.Extractor,
		workers:      opts.Workers,
		logger:       opts.Logger,
		cacheManager: opts.Cache,
		now:          opts.Now,
	}
	if analyzer.extractor == nil {
		analyzer.extractor = NewLexicalExtractor(opts.Rules)
	}
	if analyzer.workers <= 0 {
		analyzer.workers = runtime.NumCPU()
	}
	if analyzer.logger == nil {
		analyzer.logger = &pterm.DefaultLogger
	}
	if analyzer.now == nil {
		analyzer.now = time.Now
	}
	return analyzer
}

// Analyze scans rootDir and returns a fresh snapshot. Only an unusable root
// fails the call with a *ConfigError; every other problem is logged as a
// warning. If ctx is cancelled the partial snapshot is returned together
// with ctx.Err().
func (analyzer *ContextAnalyzer) Analyze(ctx context.Context, rootDir string) (*models.ProjectContext, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, &ConfigError{Root: rootDir, Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Root: rootDir, Err: errors.New("not a directory")}
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, &ConfigError{Root: rootDir, Err: err}
	}

	result := models.NewProjectContext(filepath.Base(absRoot), analyzer.now())
	result.Language = analyzer.rules.Language

	manifest, err := ReadManifest(absRoot, analyzer.rules)
	if err != nil {
		analyzer.warn("Could not parse manifest, using defaults", "error", err)
	}
	result.Dependencies = manifest.Dependencies
	result.Framework = manifest.Framework

	files, err := DiscoverSourceFiles(ctx, absRoot, analyzer.rules)
	if err != nil && ctx.Err() == nil {
		analyzer.warn("Source discovery incomplete", "error", err)
	}

	analyses := analyzer.analyzeFiles(ctx, absRoot, files)
	analyzer.merge(result, files, analyses)

	result.FileTree = BuildFileTree(ctx, absRoot, analyzer.rules)

	analyzer.logger.Debug("Analysis complete", analyzer.logger.Args(
		"project", result.ProjectName,
		"files", len(result.FileAnalyses),
		"components", len(result.Components),
	))

	return result, ctx.Err()
}

// analyzeFiles runs the per-file pipeline on a bounded worker pool. Files
// that fail are logged and left out of the returned map.
func (analyzer *ContextAnalyzer) analyzeFiles(ctx context.Context, absRoot string, files []string) map[string]*models.FileAnalysis {
	var mutex sync.Mutex
	analyses := make(map[string]*models.FileAnalysis, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(analyzer.workers)

	for _, relativePath := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			analysis, err := analyzer.analyzeFile(groupCtx, absRoot, relativePath)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					analyzer.warn("Could not analyze file", "path", relativePath, "error", err)
				}
				return nil
			}
			mutex.Lock()
			analyses[relativePath] = analysis
			mutex.Unlock()
			return nil
		})
	}

	_ = group.Wait()
	return analyses
}

func (analyzer *ContextAnalyzer) analyzeFile(ctx context.Context, absRoot string, relativePath string) (*models.FileAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath := filepath.Join(absRoot, filepath.FromSlash(relativePath))
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, &FileError{Path: relativePath, Op: "stat", Err: err}
	}

	if analyzer.cacheManager != nil {
		if cached, found := analyzer.cacheManager.GetFileAnalysis(absPath, info); found {
			return cached, nil
		}
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &FileError{Path: relativePath, Op: "read", Err: err}
	}
	if !utf8.Valid(raw) {
		return nil, &FileError{Path: relativePath, Op: "decode", Err: ErrInvalidUTF8}
	}

	analysis, err := analyzer.AnalyzeContent(ctx, relativePath, normalizeNewlines(string(raw)))
	if err != nil {
		return nil, err
	}

	if analyzer.cacheManager != nil {
		if err := analyzer.cacheManager.SetFileAnalysis(absPath, info, analysis); err != nil {
			analyzer.logger.Debug("Could not cache file analysis", analyzer.logger.Args("path", relativePath, "error", err))
		}
	}
	return analysis, nil
}

// AnalyzeContent runs every per-file heuristic over already-decoded text.
func (analyzer *ContextAnalyzer) AnalyzeContent(ctx context.Context, relativePath string, content string) (*models.FileAnalysis, error) {
	extraction, err := analyzer.extractor.Extract(ctx, relativePath, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FileError{Path: relativePath, Op: fmt.Sprintf("extract (%s)", analyzer.extractor.Name()), Err: err}
	}

	analysis := &models.FileAnalysis{
		Record: models.FileRecord{
			Path:           relativePath,
			Type:           ClassifyFile(relativePath, analyzer.rules),
			LinesOfCode:    CountLines(content),
			Functions:      extraction.Functions,
			Imports:        extraction.Imports,
			HooksUsed:      extraction.HooksUsed,
			ComponentsUsed: extraction.ComponentsUsed,
		},
		EndpointTags: MatchTags(content, analyzer.rules.EndpointRules),
		StateTags:    MatchTags(content, analyzer.rules.StateRules),
	}
	if component, ok := BuildComponent(relativePath, extraction, content, analyzer.rules); ok {
		analysis.Component = component
	}
	return analysis, nil
}

// merge folds per-file results into the snapshot in sorted path order, so
// a component stem shared by several files resolves to the last path.
func (analyzer *ContextAnalyzer) merge(result *models.ProjectContext, files []string, analyses map[string]*models.FileAnalysis) {
	endpoints := tagSet{}
	patterns := tagSet{}

	for _, relativePath := range files {
		analysis, ok := analyses[relativePath]
		if !ok {
			continue
		}

		result.FileAnalyses[relativePath] = normalizeRecord(analysis.Record)

		if analysis.Component != nil {
			component := normalizeComponent(*analysis.Component)
			if existing, found := result.Components[component.Name]; found {
				analyzer.warn("Component name collision, keeping the later file",
					"component", component.Name, "previous", existing.FilePath, "path", component.FilePath)
			}
			result.Components[component.Name] = component
		}

		endpoints.add(analysis.EndpointTags...)
		patterns.add(analysis.StateTags...)
	}

	result.APIEndpoints = endpoints.sorted()
	result.StateManagement = patterns.sorted()
}

func (analyzer *ContextAnalyzer) warn(msg string, args ...any) {
	analyzer.logMutex.Lock()
	defer analyzer.logMutex.Unlock()
	analyzer.logger.Warn(msg, analyzer.logger.Args(args...))
}

// GetCacheStats reports cache statistics, or cache_enabled=false.
func (analyzer *ContextAnalyzer) GetCacheStats() (map[string]interface{}, error) {
	if analyzer.cacheManager == nil {
		return map[string]interface{}{"cache_enabled": false}, nil
	}
	return analyzer.cacheManager.GetCacheStats()
}

// ClearCache removes all cached file analyses.
func (analyzer *ContextAnalyzer) ClearCache() error {
	if analyzer.cacheManager == nil {
		return nil
	}
	return analyzer.cacheManager.ClearCache()
}

// CleanExpiredCache removes cache entries written more than maxAge ago and
// reports how many were removed.
func (analyzer *ContextAnalyzer) CleanExpiredCache(maxAge time.Duration) (int, error) {
	if analyzer.cacheManager == nil {
		return 0, nil
	}
	return analyzer.cacheManager.CleanExpiredCache(maxAge)
}

func normalizeRecord(record models.FileRecord) models.FileRecord {
	record.Functions = nonNil(record.Functions)
	record.Imports = nonNil(record.Imports)
	record.HooksUsed = nonNil(record.HooksUsed)
	record.ComponentsUsed = nonNil(record.ComponentsUsed)
	return record
}

func normalizeComponent(component models.ComponentRecord) models.ComponentRecord {
	component.HooksUsed = nonNil(component.HooksUsed)
	component.ChildrenComponents = nonNil(component.ChildrenComponents)
	return component
}

// nonNil keeps empty collections serialized as [] rather than null.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
