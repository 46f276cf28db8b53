package contracts

import (
	"context"
	"time"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

type IContextAnalyzer interface {
	Analyze(ctx context.Context, rootDir string) (*models.ProjectContext, error)
	GetCacheStats() (map[string]interface{}, error)
	ClearCache() error
	CleanExpiredCache(maxAge time.Duration) (int, error)
}

// IExtractor pulls functions, imports, hooks and referenced components out of
// one file's text. Implementations must be safe for concurrent use.
type IExtractor interface {
	Name() string
	Extract(ctx context.Context, relativePath string, content string) (models.Extraction, error)
}
