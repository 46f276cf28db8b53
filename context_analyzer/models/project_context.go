package models

import "time"

// FileType is the coarse purpose of a source file, derived from its name.
type FileType string

const (
	FileTypeTest      FileType = "test"
	FileTypeComponent FileType = "component"
	FileTypeService   FileType = "service"
	FileTypeUtility   FileType = "utility"
	FileTypeModule    FileType = "module"
)

// ProjectContext is the snapshot handed to downstream consumers.
type ProjectContext struct {
	ProjectName     string                     `json:"project_name" yaml:"project_name"`
	Framework       string                     `json:"framework" yaml:"framework"`
	Language        string                     `json:"language" yaml:"language"`
	LastAnalyzed    time.Time                  `json:"last_analyzed" yaml:"last_analyzed"`
	FileAnalyses    map[string]FileRecord      `json:"file_analyses" yaml:"file_analyses"`
	Components      map[string]ComponentRecord `json:"components" yaml:"components"`
	Dependencies    map[string]string          `json:"dependencies" yaml:"dependencies"`
	FileTree        *FileTreeNode              `json:"file_tree" yaml:"file_tree"`
	APIEndpoints    []string                   `json:"api_endpoints" yaml:"api_endpoints"`
	StateManagement []string                   `json:"state_management" yaml:"state_management"`
}

// FileRecord holds the heuristic analysis of one source file.
type FileRecord struct {
	Path           string   `json:"path" yaml:"path"`
	Type           FileType `json:"type" yaml:"type"`
	LinesOfCode    int      `json:"lines_of_code" yaml:"lines_of_code"`
	Functions      []string `json:"functions" yaml:"functions"`
	Imports        []string `json:"imports" yaml:"imports"`
	HooksUsed      []string `json:"hooks_used" yaml:"hooks_used"`
	ComponentsUsed []string `json:"components_used" yaml:"components_used"`
}

// ComponentRecord describes a UI component defined by a .jsx/.tsx file.
type ComponentRecord struct {
	Name               string   `json:"name" yaml:"name"`
	FilePath           string   `json:"file_path" yaml:"file_path"`
	HooksUsed          []string `json:"hooks_used" yaml:"hooks_used"`
	ChildrenComponents []string `json:"children_components" yaml:"children_components"`
	HasState           bool     `json:"has_state" yaml:"has_state"`
	HasEffects         bool     `json:"has_effects" yaml:"has_effects"`
}

// Extraction is what an extractor pulls out of a file's text.
// Set-valued fields are sorted and deduplicated; Imports keeps file order.
type Extraction struct {
	Functions      []string
	Imports        []string
	HooksUsed      []string
	ComponentsUsed []string
}

// FileAnalysis is the complete per-file result, including the parts that
// are merged project-wide. It is also the unit stored in the file cache.
type FileAnalysis struct {
	Record       FileRecord
	Component    *ComponentRecord
	EndpointTags []string
	StateTags    []string
}

// NewProjectContext returns a context whose collections are all non-nil.
func NewProjectContext(name string, analyzedAt time.Time) *ProjectContext {
	return &ProjectContext{
		ProjectName:     name,
		LastAnalyzed:    analyzedAt,
		FileAnalyses:    make(map[string]FileRecord),
		Components:      make(map[string]ComponentRecord),
		Dependencies:    make(map[string]string),
		FileTree:        NewDirectoryNode(),
		APIEndpoints:    []string{},
		StateManagement: []string{},
	}
}
