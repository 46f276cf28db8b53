package context_analyzer

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

// Manifest is what the analyzer takes from the project manifest.
type Manifest struct {
	Dependencies map[string]string
	Framework    string
}

type packageManifest struct {
	Dependencies map[string]string `json:"dependencies"`
}

// ReadManifest loads the dependency map and framework label. A missing
// manifest yields defaults and no error; an unreadable or malformed one
// yields defaults and a *ManifestError.
func ReadManifest(rootDir string, rules models.Rules) (Manifest, error) {
	result := Manifest{
		Dependencies: make(map[string]string),
		Framework:    rules.UnknownFramework,
	}

	manifestPath := filepath.Join(rootDir, rules.ManifestFile)
	content, err := os.ReadFile(manifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	} else if err != nil {
		return result, &ManifestError{Path: manifestPath, Err: err}
	}

	var manifest packageManifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return result, &ManifestError{Path: manifestPath, Err: err}
	}

	for name, version := range manifest.Dependencies {
		result.Dependencies[name] = version
	}
	result.Framework = DetectFramework(result.Dependencies, rules)

	return result, nil
}

// DetectFramework checks the single framework signal. Any other dependency
// set is reported as rules.UnknownFramework.
func DetectFramework(dependencies map[string]string, rules models.Rules) string {
	if _, ok := dependencies[rules.FrameworkDependency]; ok && rules.FrameworkDependency != "" {
		return rules.FrameworkLabel
	}
	return rules.UnknownFramework
}
