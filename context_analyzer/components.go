package context_analyzer

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

// IsComponentFile reports whether a file defines a UI component: it has a
// component suffix and "test" is not part of its name.
func IsComponentFile(relativePath string, rules models.Rules) bool {
	name := filepath.Base(relativePath)
	return hasSuffixIn(name, rules.ComponentExtensions) && !strings.Contains(strings.ToLower(name), "test")
}

// BuildComponent derives the ComponentRecord of a component file, keyed by
// the file stem. The second result is false for non-component files.
func BuildComponent(relativePath string, extraction models.Extraction, content string, rules models.Rules) (*models.ComponentRecord, bool) {
	if !IsComponentFile(relativePath, rules) {
		return nil, false
	}

	return &models.ComponentRecord{
		Name:               fileStem(relativePath),
		FilePath:           relativePath,
		HooksUsed:          slices.Clone(extraction.HooksUsed),
		ChildrenComponents: slices.Clone(extraction.ComponentsUsed),
		HasState:           rules.StateHook != "" && strings.Contains(content, rules.StateHook),
		HasEffects:         rules.EffectHook != "" && strings.Contains(content, rules.EffectHook),
	}, true
}
