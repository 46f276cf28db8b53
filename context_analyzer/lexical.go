package context_analyzer

import (
	"context"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

// ClassifyFile maps a file name onto a FileType. The checks run in priority
// order on the lower-cased name.
func ClassifyFile(name string, rules models.Rules) models.FileType {
	fileName := strings.ToLower(filepath.Base(name))

	switch {
	case strings.Contains(fileName, "test") || strings.Contains(fileName, "spec"):
		return models.FileTypeTest
	case hasSuffixIn(name, rules.ComponentExtensions) || strings.Contains(fileName, "component"):
		return models.FileTypeComponent
	case strings.Contains(fileName, "service") || strings.Contains(fileName, "api"):
		return models.FileTypeService
	case strings.Contains(fileName, "util") || strings.Contains(fileName, "helper"):
		return models.FileTypeUtility
	default:
		return models.FileTypeModule
	}
}

// CountLines counts the lines that are not blank after trimming.
func CountLines(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// DetectHooks reports every hook name that occurs anywhere in the content.
// Occurrences inside strings, comments or longer identifiers count too.
func DetectHooks(content string, hookNames []string) []string {
	hooks := make([]string, 0, len(hookNames))
	for _, hook := range hookNames {
		if hook != "" && strings.Contains(content, hook) {
			hooks = append(hooks, hook)
		}
	}
	return sortedSet(hooks)
}

// Identifiers may contain any Unicode letter or digit, not just ASCII.
var (
	functionDeclRegex = regexp.MustCompile(`function\s+([\p{L}\p{N}_]+)`)
	constBindingRegex = regexp.MustCompile(`const\s+([\p{L}\p{N}_]+)\s*=`)
	componentTagRegex = regexp.MustCompile(`<([A-Z][\p{L}\p{N}_]+)`)
)

// LexicalExtractor is the line- and substring-based extractor. It never
// fails on valid text.
type LexicalExtractor struct {
	HookNames []string
}

func NewLexicalExtractor(rules models.Rules) *LexicalExtractor {
	return &LexicalExtractor{HookNames: slices.Clone(rules.HookNames)}
}

func (e *LexicalExtractor) Name() string { return ExtractorLexical }

func (e *LexicalExtractor) Extract(ctx context.Context, relativePath string, content string) (models.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return models.Extraction{}, err
	}

	lines := strings.Split(content, "\n")
	return models.Extraction{
		Functions:      extractFunctions(lines),
		Imports:        extractImports(lines),
		HooksUsed:      DetectHooks(content, e.HookNames),
		ComponentsUsed: extractComponentUsage(lines),
	}, nil
}

func extractFunctions(lines []string) []string {
	var functions []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "function ") {
			if matches := functionDeclRegex.FindStringSubmatch(line); matches != nil {
				functions = append(functions, matches[1])
			}
		} else if strings.Contains(line, "const ") && strings.Contains(line, "=>") {
			if matches := constBindingRegex.FindStringSubmatch(line); matches != nil {
				functions = append(functions, matches[1])
			}
		}
	}
	return sortedSet(functions)
}

// extractImports keeps every import line in file order, duplicates included.
func extractImports(lines []string) []string {
	imports := []string{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "import ") {
			imports = append(imports, line)
		}
	}
	return imports
}

func extractComponentUsage(lines []string) []string {
	var components []string
	for _, line := range lines {
		for _, matches := range componentTagRegex.FindAllStringSubmatch(line, -1) {
			components = append(components, matches[1])
		}
	}
	return sortedSet(components)
}
