package context_analyzer

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

// SyntaxExtractor extracts the same facts as LexicalExtractor from a
// tree-sitter parse instead of raw lines. Hooks are only reported when they
// appear as identifiers, so mentions in comments and strings are ignored.
type SyntaxExtractor struct {
	HookNames []string
}

func NewSyntaxExtractor(rules models.Rules) *SyntaxExtractor {
	return &SyntaxExtractor{HookNames: slices.Clone(rules.HookNames)}
}

func (e *SyntaxExtractor) Name() string { return ExtractorSyntax }

// languageFor picks the grammar by file suffix.
func languageFor(relativePath string) *sitter.Language {
	switch fileSuffix(relativePath) {
	case ".ts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

func (e *SyntaxExtractor) Extract(ctx context.Context, relativePath string, content string) (models.Extraction, error) {
	source := []byte(content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(relativePath))

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return models.Extraction{}, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return models.Extraction{}, fmt.Errorf("tree-sitter returned no root for %s", relativePath)
	}

	c := &syntaxCollector{
		source:  source,
		hooks:   make(map[string]bool, len(e.HookNames)),
		imports: []string{},
	}
	for _, hook := range e.HookNames {
		c.hooks[hook] = false
	}
	c.visit(root)

	var hooks []string
	for hook, seen := range c.hooks {
		if seen {
			hooks = append(hooks, hook)
		}
	}

	return models.Extraction{
		Functions:      sortedSet(c.functions),
		Imports:        c.imports,
		HooksUsed:      sortedSet(hooks),
		ComponentsUsed: sortedSet(c.components),
	}, nil
}

type syntaxCollector struct {
	source     []byte
	hooks      map[string]bool
	functions  []string
	imports    []string
	components []string
}

func (c *syntaxCollector) visit(node *sitter.Node) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			c.functions = append(c.functions, name.Content(c.source))
		}
	case "lexical_declaration":
		c.collectConstArrows(node)
	case "import_statement":
		c.imports = append(c.imports, strings.Join(strings.Fields(node.Content(c.source)), " "))
	case "jsx_opening_element", "jsx_self_closing_element":
		if name := node.ChildByFieldName("name"); name != nil {
			c.collectComponent(name.Content(c.source))
		}
	case "identifier", "property_identifier":
		if _, ok := c.hooks[node.Content(c.source)]; ok {
			c.hooks[node.Content(c.source)] = true
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil {
			c.visit(child)
		}
	}
}

// collectConstArrows records `const name = (...) => ...` bindings.
func (c *syntaxCollector) collectConstArrows(node *sitter.Node) {
	if node.ChildCount() == 0 || node.Child(0).Type() != "const" {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		declarator := node.NamedChild(i)
		if declarator == nil || declarator.Type() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		value := declarator.ChildByFieldName("value")
		if name == nil || value == nil || value.Type() != "arrow_function" {
			continue
		}
		if name.Type() == "identifier" {
			c.functions = append(c.functions, name.Content(c.source))
		}
	}
}

// collectComponent keeps the leading segment of a tag name such as
// "Foo.Bar" when it starts with an upper-case letter.
func (c *syntaxCollector) collectComponent(tagName string) {
	if i := strings.IndexAny(tagName, ".:"); i >= 0 {
		tagName = tagName[:i]
	}
	if tagName == "" {
		return
	}
	if first := []rune(tagName)[0]; unicode.IsUpper(first) {
		c.components = append(c.components, tagName)
	}
}
