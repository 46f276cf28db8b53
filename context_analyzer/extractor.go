package context_analyzer

import (
	"fmt"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/contracts"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

const (
	ExtractorLexical = "lexical"
	ExtractorSyntax  = "syntax"
)

// NewExtractor returns the extractor registered under name. An empty name
// selects the lexical extractor.
func NewExtractor(name string, rules models.Rules) (contracts.IExtractor, error) {
	switch name {
	case "", ExtractorLexical:
		return NewLexicalExtractor(rules), nil
	case ExtractorSyntax:
		return NewSyntaxExtractor(rules), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (expected %q or %q)", name, ExtractorLexical, ExtractorSyntax)
	}
}
