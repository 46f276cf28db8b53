package context_analyzer

import (
	"strings"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
)

// MatchTags evaluates every rule against the content and returns the tags
// that fired, sorted. Only presence is recorded, never positions.
func MatchTags(content string, rules []models.TagRule) []string {
	var lowered string
	tags := []string{}

	for _, rule := range rules {
		haystack := content
		if rule.IgnoreCase {
			if lowered == "" {
				lowered = strings.ToLower(content)
			}
			haystack = lowered
		}
		if matchRule(haystack, rule) {
			tags = append(tags, rule.Tag)
		}
	}
	return sortedSet(tags)
}

func matchRule(haystack string, rule models.TagRule) bool {
	if len(rule.AnyOf) == 0 && len(rule.AllOf) == 0 {
		return false
	}

	contains := func(needle string) bool {
		if rule.IgnoreCase {
			needle = strings.ToLower(needle)
		}
		return strings.Contains(haystack, needle)
	}

	if len(rule.AnyOf) > 0 {
		found := false
		for _, needle := range rule.AnyOf {
			if contains(needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, needle := range rule.AllOf {
		if !contains(needle) {
			return false
		}
	}
	return true
}

// tagSet accumulates tags from many files.
type tagSet map[string]struct{}

func (s tagSet) add(tags ...string) {
	for _, tag := range tags {
		s[tag] = struct{}{}
	}
}

func (s tagSet) sorted() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	return sortedSet(tags)
}
