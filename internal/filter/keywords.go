// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter implements the keyword gates and the additive quality
// score that decide which candidate papers enter the pipeline.
package filter

import (
	"strings"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// searchText returns the lowercased title+abstract blob both keyword gates
// match against.
func searchText(p types.Paper) string {
	return strings.ToLower(p.Title) + " " + strings.ToLower(p.Abstract)
}

// ShouldExclude reports whether any exclude keyword appears in the paper's
// title or abstract. An empty keyword list excludes nothing.
func ShouldExclude(p types.Paper, excludeKeywords []string) bool {
	if len(excludeKeywords) == 0 {
		return false
	}
	text := searchText(p)
	for _, kw := range excludeKeywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// MatchesIncludeAny reports whether at least one include keyword appears in
// the paper's title or abstract. An empty keyword list passes every paper.
func MatchesIncludeAny(p types.Paper, includeKeywords []string) bool {
	if len(includeKeywords) == 0 {
		return true
	}
	text := searchText(p)
	for _, kw := range includeKeywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
