// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter evaluates paper text against configurable keyword sets.
package filter

import (
	"strings"

	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

// Parse splits a comma-separated keyword string into a KeywordSet with the
// given mode. Terms are trimmed and empty terms dropped; order is preserved.
func Parse(raw string, mode types.MatchMode) types.KeywordSet {
	var terms []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	return types.KeywordSet{Terms: terms, Mode: mode}
}

// Matches reports whether text satisfies the keyword set. Matching is
// case-insensitive substring containment. An empty set matches everything.
// AND requires every term to appear; OR requires at least one.
func Matches(text string, set types.KeywordSet) bool {
	if len(set.Terms) == 0 {
		return true
	}
	text = strings.ToLower(text)
	for _, term := range set.Terms {
		found := strings.Contains(text, strings.ToLower(term))
		if set.Mode == types.ModeAND {
			if !found {
				return false
			}
		} else if found {
			return true
		}
	}
	return set.Mode == types.ModeAND
}
