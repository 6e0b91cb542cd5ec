package gitsource

import (
	"path/filepath"
	"strings"
)

// matchesGlobPatterns reports whether value matches patterns: an empty
// pattern list matches everything, positive patterns are OR'd together,
// and any "!"-prefixed negation that matches subtracts from that result.
func matchesGlobPatterns(patterns []string, value string) bool {
	if len(patterns) == 0 {
		return true
	}

	var positive, negative []string
	for _, p := range patterns {
		if after, ok := strings.CutPrefix(p, "!"); ok {
			negative = append(negative, after)
		} else {
			positive = append(positive, p)
		}
	}

	matched := len(positive) == 0
	for _, p := range positive {
		if m, _ := filepath.Match(p, value); m {
			matched = true
			break
		}
	}

	if matched {
		for _, p := range negative {
			if m, _ := filepath.Match(p, value); m {
				matched = false
				break
			}
		}
	}

	return matched
}
