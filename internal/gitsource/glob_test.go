package gitsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesGlobPatternsEmptyMatchesEverything(t *testing.T) {
	assert.True(t, matchesGlobPatterns(nil, "release/1.0"))
}

func TestMatchesGlobPatternsPositiveOred(t *testing.T) {
	assert.True(t, matchesGlobPatterns([]string{"v1.*", "v2.*"}, "v2.0"))
	assert.False(t, matchesGlobPatterns([]string{"v1.*", "v2.*"}, "v3.0"))
}

func TestMatchesGlobPatternsNegationSubtracts(t *testing.T) {
	patterns := []string{"v*", "!v1.0-beta"}
	assert.True(t, matchesGlobPatterns(patterns, "v1.0"))
	assert.False(t, matchesGlobPatterns(patterns, "v1.0-beta"))
}
