package gitsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRemoteClassifiesURLs(t *testing.T) {
	assert.True(t, isRemote("https://example.com/docs.git"))
	assert.True(t, isRemote("git@github.com:org/docs.git"))
	assert.True(t, isRemote("ssh://git@example.com/docs.git"))
	assert.False(t, isRemote("/home/user/docs"))
	assert.False(t, isRemote("./relative/docs"))
	// a ':' followed by a backslash still counts as "non-slash", so a
	// Windows drive-letter path is classified remote by this rule.
	assert.True(t, isRemote("C:\\docs"))
}

func TestNormalizeURLStripsSuffixAndCase(t *testing.T) {
	assert.Equal(t, "https://example.com/org/docs", normalizeURL("HTTPS://Example.com/org/docs.git/"))
}

func TestCachePathIsStableAndScoped(t *testing.T) {
	p1 := cachePath("/cache", "https://example.com/org/docs.git")
	p2 := cachePath("/cache", "https://example.com/org/docs")
	assert.Equal(t, p1, p2, "trailing .git must not change the cache entry")

	other := cachePath("/cache", "https://example.com/org/other.git")
	assert.NotEqual(t, p1, other)
}
