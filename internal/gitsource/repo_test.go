package gitsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLocalSourceMissingPath(t *testing.T) {
	_, err := openLocalSource("", filepath.Join(t.TempDir(), "nowhere"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocalSourceMissing)
}

func TestOpenLocalSourceNotARepo(t *testing.T) {
	_, err := openLocalSource("", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocalSourceNotRepo)
}

func TestOpenLocalSourceResolvesRelativePathAgainstPlaybookDir(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "docs-repo", ".git"), 0o755))

	_, err := openLocalSource(parent, "./docs-repo")
	// PlainOpen fails because ".git" here is an empty directory, not a real
	// repository, but ErrLocalSourceNotRepo (rather than ErrLocalSourceMissing)
	// proves the path was resolved against parent and found to exist.
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocalSourceNotRepo)
}
