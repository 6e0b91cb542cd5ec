package playbook_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dionysius/docweave/internal/playbook"
	"github.com/dionysius/docweave/internal/siteurl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playbook.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  title: Docs
content:
  sources:
    - url: https://example.com/repo.git
`), 0644))

	pb, err := playbook.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Docs", pb.Site.Title)
	assert.Equal(t, siteurl.StyleDefault, pb.URLs.HTMLExtensionStyle)
	assert.Equal(t, "antora.yml", pb.DescriptorFilename)
	assert.Equal(t, "default", pb.UI.DefaultLayout)
	assert.Len(t, pb.Content.Sources, 1)
	assert.Equal(t, "https://example.com/repo.git", pb.Content.Sources[0].URL)
}

func TestLoadHonorsExplicitExtensionStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playbook.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
urls:
  html_extension_style: indexify
`), 0644))

	pb, err := playbook.Load(path)
	require.NoError(t, err)
	assert.Equal(t, siteurl.StyleIndexify, pb.URLs.HTMLExtensionStyle)
}
