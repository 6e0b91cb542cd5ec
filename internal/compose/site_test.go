package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dionysius/docweave/internal/compose"
	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/playbook"
	"github.com/dionysius/docweave/internal/siteurl"
)

func newCatalog() *content.Catalog {
	return content.NewCatalog(siteurl.StyleDefault)
}

func addTestPage(t *testing.T, catalog *content.Catalog, component, version, module, relative string) *content.File {
	t.Helper()
	basename := relative
	stem := basename[:len(basename)-len(".adoc")]
	file := &content.File{
		Path:     "modules/" + module + "/pages/" + relative,
		Contents: []byte("= Title\n\nbody"),
		Src: content.Src{
			Component: component, Version: version, Module: module,
			Family: family.Page, Relative: relative, Basename: basename, Stem: stem,
			MediaType: "text/asciidoc",
		},
	}
	require.NoError(t, catalog.AddFile(file))
	return file
}

func TestNewSiteUIModelSortsComponentsAlphabetically(t *testing.T) {
	catalog := newCatalog()
	addTestPage(t, catalog, "zeta", "1.0", "ROOT", "index.adoc")
	require.NoError(t, catalog.AddComponentVersion("zeta", "1.0", "Zeta Docs", ""))
	addTestPage(t, catalog, "alpha", "1.0", "ROOT", "index.adoc")
	require.NoError(t, catalog.AddComponentVersion("alpha", "1.0", "Alpha Docs", ""))

	pb := playbook.Playbook{Site: playbook.Site{Title: "Docs Site", URL: "https://docs.example.com/"}}
	model, err := compose.NewSiteUIModel(pb, catalog)
	require.NoError(t, err)

	assert.Equal(t, "Docs Site", model.Title)
	assert.Equal(t, "https://docs.example.com", model.URL)
	require.Len(t, model.Components, 2)
	assert.Equal(t, "Alpha Docs", model.Components[0].Title)
	assert.Equal(t, "Zeta Docs", model.Components[1].Title)
}

func TestNewSiteUIModelResolvesStartPage(t *testing.T) {
	catalog := newCatalog()
	page := addTestPage(t, catalog, "docs", "1.0", "ROOT", "index.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	pb := playbook.Playbook{Site: playbook.Site{StartPage: "docs:index"}}
	model, err := compose.NewSiteUIModel(pb, catalog)
	require.NoError(t, err)
	assert.Equal(t, page.Pub.URL, model.StartPageURL)
}
