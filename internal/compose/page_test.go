package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dionysius/docweave/internal/compose"
	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/markup"
	"github.com/dionysius/docweave/internal/nav"
)

type fakeDoc struct {
	title string
	attrs map[string]string
}

func (d fakeDoc) Title() string                 { return d.title }
func (d fakeDoc) Attributes() map[string]string { return d.attrs }
func (d fakeDoc) Blocks() []markup.Block        { return nil }

type fakeParser struct{ doc fakeDoc }

func (p fakeParser) Parse(_ []byte, _ markup.ResolveInclude, _ markup.ResolvePageRef) (markup.Document, error) {
	return p.doc, nil
}

func TestComposePageUsesPageLayoutAttribute(t *testing.T) {
	catalog := newCatalog()
	page := addTestPage(t, catalog, "docs", "1.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	site := compose.SiteUIModel{}
	composer := compose.New(site, catalog, nav.NewCatalog())

	model, err := composer(page, fakeParser{doc: fakeDoc{title: "Intro", attrs: map[string]string{"page-layout": "article"}}})
	require.NoError(t, err)
	assert.Equal(t, "article", model.Layout)
	assert.Equal(t, "Intro", model.Title)
}

func TestComposePageFallsBackToSiteDefaultLayout(t *testing.T) {
	catalog := newCatalog()
	page := addTestPage(t, catalog, "docs", "1.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	site := compose.SiteUIModel{DefaultLayout: "default"}
	composer := compose.New(site, catalog, nav.NewCatalog())

	model, err := composer(page, fakeParser{doc: fakeDoc{title: "Intro"}})
	require.NoError(t, err)
	assert.Equal(t, "default", model.Layout)
}

func TestComposePageFailsWhenNoLayoutAvailable(t *testing.T) {
	catalog := newCatalog()
	page := addTestPage(t, catalog, "docs", "1.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	composer := compose.New(compose.SiteUIModel{}, catalog, nav.NewCatalog())
	_, err := composer(page, fakeParser{doc: fakeDoc{title: "Intro"}})
	assert.ErrorIs(t, err, compose.ErrLayoutNotFound)
}

func TestComposePageExtractsPagePrefixedAttributes(t *testing.T) {
	catalog := newCatalog()
	page := addTestPage(t, catalog, "docs", "1.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	site := compose.SiteUIModel{DefaultLayout: "default"}
	composer := compose.New(site, catalog, nav.NewCatalog())

	attrs := map[string]string{"page-layout": "article", "page-role": "landing", "source-language": "go"}
	model, err := composer(page, fakeParser{doc: fakeDoc{title: "Intro", attrs: attrs}})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"role": "landing"}, model.Attributes)
}

func TestComposePage404Bypass(t *testing.T) {
	catalog := newCatalog()
	site := compose.SiteUIModel{}
	composer := compose.New(site, catalog, nav.NewCatalog())

	notFound := &content.File{Src: content.Src{Stem: "404"}}
	model, err := composer(notFound, fakeParser{doc: fakeDoc{}})
	require.NoError(t, err)
	assert.Equal(t, "404", model.Layout)
}

func TestComposePageVersionFanOutSparseMode(t *testing.T) {
	catalog := newCatalog()
	require.NoError(t, catalog.AddComponentVersion("docs", "2.0", "Docs", ""))
	page := addTestPage(t, catalog, "docs", "2.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	site := compose.SiteUIModel{DefaultLayout: "default"}
	composer := compose.New(site, catalog, nav.NewCatalog())
	model, err := composer(page, fakeParser{doc: fakeDoc{title: "Intro"}})
	require.NoError(t, err)

	require.Len(t, model.Versions, 2)
	assert.Equal(t, "2.0", model.Versions[0].Version)
	assert.False(t, model.Versions[0].Missing)
	assert.Equal(t, "1.0", model.Versions[1].Version)
	assert.True(t, model.Versions[1].Missing)
}

func TestComposePageBreadcrumbsFallBackToTitle(t *testing.T) {
	catalog := newCatalog()
	page := addTestPage(t, catalog, "docs", "1.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	site := compose.SiteUIModel{DefaultLayout: "default"}
	composer := compose.New(site, catalog, nav.NewCatalog())
	model, err := composer(page, fakeParser{doc: fakeDoc{title: "Intro"}})
	require.NoError(t, err)

	require.Len(t, model.Breadcrumbs, 1)
	assert.Equal(t, "Intro", model.Breadcrumbs[0].Content)
}

func TestComposePageBreadcrumbsFollowsNavigationChain(t *testing.T) {
	catalog := newCatalog()
	page := addTestPage(t, catalog, "docs", "1.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))

	navCatalog := nav.NewCatalog()
	leaf := &nav.Tree{Content: "Intro", URL: page.Pub.URL, URLType: "internal"}
	root := &nav.Tree{Content: "Guides", Root: true, Items: []*nav.Tree{leaf}}
	navCatalog.AddTree("docs", "1.0", root)

	site := compose.SiteUIModel{DefaultLayout: "default"}
	composer := compose.New(site, catalog, navCatalog)
	model, err := composer(page, fakeParser{doc: fakeDoc{title: "Intro"}})
	require.NoError(t, err)

	require.Len(t, model.Breadcrumbs, 2)
	assert.Equal(t, "Guides", model.Breadcrumbs[0].Content)
	assert.Equal(t, "Intro", model.Breadcrumbs[1].Content)
}

func TestComposePageCanonicalURLUsesLatestVersion(t *testing.T) {
	catalog := newCatalog()
	require.NoError(t, catalog.AddComponentVersion("docs", "2.0", "Docs", ""))
	latest := addTestPage(t, catalog, "docs", "2.0", "ROOT", "intro.adoc")
	require.NoError(t, catalog.AddComponentVersion("docs", "1.0", "Docs", ""))
	old := addTestPage(t, catalog, "docs", "1.0", "ROOT", "intro.adoc")

	site := compose.SiteUIModel{URL: "https://docs.example.com", DefaultLayout: "default"}
	composer := compose.New(site, catalog, nav.NewCatalog())
	model, err := composer(old, fakeParser{doc: fakeDoc{title: "Intro"}})
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com"+latest.Pub.URL, model.CanonicalURL)
}
