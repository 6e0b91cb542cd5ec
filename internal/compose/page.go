package compose

import (
	"fmt"
	"strings"

	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/markup"
	"github.com/dionysius/docweave/internal/nav"
	"github.com/dionysius/docweave/internal/resolve"
)

// PageVersion is one entry of PageUIModel.Versions: this page as it exists
// (or doesn't) in one other version of its component.
type PageVersion struct {
	Version string
	URL     string
	Missing bool
}

// Breadcrumb is one link in a page's ancestor chain through its
// component version's navigation menu.
type Breadcrumb struct {
	Content string
	URL     string
}

// PageUIModel is everything a layout.Renderer needs to render one page.
type PageUIModel struct {
	Layout       string
	Title        string
	Attributes   map[string]string
	Versions     []PageVersion
	Navigation   []*nav.Tree
	Breadcrumbs  []Breadcrumb
	CanonicalURL string
	Home         bool
}

// Composer builds a PageUIModel for one page file, parsing its contents
// with parser and resolving its includes/cross-references against the
// catalog the Composer was built from.
type Composer func(page *content.File, parser markup.Parser) (PageUIModel, error)

// New returns a Composer bound to site, catalog, and navCatalog.
func New(site SiteUIModel, catalog *content.Catalog, navCatalog *nav.Catalog) Composer {
	return func(page *content.File, parser markup.Parser) (PageUIModel, error) {
		return composePage(site, catalog, navCatalog, page, parser)
	}
}

// notFoundStem is the well-known stem an error page uses; a page carrying
// it with no component bypasses the normal model entirely.
const notFoundStem = "404"

func composePage(site SiteUIModel, catalog *content.Catalog, navCatalog *nav.Catalog, page *content.File, parser markup.Parser) (PageUIModel, error) {
	if page.Src.Component == "" && page.Src.Stem == notFoundStem {
		return PageUIModel{Layout: notFoundStem}, nil
	}

	resolveInclude := resolve.NewIncludeResolver(catalog, page)
	resolvePageRef := resolve.NewXrefResolver(catalog, page)
	doc, err := parser.Parse(page.Contents, resolveInclude, resolvePageRef)
	if err != nil {
		return PageUIModel{}, fmt.Errorf("%s: %w", page.Path, err)
	}

	layoutName, ok := resolveLayout(doc, site)
	if !ok {
		return PageUIModel{}, fmt.Errorf("%s: %w", page.Pub.URL, ErrLayoutNotFound)
	}

	versions := getPageVersions(catalog, page)
	menu := navCatalog.GetMenu(page.Src.Component, page.Src.Version)

	model := PageUIModel{
		Layout:      layoutName,
		Title:       doc.Title(),
		Attributes:  pageAttributes(doc),
		Versions:    versions,
		Navigation:  menu,
		Breadcrumbs: findBreadcrumbs(menu, page.Pub.URL, doc.Title()),
		Home:        site.StartPageURL != "" && page.Pub.URL == site.StartPageURL,
	}

	if site.URL != "" {
		target := page.Pub.URL
		if len(versions) > 0 {
			target = versions[0].URL
		}
		model.CanonicalURL = site.URL + target
	}

	return model, nil
}

// resolveLayout picks doc's page-layout attribute, falling back to the
// site default; ok is false when neither is set.
func resolveLayout(doc markup.Document, site SiteUIModel) (string, bool) {
	if v := doc.Attributes()["page-layout"]; v != "" {
		return v, true
	}
	if site.DefaultLayout != "" {
		return site.DefaultLayout, true
	}
	return "", false
}

func pageAttributes(doc markup.Document) map[string]string {
	out := make(map[string]string)
	for k, v := range doc.Attributes() {
		if trimmed, ok := strings.CutPrefix(k, "page-"); ok {
			out[trimmed] = v
		}
	}
	return out
}

// getPageVersions scans catalog for this page's (component, module,
// family=page, relative) across every version of its component. Versions
// missing the page entirely are still represented (sparse mode), falling
// back to that version's own start-page URL, so a version switcher always
// has something to link to.
func getPageVersions(catalog *content.Catalog, page *content.File) []PageVersion {
	comp, ok := catalog.GetComponent(page.Src.Component)
	if !ok || len(comp.Versions) <= 1 {
		return nil
	}

	pageFamily := family.Page
	module := page.Src.Module
	relative := page.Src.Relative
	matches := catalog.FindBy(content.FindCriteria{
		Component: &page.Src.Component,
		Module:    &module,
		Family:    &pageFamily,
		Relative:  &relative,
	})

	byVersion := make(map[string]*content.File, len(matches))
	for _, f := range matches {
		byVersion[f.Src.Version] = f
	}

	versions := make([]PageVersion, 0, len(comp.Versions))
	for _, v := range comp.Versions {
		if f, ok := byVersion[v.Version]; ok && f.Pub != nil {
			versions = append(versions, PageVersion{Version: v.Version, URL: f.Pub.URL})
			continue
		}
		versions = append(versions, PageVersion{Version: v.Version, URL: v.URL, Missing: true})
	}
	return versions
}

// findBreadcrumbs walks menu depth-first looking for the item whose
// internal url matches pageURL, returning the chain of ancestors down to
// it. With no match, a page with a title gets a single discrete crumb
// built from that title instead.
func findBreadcrumbs(menu []*nav.Tree, pageURL, title string) []Breadcrumb {
	for _, root := range menu {
		if chain := breadcrumbDFS(root, pageURL, nil); chain != nil {
			return chain
		}
	}
	if title != "" {
		return []Breadcrumb{{Content: title}}
	}
	return nil
}

func breadcrumbDFS(node *nav.Tree, pageURL string, ancestors []Breadcrumb) []Breadcrumb {
	path := append(append([]Breadcrumb{}, ancestors...), Breadcrumb{Content: node.Content, URL: node.URL})

	if node.URLType == "internal" && node.URL == pageURL {
		return path
	}
	for _, child := range node.Items {
		if found := breadcrumbDFS(child, pageURL, path); found != nil {
			return found
		}
	}
	return nil
}
