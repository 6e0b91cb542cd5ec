// Package compose assembles the per-page and site-wide view models a
// layout.Renderer consumes: SiteUIModel (computed once per run) and
// PageUIModel (computed once per page).
package compose

import (
	"errors"
	"sort"
	"strings"

	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/playbook"
)

// ErrLayoutNotFound is returned when a page sets no page-layout attribute
// and the site has no default layout. A layout name a page does set is used
// as given; it is not checked against any set of known layouts.
var ErrLayoutNotFound = errors.New("layout not found")

// ComponentSummary is one entry of SiteUIModel.Components, sorted
// alphabetically by title for template iteration.
type ComponentSummary struct {
	Name  string
	Title string
	URL   string
}

// SiteUIModel is the run-wide model, computed once from the playbook and
// catalog and shared across every page's composition.
type SiteUIModel struct {
	Title         string
	URL           string // normalized: no trailing slash, "" if unset
	StartPageURL  string
	Components    []ComponentSummary
	UIOutputURL   string
	DefaultLayout string
}

// NewSiteUIModel precomputes the run-wide model from pb and catalog.
func NewSiteUIModel(pb playbook.Playbook, catalog *content.Catalog) (SiteUIModel, error) {
	startPage, err := catalog.GetSiteStartPage(pb.Site.StartPage)
	if err != nil {
		return SiteUIModel{}, err
	}

	var startPageURL string
	if startPage != nil && startPage.Pub != nil {
		startPageURL = startPage.Pub.URL
	}

	comps := catalog.Components()
	summaries := make([]ComponentSummary, 0, len(comps))
	for _, c := range comps {
		summaries = append(summaries, ComponentSummary{Name: c.Name, Title: c.Title, URL: c.URL})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Title < summaries[j].Title })

	return SiteUIModel{
		Title:         pb.Site.Title,
		URL:           strings.TrimSuffix(pb.Site.URL, "/"),
		StartPageURL:  startPageURL,
		Components:    summaries,
		UIOutputURL:   strings.TrimSuffix(pb.UI.OutputDir, "/"),
		DefaultLayout: pb.UI.DefaultLayout,
	}, nil
}
