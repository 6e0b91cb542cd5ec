// Package resolve implements the three lookups the markup layer calls back
// into while rendering a page: resolving a page ID to a catalog file,
// resolving an include target to its contents, and resolving an inline
// cross-reference to a link.
package resolve

import (
	"fmt"

	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/pageid"
)

// Page parses spec against ctx and looks it up in catalog, defaulting an
// unset version to the component's latest. It returns (nil, nil) when the
// component or file is simply not found; an error only for a malformed
// spec. The returned file may be a page or an alias — callers decide
// whether to dereference.
func Page(catalog *content.Catalog, spec string, ctx pageid.Context) (*content.File, error) {
	id, err := pageid.Parse(spec, ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec, pageid.ErrInvalidPageID)
	}

	if id.Version == "" {
		comp, ok := catalog.GetComponent(id.Component)
		if !ok {
			return nil, nil
		}
		id.Version = comp.LatestVersion().Version
	}

	if f, ok := catalog.GetByID(family.Page, id.Version, id.Component, id.Module, id.Relative); ok {
		return f, nil
	}
	if f, ok := catalog.GetByID(family.Alias, id.Version, id.Component, id.Module, id.Relative); ok {
		return f, nil
	}
	return nil, nil
}
