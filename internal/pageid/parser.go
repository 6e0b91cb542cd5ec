// Package pageid parses contextual page identifiers of the form
// "[version@][[component:][module:]]relative[.ext]" into a 5-tuple ready
// for catalog lookup.
package pageid

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalidPageID is returned when a spec does not match the page ID
// grammar, e.g. it has no relative path segment or too many ":" segments.
var ErrInvalidPageID = errors.New("invalid page id")

// sourceExtension is the markup source extension every page resolves to,
// regardless of what extension (if any) the caller's spec carried.
const sourceExtension = ".adoc"

// Context supplies the fallback component/version/module used when a spec
// omits them.
type Context struct {
	Component string
	Version   string
	Module    string
}

// ID is the parsed 5-tuple. Family is always "page" for a PageID.
type ID struct {
	Component string
	Version   string
	Module    string
	Family    string
	Relative  string
}

// Parse parses spec against ctx per the page ID grammar. version may come
// back empty, meaning the caller should resolve against the component's
// latest version.
func Parse(spec string, ctx Context) (ID, error) {
	work := spec

	var version string
	versionParsed := false
	if idx := strings.Index(work, "@"); idx >= 0 {
		version = work[:idx]
		work = work[idx+1:]
		versionParsed = true
	}

	segments := strings.Split(work, ":")

	var component, module, relative string
	componentParsed := false
	moduleParsed := false

	switch len(segments) {
	case 1:
		relative = segments[0]
	case 2:
		component = segments[0]
		relative = segments[1]
		componentParsed = true
	case 3:
		component = segments[0]
		module = segments[1]
		relative = segments[2]
		componentParsed = true
		moduleParsed = module != ""
	default:
		return ID{}, ErrInvalidPageID
	}

	if relative == "" {
		return ID{}, ErrInvalidPageID
	}

	if !versionParsed {
		version = ctx.Version
	}
	if !componentParsed {
		component = ctx.Component
	}
	if !moduleParsed {
		if componentParsed {
			module = "ROOT"
		} else {
			module = ctx.Module
		}
	}

	relative = normalizeRelative(relative)

	return ID{
		Component: component,
		Version:   version,
		Module:    module,
		Family:    "page",
		Relative:  relative,
	}, nil
}

// normalizeRelative strips any extension the spec's relative path carried
// and re-suffixes it with the page source extension.
func normalizeRelative(relative string) string {
	ext := path.Ext(relative)
	if ext != "" {
		relative = strings.TrimSuffix(relative, ext)
	}
	return relative + sourceExtension
}

// Format reconstructs the canonical "version@component:module:relative"
// form of an ID, for logging and round-trip tests. Empty fields are
// rendered as empty segments, not omitted; note that Parse reads an empty
// module segment back as "ROOT".
func Format(id ID) string {
	return id.Version + "@" + id.Component + ":" + id.Module + ":" + id.Relative
}
