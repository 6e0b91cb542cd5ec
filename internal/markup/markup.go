// Package markup declares the narrow collaborator interfaces the
// navigation builder, resolvers, and page composer depend on, without
// owning a concrete AsciiDoc implementation. A caller wires a real parser
// in; this package only describes the shape it must have.
package markup

// Parser converts AsciiDoc source into a parsed Document, invoking
// resolveInclude for each include directive and resolvePageRef for each
// inline cross-reference it encounters while rendering.
type Parser interface {
	Parse(source []byte, resolveInclude ResolveInclude, resolvePageRef ResolvePageRef) (Document, error)
}

// Document is a parsed AsciiDoc source file.
type Document interface {
	// Title returns the document's top-level title, or "" if unset.
	Title() string
	// Attributes returns every document attribute, keyed by name.
	Attributes() map[string]string
	// Blocks returns the document's top-level blocks in source order.
	Blocks() []Block
}

// Block is one top-level block of a parsed document, e.g. an unordered
// list that the navigation builder walks.
type Block interface {
	Kind() string
	Title() string
	Items() []ListItem
}

// ListItem is one entry of a list block, recursively nested.
type ListItem interface {
	// Content returns the item's rendered inline content, including any
	// anchor markup the parser attached for internal page references.
	Content() string
	// Items returns a nested sublist, or nil if this item has none.
	Items() []ListItem
}

// ResolveInclude is invoked by the parser for each include directive it
// encounters. cursor is the posix path of the file doing the including.
type ResolveInclude func(target, cursor string) IncludeResult

// IncludeResult is what an include directive resolves to.
type IncludeResult struct {
	Contents   string
	Path       string
	Unresolved bool
}

// ResolvePageRef is invoked by the parser for each inline cross-reference.
// relativize controls whether the returned Href is computed relative to
// the originating page or left as an absolute site URL.
type ResolvePageRef func(refSpec, linkText string, relativize bool) PageRefResult

// PageRefResult is what a cross-reference resolves to.
type PageRefResult struct {
	Href       string
	Text       string
	Role       string // "page" for a resolved internal reference
	Unresolved bool
}
