// Package nav builds per-component-version navigation menus from the
// navigation-family files in a content catalog, by asking a markup.Parser
// to parse each one and walking its top-level list blocks.
package nav

// Tree is one navigation entry: a root list or one of its nested items.
// Roots and items share this shape since both can carry a URL and
// children.
type Tree struct {
	Content string
	Items   []*Tree
	URL     string
	URLType string // "internal", "fragment", "external", or "" for a plain label
	Hash    string
	Root    bool
	Order   float64
}
