package gitsource

import "github.com/dionysius/docweave/internal/content"

// Bundle is one component version's materialized, not-yet-classified
// output: every raw file discovered under the descriptor's walked root,
// plus the descriptor fields content.Classify and the catalog need.
type Bundle struct {
	Name      string
	Version   string
	Title     string
	StartPage string
	Nav       []string // descriptor-declared nav file paths, walk-relative
	Files     []content.RawFile
}

// key identifies a bundle for the "{version}@{name}" grouping step.
func (b Bundle) key() string {
	return b.Version + "@" + b.Name
}

// mergeBundles flattens and groups bundles by (name, version): scalar
// fields take the last non-empty value (an empty title, start page, or nav
// list never overwrites an earlier one), file lists concatenate in
// encounter order.
func mergeBundles(bundles []Bundle) []Bundle {
	order := make([]string, 0, len(bundles))
	byKey := make(map[string]*Bundle, len(bundles))

	for i := range bundles {
		b := bundles[i]
		existing, ok := byKey[b.key()]
		if !ok {
			copyB := b
			byKey[b.key()] = &copyB
			order = append(order, b.key())
			continue
		}
		existing.Name = b.Name
		existing.Version = b.Version
		if b.Title != "" {
			existing.Title = b.Title
		}
		if b.StartPage != "" {
			existing.StartPage = b.StartPage
		}
		if len(b.Nav) > 0 {
			existing.Nav = b.Nav
		}
		existing.Files = append(existing.Files, b.Files...)
	}

	merged := make([]Bundle, 0, len(order))
	for _, k := range order {
		merged = append(merged, *byKey[k])
	}
	return merged
}
