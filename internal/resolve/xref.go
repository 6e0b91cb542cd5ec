package resolve

import (
	"strings"

	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/markup"
	"github.com/dionysius/docweave/internal/pageid"
)

// NewXrefResolver builds a markup.ResolvePageRef bound to originating, the
// page whose markup is being rendered; it is the vantage point relativize
// computes hrefs from.
func NewXrefResolver(catalog *content.Catalog, originating *content.File) markup.ResolvePageRef {
	ctx := pageid.Context{
		Component: originating.Src.Component,
		Version:   originating.Src.Version,
		Module:    originating.Src.Module,
	}

	return func(refSpec, linkText string, relativize bool) markup.PageRefResult {
		spec, fragment := splitFragment(refSpec)

		target, err := Page(catalog, spec, ctx)
		if err != nil || target == nil {
			return unresolvedRef(refSpec, linkText)
		}
		if target.Src.Family == family.Alias && target.Rel != nil {
			target = target.Rel
		}
		if target.Pub == nil {
			return unresolvedRef(refSpec, linkText)
		}

		href := target.Pub.URL
		if relativize && originating.Out != nil {
			href = relativeHref(originating.Out.Dirname, target.Pub.URL)
		}
		href += fragment

		text := linkText
		if text == "" {
			text = target.Src.Stem
		}

		return markup.PageRefResult{Href: href, Text: text, Role: "page"}
	}
}

func unresolvedRef(refSpec, linkText string) markup.PageRefResult {
	text := linkText
	if text == "" {
		text = refSpec
	}
	return markup.PageRefResult{Text: text, Unresolved: true}
}

// splitFragment splits refSpec into its page-ID portion and a trailing
// "#fragment" (empty if none), so the fragment can be reattached to
// whatever href the page ID resolves to.
func splitFragment(refSpec string) (spec, fragment string) {
	if idx := strings.IndexByte(refSpec, '#'); idx >= 0 {
		return refSpec[:idx], refSpec[idx:]
	}
	return refSpec, ""
}

// relativeHref computes the path from fromDir (an out.dirname) to a
// site-absolute target URL, as a chain of ".." segments followed by
// whatever of the target falls outside fromDir's common prefix.
func relativeHref(fromDir, targetURL string) string {
	return posixRel(fromDir, strings.TrimPrefix(targetURL, "/"))
}

func posixRel(base, target string) string {
	baseSegs := splitSegments(base)
	targetSegs := splitSegments(target)

	i := 0
	for i < len(baseSegs) && i < len(targetSegs) && baseSegs[i] == targetSegs[i] {
		i++
	}

	up := len(baseSegs) - i
	var parts []string
	for k := 0; k < up; k++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetSegs[i:]...)

	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
