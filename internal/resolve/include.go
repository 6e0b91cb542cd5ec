package resolve

import (
	"path"
	"strings"

	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/markup"
)

// Proxy prefixes an include target can carry in place of a physical path,
// naming a family directly rather than a path relative to the including
// file. Neither prefix is defined anywhere upstream of this resolver; these
// spellings follow the "$"-suffixed proxy convention documentation sites in
// this space use for the same purpose, adapted to this resolver's
// prefix-followed-by-"/" rule (see DESIGN.md).
const (
	partialProxyPrefix = "partial$"
	exampleProxyPrefix = "example$"
)

// NewIncludeResolver builds a markup.ResolveInclude bound to origin, the
// file whose markup is being rendered. cursor, supplied per call, is the
// posix path of the file actually doing the including (which may be a
// partial nested several includes deep, not origin itself).
func NewIncludeResolver(catalog *content.Catalog, origin *content.File) markup.ResolveInclude {
	return func(target, cursor string) markup.IncludeResult {
		if fam, remainder, ok := proxyTarget(target); ok {
			f, found := catalog.GetByID(fam, origin.Src.Version, origin.Src.Component, origin.Src.Module, remainder)
			if !found {
				return unresolvedInclude(target)
			}
			return resolvedInclude(f)
		}

		physicalPath := path.Join(path.Dir(cursor), target)
		f, found := catalog.GetByPath(origin.Src.Component, origin.Src.Version, physicalPath)
		if !found {
			return unresolvedInclude(target)
		}
		return resolvedInclude(f)
	}
}

func proxyTarget(target string) (family.Family, string, bool) {
	switch {
	case strings.HasPrefix(target, partialProxyPrefix+"/"):
		return family.Partial, strings.TrimPrefix(target, partialProxyPrefix+"/"), true
	case strings.HasPrefix(target, exampleProxyPrefix+"/"):
		return family.Example, strings.TrimPrefix(target, exampleProxyPrefix+"/"), true
	default:
		return "", "", false
	}
}

func resolvedInclude(f *content.File) markup.IncludeResult {
	return markup.IncludeResult{Contents: string(f.Contents), Path: f.Path}
}

func unresolvedInclude(target string) markup.IncludeResult {
	return markup.IncludeResult{Path: target, Unresolved: true}
}
