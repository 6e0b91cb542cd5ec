package content

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/dionysius/docweave/internal/family"
)

// RawFile is a single walked entry handed to Classify by the aggregator,
// before family assignment. Path is relative to the component version's
// walked root (the source's startPath), posix-separated.
type RawFile struct {
	Path      string
	Contents  []byte
	Component string
	Version   string
	Origin    Origin
}

// Classify assigns a family and relative path to raw by path convention,
// consulting navSpecs (the descriptor's nav[] list, as declared, keyed by
// the exact walked path) to recognize navigation files. It returns
// ok=false for files matching no convention; callers discard those.
func Classify(raw RawFile, navSpecs map[string]bool) (Src, bool) {
	module, rest, hasModule := splitModule(raw.Path)

	if navSpecs[raw.Path] {
		relative, mod := raw.Path, "ROOT"
		if hasModule {
			relative, mod = rest, module
		}
		return buildSrc(raw, mod, family.Navigation, relative), true
	}

	if !hasModule {
		return Src{}, false
	}

	switch {
	case strings.HasPrefix(rest, "pages/_partials/"):
		return buildSrc(raw, module, family.Partial, strings.TrimPrefix(rest, "pages/_partials/")), true
	case strings.HasPrefix(rest, "pages/") && path.Ext(rest) == ".adoc":
		return buildSrc(raw, module, family.Page, strings.TrimPrefix(rest, "pages/")), true
	case strings.HasPrefix(rest, "assets/images/"):
		return buildSrc(raw, module, family.Image, strings.TrimPrefix(rest, "assets/images/")), true
	case strings.HasPrefix(rest, "assets/attachments/"):
		return buildSrc(raw, module, family.Attachment, strings.TrimPrefix(rest, "assets/attachments/")), true
	case strings.HasPrefix(rest, "examples/"):
		return buildSrc(raw, module, family.Example, strings.TrimPrefix(rest, "examples/")), true
	default:
		return Src{}, false
	}
}

// splitModule splits a walked path of the form "modules/<module>/..." into
// its module name and the remainder; ok is false for paths outside any
// module directory.
func splitModule(p string) (module, rest string, ok bool) {
	segments := strings.Split(p, "/")
	if len(segments) < 2 || segments[0] != "modules" {
		return "", "", false
	}
	return segments[1], strings.Join(segments[2:], "/"), true
}

func buildSrc(raw RawFile, module string, fam family.Family, relative string) Src {
	basename := path.Base(relative)
	ext := path.Ext(basename)
	stem := strings.TrimSuffix(basename, ext)

	var editURL string
	if raw.Origin.EditURLPattern != "" {
		editURL = fmt.Sprintf(raw.Origin.EditURLPattern, raw.Path)
	}

	return Src{
		Component: raw.Component,
		Version:   raw.Version,
		Module:    module,
		Family:    fam,
		Relative:  relative,
		Basename:  basename,
		Stem:      stem,
		Extname:   ext,
		MediaType: mediaType(fam, ext),
		Origin:    raw.Origin,
		EditURL:   editURL,
	}
}

// mediaType guesses a file's MIME type: a page, partial, or example with
// the ".adoc" extension reports the page source type; everything else
// (including those families with another extension) defers to the standard
// extension table with a generic fallback.
func mediaType(fam family.Family, ext string) string {
	if fam == family.Page || fam == family.Partial || fam == family.Example {
		if ext == ".adoc" {
			return "text/asciidoc"
		}
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
