// Package siteurl computes a content file's output path and public URL from
// its classified location, independent of how that file was ingested. The
// two entry points, ComputeOut and ComputePub, are pure functions: same
// input, same result, no I/O.
package siteurl

import (
	"strings"

	"github.com/dionysius/docweave/internal/family"
)

// ExtensionStyle controls how page URLs render their trailing extension.
type ExtensionStyle string

const (
	StyleDefault  ExtensionStyle = "default"
	StyleDrop     ExtensionStyle = "drop"
	StyleIndexify ExtensionStyle = "indexify"
)

// sourceMarkupMediaType is the MIME type the classifier assigns to page,
// partial, and example files so computeOut knows to swap their extension
// for ".html" instead of keeping the source suffix.
const sourceMarkupMediaType = "text/asciidoc"

// Locator carries the subset of a classified file's identity that URL
// computation needs: where it sits in the component/version/module
// hierarchy, which family it was assigned, and its name within that
// family's directory tree.
type Locator struct {
	Component string
	Version   string
	Module    string
	Family    family.Family
	Relative  string // family-relative path, e.g. "topic/page.adoc"
	Basename  string
	Stem      string
	MediaType string
}

// Out is a file's location in the generated output tree.
type Out struct {
	Dirname        string
	Basename       string
	Path           string
	ModuleRootPath string
	RootPath       string
}

// Pub is a file's public-facing URL and the relative paths used to reach
// the module root and site root from it.
type Pub struct {
	URL            string
	ModuleRootPath string
	RootPath       string
}

// ComputeOut computes where src lands in the output tree. It is only
// meaningful for publishable families (page, image, attachment); callers
// must not call it for navigation or alias files.
func ComputeOut(src Locator, style ExtensionStyle) Out {
	modulePath := joinSegments(elideDefault(src.Component, ""), elideDefault(src.Version, "master"), elideDefault(src.Module, "ROOT"))

	basename := src.Basename
	if src.MediaType == sourceMarkupMediaType {
		basename = src.Stem + ".html"
	}

	indexifySegment := ""
	if src.Family == family.Page && style == StyleIndexify && src.Stem != "index" {
		indexifySegment = src.Stem
		basename = "index.html"
	}

	familySegment := ""
	switch src.Family {
	case family.Image:
		familySegment = "_images"
	case family.Attachment:
		familySegment = "_attachments"
	}

	dirname := joinSegments(modulePath, familySegment, dirOf(src.Relative), indexifySegment)
	p := joinSegments(dirname, basename)

	return Out{
		Dirname:        dirname,
		Basename:       basename,
		Path:           p,
		ModuleRootPath: posixRel(dirname, modulePath),
		RootPath:       posixRel(dirname, ""),
	}
}

// ComputePub computes a file's public URL. For navigation files, pass a nil
// out; ComputePub synthesizes the component/version/module index URL
// directly from src instead of from an output path.
func ComputePub(src Locator, out *Out, style ExtensionStyle) Pub {
	if src.Family == family.Navigation {
		modulePath := joinSegments(elideDefault(src.Component, ""), elideDefault(src.Version, "master"), elideDefault(src.Module, "ROOT"))
		url := "/" + modulePath
		if url != "/" {
			url += "/"
		}
		return Pub{
			URL:            url,
			ModuleRootPath: ".",
			RootPath:       posixRel(modulePath, ""),
		}
	}

	if src.Family != family.Page {
		return Pub{
			URL:            "/" + out.Path,
			ModuleRootPath: out.ModuleRootPath,
			RootPath:       out.RootPath,
		}
	}

	segments := strings.Split(out.Path, "/")
	last := segments[len(segments)-1]

	switch style {
	case StyleDrop:
		if last == "index.html" {
			segments[len(segments)-1] = ""
		} else {
			segments[len(segments)-1] = strings.TrimSuffix(last, ".html")
		}
	case StyleIndexify:
		// ComputeOut already pushed the stem out as a directory segment and
		// named the file index.html; drop it here to leave a trailing slash.
		segments[len(segments)-1] = ""
	}

	url := "/" + strings.Join(segments, "/")

	return Pub{
		URL:            url,
		ModuleRootPath: out.ModuleRootPath,
		RootPath:       out.RootPath,
	}
}

// elideDefault returns "" when v equals its family's default value
// ("master" for version, "ROOT" for module), so the segment is omitted from
// the computed path entirely rather than rendered literally.
func elideDefault(v, def string) string {
	if v == def {
		return ""
	}
	return v
}

// dirOf returns the directory portion of a relative path using "/" as
// conventional separator regardless of host OS, without the trailing
// "." filepath.Dir would otherwise produce for a root-level file.
func dirOf(relative string) string {
	idx := strings.LastIndex(relative, "/")
	if idx < 0 {
		return ""
	}
	return relative[:idx]
}

// joinSegments joins non-empty, non-"." path segments with "/", discarding
// any leading/trailing slashes a caller-supplied segment might carry.
func joinSegments(segments ...string) string {
	var parts []string
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" || s == "." {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "/")
}

// posixRel returns the relative path from base to target, expressed as a
// chain of ".." segments followed by whatever of target falls outside
// base's common prefix, or "." when base and target coincide.
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
