// Package playbook holds the Playbook input record and a thin YAML-backed
// loader that applies defaults. The loader's validation is intentionally
// shallow: the Playbook is treated as an opaque, externally-produced input
// by the rest of the pipeline, so this package's job is just to get a
// well-formed value in hand, not to police authoring mistakes.
package playbook

import "github.com/dionysius/docweave/internal/siteurl"

// Patterns is a ref-matching pattern list accepted from YAML as either a
// comma-separated string, a sequence of strings, or the bare literal
// "HEAD"/"." meaning "the repo's current branch".
type Patterns []string

// Source is one content source contributing component versions.
type Source struct {
	URL       string   `yaml:"url"`
	Branches  Patterns `yaml:"branches"`
	Tags      Patterns `yaml:"tags"`
	StartPath string   `yaml:"start_path"`
}

// Site carries the site-wide metadata and identity settings.
type Site struct {
	Title     string            `yaml:"title"`
	URL       string            `yaml:"url"`
	StartPage string            `yaml:"start_page"`
	Keys      map[string]string `yaml:"keys"`
}

// URLs carries the extension-style policy.
type URLs struct {
	HTMLExtensionStyle siteurl.ExtensionStyle `yaml:"html_extension_style"`
}

// Content carries the content sources and the default ref-matching
// patterns applied when a Source doesn't set its own.
type Content struct {
	Sources  []Source `yaml:"sources"`
	Branches Patterns `yaml:"branches"`
	Tags     Patterns `yaml:"tags"`
}

// Runtime carries the pipeline's operational knobs, including the
// runtime.quiet/runtime.silent flags the log handler honors.
type Runtime struct {
	CacheDir string `yaml:"cache_dir"`
	Pull     bool   `yaml:"pull"`
	Quiet    bool   `yaml:"quiet"`
	Silent   bool   `yaml:"silent"`
}

// UI carries the output directory and default layout name.
type UI struct {
	OutputDir     string `yaml:"output_dir"`
	DefaultLayout string `yaml:"default_layout"`
}

// AsciiDoc carries markup-processor configuration passed through
// opaquely to whatever markup.Parser a caller wires up.
type AsciiDoc struct {
	Attributes map[string]string `yaml:"attributes"`
	Extensions []string          `yaml:"extensions"`
}

// Playbook is the immutable input record driving a pipeline run. It is
// built once by Load and never mutated afterward; callers that need a
// variant build a new one.
type Playbook struct {
	Dir      string `yaml:"-"`
	Site     Site     `yaml:"site"`
	URLs     URLs     `yaml:"urls"`
	Content  Content  `yaml:"content"`
	Runtime  Runtime  `yaml:"runtime"`
	UI       UI       `yaml:"ui"`
	AsciiDoc AsciiDoc `yaml:"asciidoc"`

	// DescriptorFilename is the component descriptor's literal filename,
	// defaulting to "antora.yml" per the external interface contract, but
	// left project-definable since some sources may use a different name.
	DescriptorFilename string `yaml:"descriptor_filename"`
}
