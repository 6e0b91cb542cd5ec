// Package content holds the classified virtual filesystem produced from an
// aggregated set of component versions: file identity, output path and
// publish URL, and the per-component version index built over them.
package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/pageid"
	"github.com/dionysius/docweave/internal/siteurl"
	"github.com/dionysius/docweave/internal/version"
)

var (
	ErrDuplicateFile    = errors.New("duplicate file")
	ErrStartPageMissing = errors.New("start page missing")
	ErrDuplicateVersion = errors.New("duplicate component version")
	ErrAliasConflict    = errors.New("alias conflict")
)

// Origin describes the git source a File was materialized from.
type Origin struct {
	Type           string
	URL            string
	StartPath      string
	Branch         string
	Tag            string
	Worktree       bool
	EditURLPattern string
}

// Src is a file's classified identity, fixed once addFile accepts it.
type Src struct {
	Component string
	Version   string
	Module    string
	Family    family.Family
	Relative  string
	Basename  string
	Stem      string
	Extname   string
	MediaType string
	Origin    Origin
	EditURL   string
}

// Out is a file's location in the generated output tree.
type Out = siteurl.Out

// Pub is a file's published URL. CanonicalURL is left empty by the catalog
// and by the composer, which reports its canonical URL on
// compose.PageUIModel instead.
type Pub struct {
	URL            string
	ModuleRootPath string
	RootPath       string
	CanonicalURL   string
}

// File is a single catalog entry.
type File struct {
	Path     string
	Contents []byte
	Src      Src
	Out      *Out
	Pub      *Pub
	Rel      *File // alias target; nil for non-alias files
}

// VersionEntry is one element of a Component's Versions list.
type VersionEntry struct {
	Title   string
	Version string
	URL     string
}

// Component groups every version of a documentation project under one name.
type Component struct {
	Name     string
	Title    string
	URL      string
	Versions []VersionEntry // kept sorted newest-first
}

// LatestVersion returns the newest version entry. Callers must not call
// this on a Component with no versions; addComponentVersion never leaves
// one in that state.
func (c *Component) LatestVersion() VersionEntry {
	return c.Versions[0]
}

type identityKey struct {
	family    family.Family
	version   string
	component string
	module    string
	relative  string
}

func identityOf(src Src) identityKey {
	return identityKey{family: src.Family, version: src.Version, component: src.Component, module: src.Module, relative: src.Relative}
}

func formatIdentity(src Src) string {
	return fmt.Sprintf("$%s/%s@%s:%s:%s", src.Family, src.Version, src.Component, src.Module, src.Relative)
}

// Catalog is the process-wide, built-once index of classified files and
// components. It is built serially by a single reducer over the
// aggregator's output, so no internal locking is needed; once built it is
// treated as read-only by every downstream stage.
type Catalog struct {
	components     map[string]*Component
	files          map[identityKey]*File
	extensionStyle siteurl.ExtensionStyle
}

// NewCatalog creates an empty catalog that computes out/pub using style.
func NewCatalog(style siteurl.ExtensionStyle) *Catalog {
	return &Catalog{
		components:     make(map[string]*Component),
		files:          make(map[identityKey]*File),
		extensionStyle: style,
	}
}

// AddFile inserts file, computing its Out (for publishable non-alias
// families) and Pub (for publishable or navigation families) along the way.
func (c *Catalog) AddFile(file *File) error {
	key := identityOf(file.Src)
	if _, exists := c.files[key]; exists {
		return fmt.Errorf("%s: %w", formatIdentity(file.Src), ErrDuplicateFile)
	}

	actingFamily := file.Src.Family
	actingMediaType := file.Src.MediaType
	if file.Src.Family == family.Alias && file.Rel != nil {
		actingFamily = file.Rel.Src.Family
		actingMediaType = file.Rel.Src.MediaType
	}

	publishable := actingFamily.Publishable() && !hasUnderscoreSegment(file.Src.Relative)

	loc := siteurl.Locator{
		Component: file.Src.Component,
		Version:   file.Src.Version,
		Module:    file.Src.Module,
		Family:    actingFamily,
		Relative:  file.Src.Relative,
		Basename:  file.Src.Basename,
		Stem:      file.Src.Stem,
		MediaType: actingMediaType,
	}

	var out *siteurl.Out
	if publishable {
		o := siteurl.ComputeOut(loc, c.extensionStyle)
		out = &o
		if file.Src.Family != family.Alias {
			file.Out = &o
		}
	}

	if publishable || file.Src.Family == family.Navigation {
		p := siteurl.ComputePub(loc, out, c.extensionStyle)
		file.Pub = &Pub{URL: p.URL, ModuleRootPath: p.ModuleRootPath, RootPath: p.RootPath}
	}

	c.files[key] = file
	return nil
}

// AddComponentVersion registers a (name, version) under the catalog,
// resolving its start page (defaulting to index.adoc when startPageSpec is
// empty) and inserting the version in descending VersionCompare order.
func (c *Catalog) AddComponentVersion(name, ver, title, startPageSpec string) error {
	comp, ok := c.components[name]
	if !ok {
		comp = &Component{Name: name}
	}
	for _, v := range comp.Versions {
		if v.Version == ver {
			return fmt.Errorf("%s@%s: %w", name, ver, ErrDuplicateVersion)
		}
	}

	startURL, err := c.resolveStartPageURL(name, ver, startPageSpec)
	if err != nil {
		return err
	}

	c.components[name] = comp
	comp.Versions = append(comp.Versions, VersionEntry{Title: title, Version: ver, URL: startURL})
	sort.Slice(comp.Versions, func(i, j int) bool {
		return version.Compare(comp.Versions[i].Version, comp.Versions[j].Version) < 0
	})
	if comp.Versions[0].Version == ver {
		comp.Title = title
		comp.URL = startURL
	}
	return nil
}

func (c *Catalog) resolveStartPageURL(name, ver, startPageSpec string) (string, error) {
	explicit := startPageSpec != ""
	spec := startPageSpec
	if !explicit {
		spec = "index.adoc"
	}

	id, err := pageid.Parse(spec, pageid.Context{Component: name, Version: ver})
	if err != nil {
		if explicit {
			return "", fmt.Errorf("%s@%s: %w", name, ver, ErrStartPageMissing)
		}
		id = pageid.ID{Component: name, Version: ver, Module: "ROOT", Relative: "index.adoc"}
	}

	if f, ok := c.GetByID(family.Page, id.Version, id.Component, id.Module, id.Relative); ok {
		if f.Pub != nil {
			return f.Pub.URL, nil
		}
		return "", nil
	}

	if explicit {
		return "", fmt.Errorf("%s@%s: %w", name, ver, ErrStartPageMissing)
	}

	return c.synthesizeStartPageURL(id), nil
}

// synthesizeStartPageURL computes a placeholder pub URL for a component
// version with no materialized index.adoc, so a Component entry can still
// be produced.
func (c *Catalog) synthesizeStartPageURL(id pageid.ID) string {
	loc := siteurl.Locator{
		Component: id.Component,
		Version:   id.Version,
		Module:    id.Module,
		Family:    family.Page,
		Relative:  id.Relative,
		Basename:  id.Relative,
		Stem:      strings.TrimSuffix(id.Relative, ".adoc"),
		MediaType: "text/asciidoc",
	}
	out := siteurl.ComputeOut(loc, c.extensionStyle)
	return siteurl.ComputePub(loc, &out, c.extensionStyle).URL
}

// FindCriteria filters findBy's scan; a nil field means "any value".
type FindCriteria struct {
	Component *string
	Version   *string
	Module    *string
	Family    *family.Family
	Relative  *string
	Basename  *string
	Extname   *string
}

// FindBy scans files matching every non-nil criterion against f.Src.
func (c *Catalog) FindBy(crit FindCriteria) []*File {
	var out []*File
	for _, f := range c.files {
		switch {
		case crit.Component != nil && f.Src.Component != *crit.Component:
		case crit.Version != nil && f.Src.Version != *crit.Version:
		case crit.Module != nil && f.Src.Module != *crit.Module:
		case crit.Family != nil && f.Src.Family != *crit.Family:
		case crit.Relative != nil && f.Src.Relative != *crit.Relative:
		case crit.Basename != nil && f.Src.Basename != *crit.Basename:
		case crit.Extname != nil && f.Src.Extname != *crit.Extname:
		default:
			out = append(out, f)
		}
	}
	return out
}

// GetByID looks a file up directly by its identity tuple.
func (c *Catalog) GetByID(fam family.Family, ver, component, module, relative string) (*File, bool) {
	f, ok := c.files[identityKey{family: fam, version: ver, component: component, module: module, relative: relative}]
	return f, ok
}

// GetByPath searches for a file by its physical path within one component
// version. Behavior is unspecified when a file's Path was never set by the
// classifier (see DESIGN.md).
func (c *Catalog) GetByPath(component, ver, path string) (*File, bool) {
	for _, f := range c.files {
		if f.Src.Component == component && f.Src.Version == ver && f.Path == path {
			return f, true
		}
	}
	return nil, false
}

// GetSiteStartPage resolves spec (typically site.startPage) against an
// empty context and returns the canonical start page, dereferencing one
// level of alias. It returns (nil, nil) when spec is empty or unresolvable.
func (c *Catalog) GetSiteStartPage(spec string) (*File, error) {
	if spec == "" {
		return nil, nil
	}

	id, err := pageid.Parse(spec, pageid.Context{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec, pageid.ErrInvalidPageID)
	}

	if id.Version == "" {
		comp, ok := c.components[id.Component]
		if !ok {
			return nil, nil
		}
		id.Version = comp.LatestVersion().Version
	}

	f, ok := c.GetByID(family.Page, id.Version, id.Component, id.Module, id.Relative)
	if !ok {
		f, ok = c.GetByID(family.Alias, id.Version, id.Component, id.Module, id.Relative)
		if !ok {
			return nil, nil
		}
	}

	if f.Src.Family == family.Alias && f.Rel != nil {
		return f.Rel, nil
	}
	return f, nil
}

// aliasFamilies enumerates every family an alias ID might collide with
// when checking for conflicts; the identity key includes family, but an
// alias occupies the same conceptual URL slot as a file of any family at
// that (component, version, module, relative).
var aliasFamilies = []family.Family{
	family.Alias, family.Page, family.Partial, family.Image,
	family.Attachment, family.Example, family.Navigation,
}

// RegisterPageAlias parses aliasSpec in target's context and, if it doesn't
// collide with an existing file (or the target itself), adds a File with
// family=alias pointing Rel at target.
func (c *Catalog) RegisterPageAlias(aliasSpec string, target *File) error {
	ctx := pageid.Context{Component: target.Src.Component, Version: target.Src.Version, Module: target.Src.Module}
	id, err := pageid.Parse(aliasSpec, ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", aliasSpec, pageid.ErrInvalidPageID)
	}

	if id.Version == "" {
		if comp, ok := c.components[id.Component]; ok {
			id.Version = comp.LatestVersion().Version
		}
	}

	if id.Component == target.Src.Component && id.Version == target.Src.Version &&
		id.Module == target.Src.Module && id.Relative == target.Src.Relative {
		return fmt.Errorf("%s: alias targets itself: %w", aliasSpec, ErrAliasConflict)
	}

	for _, fam := range aliasFamilies {
		if _, exists := c.files[identityKey{family: fam, version: id.Version, component: id.Component, module: id.Module, relative: id.Relative}]; exists {
			return fmt.Errorf("%s: %w", aliasSpec, ErrAliasConflict)
		}
	}

	alias := &File{
		Src: Src{
			Component: id.Component,
			Version:   id.Version,
			Module:    id.Module,
			Family:    family.Alias,
			Relative:  id.Relative,
			Basename:  id.Relative,
			Stem:      strings.TrimSuffix(id.Relative, ".adoc"),
			MediaType: "text/asciidoc",
		},
		Rel: target,
	}
	return c.AddFile(alias)
}

// Components returns every registered component, in map iteration order;
// callers that need a stable order (e.g. the composer's alphabetical site
// model) sort it themselves.
func (c *Catalog) Components() []*Component {
	out := make([]*Component, 0, len(c.components))
	for _, comp := range c.components {
		out = append(out, comp)
	}
	return out
}

// GetComponent looks a component up by name.
func (c *Catalog) GetComponent(name string) (*Component, bool) {
	comp, ok := c.components[name]
	return comp, ok
}

// hasUnderscoreSegment reports whether any "/"-separated segment of
// relative begins with "_", the convention marking private support files.
func hasUnderscoreSegment(relative string) bool {
	for _, seg := range strings.Split(relative, "/") {
		if strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}
