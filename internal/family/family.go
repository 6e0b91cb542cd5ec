// Package family defines the fixed set of file families a content file can
// be classified into, shared by the content catalog, URL computation, and
// navigation packages so they agree on the same vocabulary without a
// dependency cycle.
package family

// Family is the role a file plays within a component version, assigned by
// path convention (the directory it lives under relative to a module).
type Family string

const (
	Page        Family = "page"
	Partial     Family = "partial"
	Image       Family = "image"
	Attachment  Family = "attachment"
	Example     Family = "example"
	Navigation  Family = "navigation"
	Alias       Family = "alias"
)

// Publishable reports whether files of this family are written to the
// output tree and assigned a public URL.
func (f Family) Publishable() bool {
	switch f {
	case Page, Image, Attachment:
		return true
	default:
		return false
	}
}
