// Package layout declares the template-rendering collaborator the composer
// hands finished page models to. No concrete HTML template engine lives in
// this module; a caller wires one in.
package layout

import "github.com/dionysius/docweave/internal/compose"

// Renderer turns a named layout and a fully-assembled page model into
// output bytes. It is treated as a pure function: same layoutName and
// model, same bytes, no I/O of its own.
type Renderer interface {
	Render(layoutName string, model compose.PageUIModel) ([]byte, error)
}
