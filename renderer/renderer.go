package renderer

import "github.com/ayvaroff/ayvaroff.github.io/layout"

// Renderer serializes a layout result into the final file bytes, e.g. a PDF.
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Backend measures text during layout and serializes the result afterwards.
type Backend interface {
	layout.Typesetter
	Renderer
}
