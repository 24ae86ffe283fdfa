// Package layouttest provides a deterministic Typesetter for layout tests.
package layouttest

import (
	"fmt"
	"unicode/utf8"

	"github.com/ayvaroff/ayvaroff.github.io/layout"
)

// CharWidth is the advance of one rune as a fraction of the font size.
const CharWidth = 0.5

// Typesetter measures every rune as CharWidth × font size, with bold faces
// measuring the same as regular ones. Fail, when set, is returned for any
// content it matches.
type Typesetter struct {
	Fail string
}

func (t *Typesetter) TextWidth(content string, font layout.FontResource, fontSize float64) (float64, error) {
	if t.Fail != "" && content == t.Fail {
		return 0, fmt.Errorf("layouttest: cannot measure %q", content)
	}
	return Width(content, fontSize), nil
}

func (t *Typesetter) SplitText(content string, width float64, font layout.FontResource, fontSize float64) ([]string, error) {
	if t.Fail != "" && content == t.Fail {
		return nil, fmt.Errorf("layouttest: cannot wrap %q", content)
	}
	return layout.WrapText(content, width, func(s string) float64 { return Width(s, fontSize) }), nil
}

// Width is the width in millimeters of s at fontSize points.
func Width(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * CharWidth * layout.PtToMm
}

// Fonts returns a regular and a bold face of family "test".
func Fonts() []layout.FontResource {
	return []layout.FontResource{
		{Name: "test-normal", Family: "test", Style: "normal", Src: "embed:lmsans10-regular"},
		{Name: "test-bold", Family: "test", Style: "bold", Src: "embed:lmsans10-bold"},
	}
}

// NewRenderer builds a Renderer over the stub with the test fonts registered.
func NewRenderer(opts layout.Options) (*layout.Renderer, error) {
	if opts.FontFamily == "" {
		opts.FontFamily = "test"
	}
	r, err := layout.NewRenderer(&Typesetter{}, opts)
	if err != nil {
		return nil, err
	}
	for _, f := range Fonts() {
		r.RegisterFont(f)
	}
	return r, r.Err()
}
