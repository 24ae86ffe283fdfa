package layout

import "errors"

var (
	// ErrNoTypesetter is returned when a Renderer is built without a measuring backend.
	ErrNoTypesetter = errors.New("layout: missing Typesetter")
	// ErrPageOutOfRange is returned when targeting a page that does not exist.
	ErrPageOutOfRange = errors.New("layout: page index out of range")
)

// Typesetter measures and wraps text for a given font. Widths are millimeters
// and font sizes are points.
type Typesetter interface {
	TextWidth(content string, font FontResource, fontSize float64) (float64, error)
	SplitText(content string, width float64, font FontResource, fontSize float64) ([]string, error)
}

// OverflowPolicy decides where a page break lands when the active page is not
// the last page of the sequence.
type OverflowPolicy int

const (
	// OverflowAppend always appends a fresh page at the end of the sequence.
	OverflowAppend OverflowPolicy = iota
	// OverflowNextPage moves to the following page when one exists and only
	// appends when the active page is the last one.
	OverflowNextPage
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowNextPage:
		return "next"
	default:
		return "append"
	}
}

// ParseOverflowPolicy maps "append" and "next" to a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "append":
		return OverflowAppend, nil
	case "next":
		return OverflowNextPage, nil
	default:
		return OverflowAppend, errors.New("layout: unknown overflow policy " + s)
	}
}

// Options configures a Renderer.
type Options struct {
	Geometry         Geometry
	LineHeightFactor float64
	// InitialCursorX/Y override the anchor; zero means the page margins.
	InitialCursorX float64
	InitialCursorY float64
	FontFamily     string
	DefaultStyle   Style
	Overflow       OverflowPolicy
}

// DefaultLineHeightFactor matches the jsPDF default.
const DefaultLineHeightFactor = 1.15
