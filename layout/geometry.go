package layout

import "fmt"

// Orientation of the page.
type Orientation string

const (
	Portrait  Orientation = "p"
	Landscape Orientation = "l"
)

// Geometry is the static page configuration of one render. All lengths are
// millimeters. ColumnRatio and ColumnPadding only matter for two-column layouts.
type Geometry struct {
	Orientation      Orientation `json:"orientation"`
	Size             PageSize    `json:"size"`
	MarginHorizontal float64     `json:"marginHorizontal"`
	MarginVertical   float64     `json:"marginVertical"`
	ColumnPadding    float64     `json:"columnPadding"`
	ColumnRatio      float64     `json:"columnRatio"`
}

// DefaultGeometry is an A4 portrait page with 20mm margins.
func DefaultGeometry() Geometry {
	return Geometry{
		Orientation:      Portrait,
		Size:             A4,
		MarginHorizontal: 20,
		MarginVertical:   20,
		ColumnPadding:    6,
		ColumnRatio:      0.75,
	}
}

// Validate reports geometry that leaves no printable area.
func (g Geometry) Validate() error {
	if g.Size.Width <= 0 || g.Size.Height <= 0 {
		return fmt.Errorf("layout: invalid page size %gx%g", g.Size.Width, g.Size.Height)
	}
	if g.MarginHorizontal < 0 || g.MarginVertical < 0 {
		return fmt.Errorf("layout: negative margins")
	}
	if g.ContentWidth() <= 0 || g.ContentBottom() <= g.MarginVertical {
		return fmt.Errorf("layout: margins %g/%g leave no content area", g.MarginHorizontal, g.MarginVertical)
	}
	if g.ColumnRatio < 0 || g.ColumnRatio >= 1 {
		return fmt.Errorf("layout: column ratio %g outside [0,1)", g.ColumnRatio)
	}
	return nil
}

func (g Geometry) PageWidth() float64 {
	if g.Orientation == Landscape {
		return g.Size.Height
	}
	return g.Size.Width
}

func (g Geometry) PageHeight() float64 {
	if g.Orientation == Landscape {
		return g.Size.Width
	}
	return g.Size.Height
}

// ContentWidth is the usable width of a single flow.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth() - 2*g.MarginHorizontal
}

// ContentBottom is the lowest baseline a line may occupy before a page break.
func (g Geometry) ContentBottom() float64 {
	return g.PageHeight() - g.MarginVertical
}

// Columns splits the content width by ColumnRatio, leaving ColumnPadding
// between the two columns.
func (g Geometry) Columns() (left, right float64) {
	w := g.ContentWidth()
	left = w*g.ColumnRatio - g.ColumnPadding/2
	right = w*(1-g.ColumnRatio) - g.ColumnPadding/2
	return left, right
}

// RightColumnX is the horizontal origin of the right column.
func (g Geometry) RightColumnX() float64 {
	left, _ := g.Columns()
	return g.MarginHorizontal + left + g.ColumnPadding
}

func (g Geometry) Margin() Margin {
	return Margin{
		Top:    g.MarginVertical,
		Right:  g.MarginHorizontal,
		Bottom: g.MarginVertical,
		Left:   g.MarginHorizontal,
	}
}
