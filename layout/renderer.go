package layout

import (
	"fmt"
	"strings"

	"github.com/ayvaroff/ayvaroff.github.io/logging"
)

const (
	defaultFontSize  = 16 // pt, jsPDF default
	defaultTextColor = "#000000"
	// linkAscent approximates the glyph ascent as a fraction of the font size
	// when sizing clickable regions.
	linkAscent = 0.8
)

// Cursor is the drawing position plus the anchor it resets to. Y is a baseline.
type Cursor struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	InitialX float64 `json:"initialX"`
	InitialY float64 `json:"initialY"`
}

// Renderer tracks a drawing cursor over a growing page sequence and places
// text through a Typesetter. It breaks pages on its own when a line advance
// would leave the printable area.
//
// Every method returns the Renderer so calls can be issued as one sequence.
// The first failure is kept and turns later calls into no-ops; check Err (or
// Result) once the sequence is done.
type Renderer struct {
	ts       Typesetter
	geom     Geometry
	factor   float64
	family   string
	fonts    map[string]FontResource
	style    Style
	cursor   Cursor
	pages    *pageSequence
	overflow OverflowPolicy
	err      error
}

// NewRenderer builds a Renderer with one empty page and the cursor at its anchor.
func NewRenderer(ts Typesetter, opts Options) (*Renderer, error) {
	if ts == nil {
		return nil, ErrNoTypesetter
	}
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	factor := opts.LineHeightFactor
	if factor <= 0 {
		factor = DefaultLineHeightFactor
	}
	x0 := opts.InitialCursorX
	if x0 == 0 {
		x0 = opts.Geometry.MarginHorizontal
	}
	y0 := opts.InitialCursorY
	if y0 == 0 {
		y0 = opts.Geometry.MarginVertical
	}
	style := Style{FontStyle: FontNormal, FontSize: defaultFontSize, Color: defaultTextColor}.Merge(opts.DefaultStyle)
	if _, err := ParseColor(style.Color); err != nil {
		return nil, err
	}
	return &Renderer{
		ts:       ts,
		geom:     opts.Geometry,
		factor:   factor,
		family:   opts.FontFamily,
		fonts:    map[string]FontResource{},
		style:    style,
		cursor:   Cursor{X: x0, Y: y0, InitialX: x0, InitialY: y0},
		pages:    newPageSequence(opts.Geometry),
		overflow: opts.Overflow,
	}, nil
}

// Err returns the first error recorded by any call.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) fail(err error) *Renderer {
	if r.err == nil {
		r.err = err
	}
	return r
}

// RegisterFont makes a face available under its Family and Style.
func (r *Renderer) RegisterFont(font FontResource) *Renderer {
	if r.err != nil {
		return r
	}
	if font.Name == "" || font.Family == "" {
		return r.fail(fmt.Errorf("layout: font %q needs a name and a family", font.Name))
	}
	style := font.Style
	if style == "" {
		style = string(FontNormal)
	}
	font.Style = style
	r.fonts[fontKey(font.Family, FontStyle(style))] = font
	return r
}

// SetFontFamily selects the family used to resolve FontStyle values.
func (r *Renderer) SetFontFamily(family string) *Renderer {
	r.family = family
	return r
}

// SetStyle merges styles into the current style without drawing anything.
func (r *Renderer) SetStyle(styles ...Style) *Renderer {
	if r.err != nil {
		return r
	}
	next := mergeStyles(r.style, styles)
	if _, err := ParseColor(next.Color); err != nil {
		return r.fail(err)
	}
	r.style = next
	return r
}

// Style returns the current sticky style.
func (r *Renderer) Style() Style { return r.style }

// LineHeightFactor returns the multiplier applied to font sizes for line spacing.
func (r *Renderer) LineHeightFactor() float64 { return r.factor }

// Geometry returns the page configuration fixed at construction.
func (r *Renderer) Geometry() Geometry { return r.geom }

// PageContentWidth is the usable width of a single flow.
func (r *Renderer) PageContentWidth() float64 { return r.geom.ContentWidth() }

// Cursor returns a copy of the current cursor.
func (r *Renderer) Cursor() Cursor { return r.cursor }

// SetCursorX moves the cursor horizontally and makes x the new line-start anchor.
func (r *Renderer) SetCursorX(x float64) *Renderer {
	r.cursor.X = x
	r.cursor.InitialX = x
	return r
}

// SetCursorY moves the cursor vertically and makes y the new page-top anchor.
func (r *Renderer) SetCursorY(y float64) *Renderer {
	r.cursor.Y = y
	r.cursor.InitialY = y
	return r
}

// ResetCursor moves the cursor back to its anchor.
func (r *Renderer) ResetCursor() *Renderer {
	r.cursor.X = r.cursor.InitialX
	r.cursor.Y = r.cursor.InitialY
	return r
}

// PageCount returns the number of pages in the sequence.
func (r *Renderer) PageCount() int { return r.pages.len() }

// ActivePage returns the zero-based index of the page receiving content.
func (r *Renderer) ActivePage() int { return r.pages.active }

// SetActivePage re-targets an existing page. The cursor is left untouched.
func (r *Renderer) SetActivePage(index int) *Renderer {
	if r.err != nil {
		return r
	}
	if err := r.pages.setActive(index); err != nil {
		return r.fail(err)
	}
	logging.Logger().Debug("active page set", "page", index+1)
	return r
}

// AddPage appends a page, makes it active and resets the cursor to its anchor.
func (r *Renderer) AddPage() *Renderer {
	if r.err != nil {
		return r
	}
	r.pages.appendPage()
	logging.Logger().Debug("page added", "page", r.pages.len())
	return r.ResetCursor()
}

// overflowPage is the automatic break taken when the cursor leaves the
// printable area.
func (r *Renderer) overflowPage() {
	if r.overflow == OverflowNextPage && r.pages.active < r.pages.len()-1 {
		r.pages.active++
		logging.Logger().Debug("page overflow", "page", r.pages.active+1, "policy", r.overflow.String())
		r.ResetCursor()
		return
	}
	r.pages.appendPage()
	logging.Logger().Debug("page overflow", "page", r.pages.len(), "policy", r.overflow.String())
	r.ResetCursor()
}

// MoveToNextLine advances by lines using the current font line height.
func (r *Renderer) MoveToNextLine(lines int) *Renderer {
	return r.MoveToNextLineWithHeight(lines, 0)
}

// MoveToNextLineWithHeight resets x to the anchor and advances y by
// lines × lineHeight × line-height factor, where lineHeight is in points and
// defaults to the current font size times the factor. A new page starts when
// y passes the bottom margin.
func (r *Renderer) MoveToNextLineWithHeight(lines int, lineHeight float64) *Renderer {
	if r.err != nil {
		return r
	}
	if lines < 0 {
		return r.fail(fmt.Errorf("layout: negative line count %d", lines))
	}
	if lineHeight <= 0 {
		lineHeight = r.style.FontSize * r.factor
	}
	r.cursor.X = r.cursor.InitialX
	r.cursor.Y += float64(lines) * lineHeight * r.factor * PtToMm
	if r.cursor.Y > r.geom.ContentBottom() {
		r.overflowPage()
	}
	return r
}

// RenderText applies styles (unset fields keep their previous value) and
// draws text at the cursor. Embedded newlines produce a multi-line block.
// The cursor then sits after the widest line, on the last line's baseline.
func (r *Renderer) RenderText(text string, styles ...Style) *Renderer {
	return r.RenderLines(splitLines(text), styles...)
}

// RenderLines draws pre-wrapped lines as one block. See RenderText.
func (r *Renderer) RenderLines(lines []string, styles ...Style) *Renderer {
	if r.SetStyle(styles...).err != nil {
		return r
	}
	return r.drawBlock(lines, "")
}

// RenderTextWithLink behaves like RenderText and binds the drawn area to url.
func (r *Renderer) RenderTextWithLink(text, url string, styles ...Style) *Renderer {
	if r.SetStyle(styles...).err != nil {
		return r
	}
	return r.drawBlock(splitLines(text), url)
}

// TextWidth measures text with the current style merged with styles. The
// current style itself is not changed.
func (r *Renderer) TextWidth(text string, styles ...Style) float64 {
	if r.err != nil {
		return 0
	}
	style := mergeStyles(r.style, styles)
	font, err := r.font(style.FontStyle)
	if err != nil {
		r.fail(err)
		return 0
	}
	w, err := r.ts.TextWidth(text, font, style.FontSize)
	if err != nil {
		r.fail(fmt.Errorf("layout: measure %q: %w", text, err))
		return 0
	}
	return w
}

// SplitTextToSize wraps text to width using the current style merged with
// styles. The current style itself is not changed.
func (r *Renderer) SplitTextToSize(text string, width float64, styles ...Style) []string {
	if r.err != nil {
		return nil
	}
	style := mergeStyles(r.style, styles)
	font, err := r.font(style.FontStyle)
	if err != nil {
		r.fail(err)
		return nil
	}
	lines, err := r.ts.SplitText(text, width, font, style.FontSize)
	if err != nil {
		r.fail(fmt.Errorf("layout: wrap text: %w", err))
		return nil
	}
	return lines
}

func (r *Renderer) drawBlock(lines []string, url string) *Renderer {
	if len(lines) == 0 {
		return r
	}
	font, err := r.font(r.style.FontStyle)
	if err != nil {
		return r.fail(err)
	}
	color, err := ParseColor(r.style.Color)
	if err != nil {
		return r.fail(err)
	}
	sizeMM := r.style.FontSize * PtToMm
	advance := sizeMM * r.factor

	startX := r.cursor.X
	y := r.cursor.Y
	widest := 0.0
	box := r.newBox(font, color, startX, y, advance)
	for i, line := range lines {
		w, err := r.ts.TextWidth(line, font, r.style.FontSize)
		if err != nil {
			return r.fail(fmt.Errorf("layout: measure %q: %w", line, err))
		}
		if i > 0 {
			y += advance
			if y > r.geom.ContentBottom() {
				r.flushBox(box, url, sizeMM)
				r.overflowPage()
				y = r.cursor.Y
				box = r.newBox(font, color, startX, y, advance)
			}
		}
		box.Lines = append(box.Lines, TextLine{Content: line, Width: w})
		if w > box.Width {
			box.Width = w
		}
		if w > widest {
			widest = w
		}
	}
	r.flushBox(box, url, sizeMM)

	r.cursor.X = startX + widest
	r.cursor.Y = y
	return r
}

func (r *Renderer) newBox(font FontResource, color Color, x, y, advance float64) TextBox {
	return TextBox{
		X:          x,
		Y:          y,
		LineHeight: advance,
		Font:       font.Name,
		FontSize:   r.style.FontSize,
		Color:      color,
	}
}

func (r *Renderer) flushBox(box TextBox, url string, sizeMM float64) {
	if len(box.Lines) == 0 {
		return
	}
	contents := make([]string, len(box.Lines))
	for i, ln := range box.Lines {
		contents[i] = ln.Content
	}
	box.Content = strings.Join(contents, "\n")
	acc := r.pages.curr()
	acc.texts = append(acc.texts, box)
	if url == "" {
		return
	}
	acc.links = append(acc.links, LinkBox{
		URL:    url,
		X:      box.X,
		Y:      box.Y - sizeMM*linkAscent,
		Width:  box.Width,
		Height: sizeMM + float64(len(box.Lines)-1)*box.LineHeight,
	})
}

func (r *Renderer) font(style FontStyle) (FontResource, error) {
	if style == "" {
		style = FontNormal
	}
	font, ok := r.fonts[fontKey(r.family, style)]
	if !ok {
		return FontResource{}, fmt.Errorf("layout: no %s font registered for family %q", style, r.family)
	}
	return font, nil
}

// Result snapshots the pages laid out so far together with the registered fonts.
func (r *Renderer) Result(meta DocumentMeta) (*Result, error) {
	if r.err != nil {
		return nil, r.err
	}
	fonts := make(map[string]FontResource, len(r.fonts))
	for _, f := range r.fonts {
		fonts[f.Name] = f
	}
	return &Result{
		Pages:     r.pages.pages(),
		Resources: ResourceSet{Fonts: fonts},
		Meta:      meta,
	}, nil
}

func fontKey(family string, style FontStyle) string {
	return family + "|" + string(style)
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
}
