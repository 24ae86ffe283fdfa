package layout_test

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayvaroff/ayvaroff.github.io/layout"
	"github.com/ayvaroff/ayvaroff.github.io/layout/layouttest"
	"github.com/ayvaroff/ayvaroff.github.io/logging"
)

const eps = 1e-9

func newTestRenderer(t *testing.T) *layout.Renderer {
	t.Helper()
	r, err := layouttest.NewRenderer(layout.Options{
		Geometry:         layout.DefaultGeometry(),
		LineHeightFactor: 1.2,
		DefaultStyle:     layout.Style{FontSize: 10},
	})
	require.NoError(t, err)
	return r
}

func lastText(t *testing.T, r *layout.Renderer) layout.TextBox {
	t.Helper()
	res, err := r.Result(layout.DocumentMeta{})
	require.NoError(t, err)
	page := res.Pages[r.ActivePage()]
	require.NotEmpty(t, page.Texts)
	return page.Texts[len(page.Texts)-1]
}

func TestNewRendererRequiresTypesetter(t *testing.T) {
	_, err := layout.NewRenderer(nil, layout.Options{Geometry: layout.DefaultGeometry()})
	assert.ErrorIs(t, err, layout.ErrNoTypesetter)
}

func TestNewRendererRejectsBadGeometry(t *testing.T) {
	g := layout.DefaultGeometry()
	g.MarginHorizontal = 200
	_, err := layout.NewRenderer(&layouttest.Typesetter{}, layout.Options{Geometry: g})
	assert.Error(t, err)
}

func TestCursorStartsAtAnchor(t *testing.T) {
	r := newTestRenderer(t)
	c := r.Cursor()
	assert.Equal(t, 20.0, c.X)
	assert.Equal(t, 20.0, c.Y)
	assert.Equal(t, c.X, c.InitialX)
	assert.Equal(t, c.Y, c.InitialY)
	assert.Equal(t, 1, r.PageCount())
	assert.InDelta(t, 170.0, r.PageContentWidth(), eps)
}

func TestRenderTextStyleIsSticky(t *testing.T) {
	r := newTestRenderer(t)
	r.RenderText("Experience", layout.Style{FontStyle: layout.FontBold, FontSize: 14, Color: "#284b63"})
	first := lastText(t, r)
	assert.Equal(t, "test-bold", first.Font)
	assert.Equal(t, 14.0, first.FontSize)

	r.RenderText(" continues")
	second := lastText(t, r)
	assert.Equal(t, "test-bold", second.Font, "omitted font style keeps the previous one")
	assert.Equal(t, 14.0, second.FontSize)
	assert.Equal(t, layout.Color{R: 0x28, G: 0x4b, B: 0x63}, second.Color)

	r.RenderText("plain", layout.Style{FontStyle: layout.FontNormal})
	third := lastText(t, r)
	assert.Equal(t, "test-normal", third.Font)
	assert.Equal(t, 14.0, third.FontSize, "size stays while only the weight changes")
	require.NoError(t, r.Err())
}

func TestRenderTextAdvancesCursorMonotonically(t *testing.T) {
	r := newTestRenderer(t)
	prev := r.Cursor().X
	for _, s := range []string{"Email: ", "someone@example.com", " ", "x"} {
		r.RenderText(s)
		x := r.Cursor().X
		assert.GreaterOrEqual(t, x, prev)
		assert.InDelta(t, prev+layouttest.Width(s, 10), x, eps)
		prev = x
	}
	assert.Equal(t, 20.0, r.Cursor().Y, "single-line text leaves y unchanged")
}

func TestRenderMultiLineBlockMovesToLastBaseline(t *testing.T) {
	r := newTestRenderer(t)
	r.RenderLines([]string{"short", "a longer line", "mid"})
	c := r.Cursor()
	advance := 10 * layout.PtToMm * 1.2
	assert.InDelta(t, 20+2*advance, c.Y, eps)
	assert.InDelta(t, 20+layouttest.Width("a longer line", 10), c.X, eps)

	box := lastText(t, r)
	assert.Len(t, box.Lines, 3)
	assert.Equal(t, "short\na longer line\nmid", box.Content)
	assert.InDelta(t, advance, box.LineHeight, eps)
}

func TestMoveToNextLineResetsXAndAdvancesY(t *testing.T) {
	r := newTestRenderer(t)
	r.RenderText("Skills: ").MoveToNextLine(1)
	c := r.Cursor()
	assert.Equal(t, c.InitialX, c.X)
	// default line height is fontSize × factor, multiplied again by the factor.
	assert.InDelta(t, 20+10*1.2*1.2*layout.PtToMm, c.Y, eps)

	r.MoveToNextLine(2)
	assert.InDelta(t, 20+3*10*1.2*1.2*layout.PtToMm, r.Cursor().Y, eps)

	r.MoveToNextLineWithHeight(1, 20)
	assert.InDelta(t, 20+3*10*1.2*1.2*layout.PtToMm+20*1.2*layout.PtToMm, r.Cursor().Y, eps)
}

func TestMoveToNextLineRejectsNegativeCount(t *testing.T) {
	r := newTestRenderer(t)
	r.MoveToNextLine(-1)
	assert.Error(t, r.Err())
}

func TestOverflowCreatesPageAndResetsCursor(t *testing.T) {
	r := newTestRenderer(t)
	bottom := r.Geometry().ContentBottom()
	pages := r.PageCount()
	for i := 0; i < 300; i++ {
		r.RenderText("line").MoveToNextLine(1)
		c := r.Cursor()
		require.LessOrEqual(t, c.Y, bottom, "cursor must never pass the bottom margin")
		if r.PageCount() != pages {
			assert.Equal(t, pages+1, r.PageCount())
			assert.Equal(t, c.InitialX, c.X)
			assert.Equal(t, c.InitialY, c.Y)
			pages = r.PageCount()
		}
	}
	assert.Greater(t, r.PageCount(), 2)
	assert.Equal(t, r.PageCount()-1, r.ActivePage())
}

// A summary narrower than the column stays on one line and one page.
func TestShortSummaryRendersSingleLine(t *testing.T) {
	r := newTestRenderer(t)
	summary := "Frontend developer from Lisbon."
	lines := r.SplitTextToSize(summary, r.PageContentWidth())
	require.Len(t, lines, 1)
	r.RenderLines(lines)

	assert.Equal(t, 1, r.PageCount())
	box := lastText(t, r)
	assert.Equal(t, summary, box.Content)
	assert.Len(t, box.Lines, 1)
}

// Ten wrapped lines at 10pt in a 100mm column, started near the page bottom,
// break once mid-paragraph and resume at the anchor y of the new page.
func TestParagraphBreaksOnceNearPageBottom(t *testing.T) {
	r := newTestRenderer(t)
	words := make([]string, 50)
	for i := range words {
		words[i] = "abcdefghi"
	}
	lines := r.SplitTextToSize(strings.Join(words, " "), 100, layout.Style{FontSize: 10})
	require.Len(t, lines, 10)

	// walk down to the bottom without moving the anchor
	for r.Cursor().Y < 255 {
		r.MoveToNextLine(1)
	}
	require.Equal(t, 1, r.PageCount())
	startY := r.Cursor().Y
	advance := 10 * layout.PtToMm * 1.2
	bottom := r.Geometry().ContentBottom()
	onFirst := int((bottom-startY)/advance) + 1

	r.RenderLines(lines, layout.Style{FontSize: 10})
	require.NoError(t, r.Err())
	require.Equal(t, 2, r.PageCount(), "exactly one page break")

	res, err := r.Result(layout.DocumentMeta{})
	require.NoError(t, err)
	first := res.Pages[0].Texts[len(res.Pages[0].Texts)-1]
	second := res.Pages[1].Texts[0]
	assert.Len(t, first.Lines, onFirst)
	assert.Len(t, second.Lines, 10-onFirst)
	assert.Equal(t, 20.0, second.Y, "remaining lines resume at the anchor y")
	assert.Equal(t, first.X, second.X)
	assert.InDelta(t, 20+float64(10-onFirst-1)*advance, r.Cursor().Y, eps)
	for _, p := range res.Pages {
		for _, tb := range p.Texts {
			assert.LessOrEqual(t, tb.Y+float64(len(tb.Lines)-1)*tb.LineHeight, bottom+eps)
		}
	}
}

func TestSetActivePageRetargetsExistingPage(t *testing.T) {
	r := newTestRenderer(t)
	r.AddPage().AddPage()
	require.Equal(t, 3, r.PageCount())
	require.Equal(t, 2, r.ActivePage())

	r.SetActivePage(0).RenderText("sidebar")
	require.NoError(t, r.Err())
	res, err := r.Result(layout.DocumentMeta{})
	require.NoError(t, err)
	require.Len(t, res.Pages[0].Texts, 1)
	assert.Equal(t, "sidebar", res.Pages[0].Texts[0].Content)
	assert.Empty(t, res.Pages[2].Texts)
}

func TestSetActivePageOutOfRange(t *testing.T) {
	r := newTestRenderer(t)
	r.SetActivePage(3).RenderText("ignored")
	assert.True(t, errors.Is(r.Err(), layout.ErrPageOutOfRange))
	_, err := r.Result(layout.DocumentMeta{})
	assert.ErrorIs(t, err, layout.ErrPageOutOfRange)
}

func TestOverflowPolicies(t *testing.T) {
	for _, tc := range []struct {
		policy     layout.OverflowPolicy
		wantPages  int
		wantActive int
	}{
		{layout.OverflowAppend, 4, 3},
		{layout.OverflowNextPage, 3, 1},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			r, err := layouttest.NewRenderer(layout.Options{
				Geometry:     layout.DefaultGeometry(),
				DefaultStyle: layout.Style{FontSize: 10},
				Overflow:     tc.policy,
			})
			require.NoError(t, err)
			r.AddPage().AddPage().SetActivePage(0).ResetCursor()
			for r.ActivePage() == 0 {
				r.MoveToNextLine(1)
			}
			assert.Equal(t, tc.wantPages, r.PageCount())
			assert.Equal(t, tc.wantActive, r.ActivePage())
		})
	}
}

func TestRenderTextWithLinkRecordsRegion(t *testing.T) {
	r := newTestRenderer(t)
	r.RenderText("GitHub: ").RenderTextWithLink("github.com/ayvaroff", "https://github.com/ayvaroff")
	res, err := r.Result(layout.DocumentMeta{})
	require.NoError(t, err)
	links := res.Pages[0].Links
	require.Len(t, links, 1)
	assert.Equal(t, "https://github.com/ayvaroff", links[0].URL)
	assert.InDelta(t, 20+layouttest.Width("GitHub: ", 10), links[0].X, eps)
	assert.InDelta(t, layouttest.Width("github.com/ayvaroff", 10), links[0].Width, eps)
	assert.Less(t, links[0].Y, 20.0)
}

func TestTextWidthDoesNotChangeStyle(t *testing.T) {
	r := newTestRenderer(t)
	w := r.TextWidth("Stack: ", layout.Style{FontSize: 20})
	assert.InDelta(t, layouttest.Width("Stack: ", 20), w, eps)
	assert.Equal(t, 10.0, r.Style().FontSize)
}

func TestBackendErrorIsSticky(t *testing.T) {
	ts := &layouttest.Typesetter{Fail: "boom"}
	r, err := layout.NewRenderer(ts, layout.Options{Geometry: layout.DefaultGeometry(), FontFamily: "test"})
	require.NoError(t, err)
	for _, f := range layouttest.Fonts() {
		r.RegisterFont(f)
	}
	r.RenderText("boom").MoveToNextLine(1).RenderText("after")
	require.Error(t, r.Err())
	assert.Equal(t, 20.0, r.Cursor().Y, "calls after a failure are no-ops")
	_, err = r.Result(layout.DocumentMeta{})
	assert.Error(t, err)
}

func TestUnregisteredFontFails(t *testing.T) {
	r, err := layout.NewRenderer(&layouttest.Typesetter{}, layout.Options{Geometry: layout.DefaultGeometry(), FontFamily: "missing"})
	require.NoError(t, err)
	r.RenderText("x")
	assert.ErrorContains(t, r.Err(), "no normal font registered")
}

func TestInvalidColorFails(t *testing.T) {
	r := newTestRenderer(t)
	r.RenderText("x", layout.Style{Color: "#zz"})
	assert.Error(t, r.Err())
}

func TestPageBreakIsLogged(t *testing.T) {
	handler := logging.NewBufferedLogHandler(nil)
	logging.SetLogger(slog.New(handler))
	defer logging.SetLogger(nil)

	r := newTestRenderer(t)
	for r.PageCount() == 1 {
		r.MoveToNextLine(1)
	}
	assert.True(t, handler.Contains("page overflow"))
}
