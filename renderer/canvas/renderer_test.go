package canvasrenderer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ayvaroff/ayvaroff.github.io/fonts"
	"github.com/ayvaroff/ayvaroff.github.io/layout"
)

var bodyFont = layout.FontResource{Name: "body", Family: "lm", Style: "normal", Src: fonts.DefaultRegular}

func TestSplitTextWrapsToWidth(t *testing.T) {
	r := NewRenderer()
	lines, err := r.SplitText("hello world again", 10, bodyFont, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

func TestSplitTextHonoursNewlines(t *testing.T) {
	r := NewRenderer()
	lines, err := r.SplitText("foo\n\nbar", 100, bodyFont, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1] != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1])
	}
}

// Every wrapped line fits the limit unless it is a single glyph.
func TestSplitTextWidthLimit(t *testing.T) {
	r := NewRenderer()
	limit := 30.0
	content := strings.Repeat("a", 60) + " " + strings.Repeat("word ", 12)
	lines, err := r.SplitText(content, limit, bodyFont, 12)
	if err != nil {
		t.Fatalf("SplitText error: %v", err)
	}
	for i, ln := range lines {
		w, err := r.TextWidth(ln, bodyFont, 12)
		if err != nil {
			t.Fatalf("TextWidth error: %v", err)
		}
		if w-limit > 1e-6 && len([]rune(ln)) > 1 {
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, w, limit)
		}
	}
}

func TestTextWidthScalesWithSize(t *testing.T) {
	r := NewRenderer()
	w10, err := r.TextWidth("Experience", bodyFont, 10)
	if err != nil {
		t.Fatalf("TextWidth error: %v", err)
	}
	w20, err := r.TextWidth("Experience", bodyFont, 20)
	if err != nil {
		t.Fatalf("TextWidth error: %v", err)
	}
	if w10 <= 0 {
		t.Fatalf("invalid width %g", w10)
	}
	if math.Abs(w20-2*w10) > 1e-3 {
		t.Fatalf("width should scale linearly: 10pt=%g 20pt=%g", w10, w20)
	}
}

func TestInjectedFontBytes(t *testing.T) {
	data, err := fonts.Embedded("lmroman10-bold")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRendererWithOptions(Options{Fonts: map[string][]byte{"built-in:heading": data}})
	font := layout.FontResource{Name: "heading", Family: "roman", Style: "bold", Src: "built-in:heading"}
	if _, err := r.TextWidth("About Me", font, 14); err != nil {
		t.Fatalf("injected font should load: %v", err)
	}

	missing := layout.FontResource{Name: "other", Src: "built-in:other"}
	if _, err := r.TextWidth("x", missing, 14); err == nil {
		t.Fatal("expected an error for a font without injected bytes")
	}
	remote := layout.FontResource{Name: "calibri", Src: "https://example.com/calibri.ttf"}
	if _, err := r.TextWidth("x", remote, 14); err == nil {
		t.Fatal("expected an error for a remote font that was not preloaded")
	}
}

func TestRenderWritesPDF(t *testing.T) {
	backend := NewRenderer()
	engine, err := layout.NewRenderer(backend, layout.Options{
		Geometry:     layout.DefaultGeometry(),
		FontFamily:   "lm",
		DefaultStyle: layout.Style{FontSize: 11},
	})
	if err != nil {
		t.Fatal(err)
	}
	engine.RegisterFont(bodyFont).
		RegisterFont(layout.FontResource{Name: "body-bold", Family: "lm", Style: "bold", Src: fonts.DefaultBold})

	engine.RenderText("Jane Doe", layout.Style{FontStyle: layout.FontBold, FontSize: 18}).
		RenderText(" - Engineer", layout.Style{FontStyle: layout.FontNormal, Color: "#353535"}).
		MoveToNextLine(1).
		RenderText("GitHub: ", layout.Style{FontStyle: layout.FontBold}).
		RenderTextWithLink("github.com/jane", "https://github.com/jane", layout.Style{FontStyle: layout.FontNormal}).
		AddPage().
		RenderLines(engine.SplitTextToSize(strings.Repeat("lorem ipsum ", 40), engine.PageContentWidth()))

	res, err := engine.Result(layout.DocumentMeta{Title: "Jane Doe's CV", Author: "Jane Doe", Language: "en"})
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(res.Pages))
	}

	out, err := backend.Render(res)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatal("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatal("expected error for result without pages")
	}
}

func TestParseFontStyle(t *testing.T) {
	if parseFontStyle("normal") != parseFontStyle("") {
		t.Fatal("normal and empty should both be regular")
	}
	if parseFontStyle("bold") == parseFontStyle("normal") {
		t.Fatal("bold should differ from normal")
	}
}
