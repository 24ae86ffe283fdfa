package canvasrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ayvaroff/ayvaroff.github.io/fonts"
	"github.com/ayvaroff/ayvaroff.github.io/layout"
	"github.com/ayvaroff/ayvaroff.github.io/logging"
	"github.com/ayvaroff/ayvaroff.github.io/renderer"
)

// Renderer measures and draws text via github.com/tdewolff/canvas and writes PDF.
type Renderer struct {
	// injected font bytes keyed by source string
	fontBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Backend  = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	// Fonts maps a FontResource.Src, or "built-in:<name>", to preloaded bytes.
	// Sources not listed here are resolved through the fonts package,
	// except URLs which must be preloaded.
	Fonts map[string][]byte
}

// NewRenderer creates a renderer that resolves fonts from the fonts package only.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font bytes.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for src, data := range opts.Fonts {
		if src == "" || len(data) == 0 {
			continue
		}
		r.fontBlobs[src] = data
	}
	return r
}

// TextWidth implements layout.Typesetter. fontSize is in points, the result in millimeters.
func (r *Renderer) TextWidth(content string, font layout.FontResource, fontSize float64) (float64, error) {
	face, err := r.fontFace(font, fontSize, layout.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content), nil
}

// SplitText implements layout.Typesetter with greedy word wrapping.
func (r *Renderer) SplitText(content string, width float64, font layout.FontResource, fontSize float64) ([]string, error) {
	face, err := r.fontFace(font, fontSize, layout.Color{})
	if err != nil {
		return nil, err
	}
	return layout.WrapText(content, width, face.TextWidth), nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("canvas: nil layout result")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("canvas: no pages to render")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, y down, like the layout

		for _, tb := range page.Texts {
			if err := r.drawTextBox(ctx, tb, resolveFontResource(tb.Font, result.Resources.Fonts)); err != nil {
				return nil, fmt.Errorf("canvas: page %d: %w", i+1, err)
			}
		}
		c.RenderTo(writer)
		addLinks(writer, page)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvas: write pdf: %w", err)
	}
	logging.Logger().Debug("pdf rendered", "pages", len(result.Pages), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
	if meta.Language == "" {
		return
	}
	if lw, ok := any(writer).(interface{ SetLang(string) }); ok {
		lw.SetLang(meta.Language)
	}
}

// addLinks annotates the current PDF page when the writer supports URI links.
func addLinks(writer *pdf.PDF, page layout.Page) {
	if len(page.Links) == 0 {
		return
	}
	lw, ok := any(writer).(interface{ AddLink(string, canvas.Rect) })
	if !ok {
		logging.Logger().Debug("pdf writer has no link support, links dropped", "links", len(page.Links))
		return
	}
	for _, link := range page.Links {
		// PDF space has its origin at the bottom-left corner.
		bottom := page.Height - (link.Y + link.Height)
		rect := canvas.Rectangle(link.Width, link.Height).Translate(link.X, bottom).Bounds()
		lw.AddLink(link.URL, rect)
	}
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox, fontRes layout.FontResource) error {
	face, err := r.fontFace(fontRes, tb.FontSize, tb.Color)
	if err != nil {
		return err
	}
	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: tb.Content, Width: tb.Width}}
	}
	for i, line := range lines {
		if line.Content == "" {
			continue
		}
		baseline := tb.Y + float64(i)*tb.LineHeight
		ctx.DrawText(tb.X, baseline, canvas.NewTextLine(face, line.Content, canvas.Left))
	}
	return nil
}

func (r *Renderer) fontFace(font layout.FontResource, sizePt float64, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Family
	if familyName == "" {
		familyName = font.Name
	}
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)
	data, err := r.loadFontBytes(font)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("load font %s: %w", font.Name, err)
	}
	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	src := font.Src
	if src == "" {
		src = fonts.DefaultRegular
		if strings.Contains(strings.ToLower(font.Style), "bold") {
			src = fonts.DefaultBold
		}
	}
	if blob, ok := r.fontBlobs[src]; ok {
		return blob, nil
	}
	if strings.HasPrefix(src, "built-in:") {
		return nil, fmt.Errorf("font %s: no bytes injected for %s", font.Name, src)
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return nil, fmt.Errorf("font %s: remote source %s was not preloaded", font.Name, src)
	}
	data, err := fonts.Load(context.Background(), src)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", font.Name, err)
	}
	return data, nil
}

func resolveFontResource(name string, set map[string]layout.FontResource) layout.FontResource {
	if font, ok := set[name]; ok {
		return font
	}
	return layout.FontResource{Name: name}
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(style)
	result := canvas.FontRegular
	if strings.Contains(s, "bold") {
		result = canvas.FontBold
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
