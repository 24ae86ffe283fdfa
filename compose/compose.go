// Package compose turns a profile into laid-out pages. A Composer decides
// which blocks go where; the layout.Renderer it drives owns the cursor and
// page breaks.
package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-text/typesetting/language"

	"github.com/ayvaroff/ayvaroff.github.io/binding"
	"github.com/ayvaroff/ayvaroff.github.io/fonts"
	"github.com/ayvaroff/ayvaroff.github.io/layout"
	"github.com/ayvaroff/ayvaroff.github.io/logging"
	"github.com/ayvaroff/ayvaroff.github.io/profile"
)

const (
	LayoutSingle  = "single"
	LayoutSidebar = "sidebar"

	// FontFamily is the family name the composers' font styles resolve in.
	FontFamily = "body"

	DefaultTitleTemplate = "${full_name}'s CV"
	DefaultCreator       = "ayvaroff.github.io cvpdf"
)

// Composer emits the blocks of one layout style through a Renderer.
type Composer interface {
	Name() string
	Compose(r *layout.Renderer, p *profile.Profile) error
}

// ComposerFor returns the composer registered under name.
func ComposerFor(name string) (Composer, error) {
	switch strings.ToLower(name) {
	case "", LayoutSingle:
		return SingleColumn{}, nil
	case LayoutSidebar, "two-column":
		return TwoColumn{}, nil
	default:
		return nil, fmt.Errorf("compose: unknown layout %q (want %s or %s)", name, LayoutSingle, LayoutSidebar)
	}
}

// Options configures Build.
type Options struct {
	Layout   string
	Composer Composer // overrides Layout when set

	Geometry         layout.Geometry
	LineHeightFactor float64
	Overflow         layout.OverflowPolicy

	// Fonts are registered under FontFamily; their Style picks the face.
	Fonts []layout.FontResource

	TitleTemplate string
	Language      string
	Creator       string
	Now           func() time.Time
}

// DefaultOptions is the A4 CV: 13mm margins, 11pt body text, line-height
// factor 1.2, a 75/25 column split and the bundled Latin Modern faces.
func DefaultOptions() Options {
	g := layout.DefaultGeometry()
	g.MarginHorizontal = PageMargin
	g.MarginVertical = PageMargin
	return Options{
		Layout:           LayoutSingle,
		Geometry:         g,
		LineHeightFactor: LineHeightFactor,
		Overflow:         layout.OverflowAppend,
		Fonts:            DefaultFonts(fonts.DefaultRegular, fonts.DefaultBold),
		TitleTemplate:    DefaultTitleTemplate,
		Language:         "en",
		Creator:          DefaultCreator,
		Now:              time.Now,
	}
}

// DefaultFonts declares a regular and a bold face for FontFamily.
func DefaultFonts(regularSrc, boldSrc string) []layout.FontResource {
	return []layout.FontResource{
		{Name: FontFamily + "-normal", Family: FontFamily, Style: string(layout.FontNormal), Src: regularSrc},
		{Name: FontFamily + "-bold", Family: FontFamily, Style: string(layout.FontBold), Src: boldSrc},
	}
}

// Build lays p out with ts as the measuring backend and returns the pages
// together with the document metadata.
func Build(ts layout.Typesetter, p *profile.Profile, opts Options) (*layout.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	composer := opts.Composer
	if composer == nil {
		var err error
		if composer, err = ComposerFor(opts.Layout); err != nil {
			return nil, err
		}
	}

	r, err := layout.NewRenderer(ts, layout.Options{
		Geometry:         opts.Geometry,
		LineHeightFactor: opts.LineHeightFactor,
		FontFamily:       FontFamily,
		DefaultStyle:     layout.Style{FontStyle: layout.FontNormal, FontSize: DefaultFontSize, Color: ColorBlack},
		Overflow:         opts.Overflow,
	})
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	for _, f := range opts.Fonts {
		r.RegisterFont(f)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	start := time.Now()
	if err := composer.Compose(r, p); err != nil {
		return nil, err
	}
	meta, err := Metadata(p, opts)
	if err != nil {
		return nil, err
	}
	res, err := r.Result(meta)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	logging.Logger().Info("layout complete", "layout", composer.Name(), "pages", len(res.Pages), "elapsed", time.Since(start))
	return res, nil
}

// Metadata derives the document properties from the profile.
func Metadata(p *profile.Profile, opts Options) (layout.DocumentMeta, error) {
	tmpl := opts.TitleTemplate
	if tmpl == "" {
		tmpl = DefaultTitleTemplate
	}
	data, err := p.Data()
	if err != nil {
		return layout.DocumentMeta{}, err
	}
	title, err := binding.Expand(tmpl, data)
	if err != nil {
		return layout.DocumentMeta{}, fmt.Errorf("compose: title template: %w", err)
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	meta := layout.DocumentMeta{
		Title:        title,
		Author:       p.FullName,
		Subject:      p.Title,
		Creator:      opts.Creator,
		Keywords:     p.Skills,
		CreationDate: now(),
	}
	if opts.Language != "" {
		meta.Language = string(language.NewLanguage(opts.Language))
	}
	return meta, nil
}
