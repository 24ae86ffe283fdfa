package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ayvaroff/ayvaroff.github.io/compose"
	"github.com/ayvaroff/ayvaroff.github.io/fonts"
	"github.com/ayvaroff/ayvaroff.github.io/layout"
	"github.com/ayvaroff/ayvaroff.github.io/logging"
	"github.com/ayvaroff/ayvaroff.github.io/profile"
	canvasrenderer "github.com/ayvaroff/ayvaroff.github.io/renderer/canvas"
)

type config struct {
	input       string
	output      string
	debug       string
	layout      string
	overflow    string
	pageSize    string
	margin      string
	fontRegular string
	fontBold    string
	fontTimeout time.Duration
	verbose     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "in", "content/profile.cv", "profile file (.cv or .json)")
	flag.StringVar(&cfg.output, "out", "docs/CV.pdf", "PDF output path")
	flag.StringVar(&cfg.debug, "debug", "", "write the layout as JSON to this path")
	flag.StringVar(&cfg.layout, "layout", compose.LayoutSingle, "layout style: single or sidebar")
	flag.StringVar(&cfg.overflow, "overflow", "append", "where sidebar overflow goes: append or next")
	flag.StringVar(&cfg.pageSize, "page", "a4", "page size: a4, a5, letter or legal")
	flag.StringVar(&cfg.margin, "margin", "13mm", "page margin, e.g. 13mm, 1.5cm or 36pt")
	flag.StringVar(&cfg.fontRegular, "font-regular", fonts.DefaultRegular, "regular face: URL, file path or embed:<name>")
	flag.StringVar(&cfg.fontBold, "font-bold", fonts.DefaultBold, "bold face: URL, file path or embed:<name>")
	flag.DurationVar(&cfg.fontTimeout, "font-timeout", fonts.DefaultTimeout, "timeout for downloading fonts")
	flag.BoolVar(&cfg.verbose, "v", false, "log layout decisions")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("generate CV: %v", err)
	}
	fmt.Printf("CV written to %s\n", cfg.output)
}

// run loads the profile and fonts, lays the document out and writes the PDF.
func run(ctx context.Context, cfg config) error {
	p, err := profile.LoadFile(cfg.input)
	if err != nil {
		return err
	}
	overflow, err := layout.ParseOverflowPolicy(cfg.overflow)
	if err != nil {
		return err
	}
	geom, err := geometry(cfg.pageSize, cfg.margin)
	if err != nil {
		return err
	}

	blobs, err := loadFonts(ctx, cfg.fontTimeout, cfg.fontRegular, cfg.fontBold)
	if err != nil {
		return err
	}
	backend := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: blobs})

	opts := compose.DefaultOptions()
	opts.Layout = cfg.layout
	opts.Geometry = geom
	opts.Overflow = overflow
	opts.Fonts = compose.DefaultFonts(cfg.fontRegular, cfg.fontBold)

	result, err := compose.Build(backend, p, opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if cfg.debug != "" {
		if err := writeDebug(result, cfg.debug); err != nil {
			return err
		}
	}

	pdfBytes, err := backend.Render(result)
	if err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(cfg.output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}

// geometry applies the page size and margin flags to the default CV geometry.
func geometry(pageSize, margin string) (layout.Geometry, error) {
	g := compose.DefaultOptions().Geometry
	size, err := layout.LookupPageSize(pageSize)
	if err != nil {
		return g, err
	}
	g.Size = size
	if margin != "" {
		m, err := layout.ParseLength(margin)
		if err != nil {
			return g, fmt.Errorf("margin: %w", err)
		}
		g.MarginHorizontal = m.ToMM()
		g.MarginVertical = m.ToMM()
	}
	return g, g.Validate()
}

// loadFonts fetches and validates every source before any layout work.
func loadFonts(ctx context.Context, timeout time.Duration, srcs ...string) (map[string][]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	var loader fonts.Loader
	blobs := make(map[string][]byte, len(srcs))
	for _, src := range srcs {
		if _, ok := blobs[src]; ok {
			continue
		}
		face, err := loader.LoadFace(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		logging.Logger().Debug("font ready", "src", src, "family", face.Family, "bytes", len(face.Data))
		blobs[src] = face.Data
	}
	return blobs, nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("write debug JSON: %w", err)
	}
	return nil
}
