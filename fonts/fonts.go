// Package fonts acquires font bytes for the PDF backend. A source is either
// "embed:<name>" for one of the bundled Latin Modern faces, an http(s) URL,
// or a path on disk.
package fonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font/sfnt"

	"github.com/ayvaroff/ayvaroff.github.io/logging"
)

// ErrEmptyFont is returned when a source yields no bytes.
var ErrEmptyFont = errors.New("fonts: empty font data")

const (
	EmbedPrefix = "embed:"

	// DefaultRegular and DefaultBold are used when no font source is configured.
	DefaultRegular = EmbedPrefix + "lmsans10-regular"
	DefaultBold    = EmbedPrefix + "lmsans10-bold"

	// DefaultTimeout bounds a single HTTP font download.
	DefaultTimeout = 30 * time.Second

	maxFontSize = 32 << 20
)

var embedded = map[string][]byte{
	"lmsans10-regular":  lmsans10regular.TTF,
	"lmsans10-bold":     lmsans10bold.TTF,
	"lmroman10-regular": lmroman10regular.TTF,
	"lmroman10-bold":    lmroman10bold.TTF,
}

// EmbeddedNames lists the faces available through the embed: prefix.
func EmbeddedNames() []string {
	names := make([]string, 0, len(embedded))
	for name := range embedded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Embedded returns the bytes of a bundled face. The embed: prefix is optional.
func Embedded(name string) ([]byte, error) {
	data, ok := embedded[strings.TrimPrefix(name, EmbedPrefix)]
	if !ok {
		return nil, fmt.Errorf("fonts: unknown embedded font %q (have %s)", name, strings.Join(EmbeddedNames(), ", "))
	}
	return data, nil
}

// Loader resolves font sources. The zero value uses http.DefaultClient.
type Loader struct {
	Client *http.Client
}

// Load resolves src with a default Loader.
func Load(ctx context.Context, src string) ([]byte, error) {
	var l Loader
	return l.Load(ctx, src)
}

// Load returns the bytes behind src. HTTP downloads honour ctx cancellation.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case src == "":
		return nil, fmt.Errorf("fonts: empty source")
	case strings.HasPrefix(src, EmbedPrefix):
		data, err = Embedded(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		data, err = l.fetch(ctx, src)
	default:
		data, err = os.ReadFile(src)
		if err != nil {
			err = fmt.Errorf("fonts: read %s: %w", src, err)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFont, src)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fonts: build request for %s: %w", url, err)
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fonts: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fonts: fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontSize))
	if err != nil {
		return nil, fmt.Errorf("fonts: read body of %s: %w", url, err)
	}
	logging.Logger().Debug("font fetched", "url", url, "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

// Validate parses data as TrueType/OpenType and returns its family name.
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFont
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return "", fmt.Errorf("fonts: parse font: %w", err)
	}
	if f.UnitsPerEm() == 0 {
		return "", fmt.Errorf("fonts: invalid unitsPerEm")
	}
	name, err := f.Name(&sfnt.Buffer{}, sfnt.NameIDFamily)
	if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
		return "", fmt.Errorf("fonts: read family name: %w", err)
	}
	return name, nil
}

// Face is a loaded and validated font.
type Face struct {
	Src    string
	Family string
	Data   []byte
}

// LoadFace loads src and validates the result.
func (l *Loader) LoadFace(ctx context.Context, src string) (Face, error) {
	data, err := l.Load(ctx, src)
	if err != nil {
		return Face{}, err
	}
	family, err := Validate(data)
	if err != nil {
		return Face{}, fmt.Errorf("%s: %w", src, err)
	}
	return Face{Src: src, Family: family, Data: data}, nil
}
