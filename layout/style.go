package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// FontStyle selects a registered face within the active font family.
type FontStyle string

const (
	FontNormal FontStyle = "normal"
	FontBold   FontStyle = "bold"
	FontItalic FontStyle = "italic"
)

// Style carries optional text attributes. Zero fields mean "keep the current
// value", so a Style passed to a render call only overrides what it sets.
type Style struct {
	FontStyle FontStyle `json:"fontStyle,omitempty"`
	FontSize  float64   `json:"fontSize,omitempty"` // pt
	Color     string    `json:"color,omitempty"`    // #rgb or #rrggbb
}

// Merge returns s with every field set in over replacing its counterpart.
func (s Style) Merge(over Style) Style {
	if over.FontStyle != "" {
		s.FontStyle = over.FontStyle
	}
	if over.FontSize > 0 {
		s.FontSize = over.FontSize
	}
	if over.Color != "" {
		s.Color = over.Color
	}
	return s
}

func mergeStyles(base Style, overrides []Style) Style {
	for _, o := range overrides {
		base = base.Merge(o)
	}
	return base
}

// ParseColor parses #rgb, #rrggbb and #rrggbbaa (alpha ignored).
func ParseColor(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) == 3 {
		v = strings.Repeat(v[0:1], 2) + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2)
	}
	if len(v) != 6 && len(v) != 8 {
		return Color{}, fmt.Errorf("layout: cannot parse color %q", value)
	}
	var rgb [3]int
	for i := range rgb {
		n, err := strconv.ParseUint(v[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("layout: cannot parse color %q: %w", value, err)
		}
		rgb[i] = int(n)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}
