package compose

import (
	"strings"

	"github.com/ayvaroff/ayvaroff.github.io/layout"
	"github.com/ayvaroff/ayvaroff.github.io/profile"
)

const listSeparator = " | "

// paragraph wraps text to width in style and draws it at the cursor.
func paragraph(r *layout.Renderer, text string, width float64, style layout.Style) *layout.Renderer {
	lines := r.SplitTextToSize(strings.TrimSpace(text), width, style)
	return r.RenderLines(lines, style)
}

// labeledList draws a bold label followed by items joined with " | ",
// wrapped to what is left of width after the label.
func labeledList(r *layout.Renderer, label string, items []string, width float64) *layout.Renderer {
	labelWidth := r.TextWidth(label, labelStyle)
	r.RenderText(label, labelStyle)
	return paragraph(r, joinList(items), width-labelWidth, valueStyle)
}

func joinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// linkText is the visible part of a social link.
func linkText(url string) string {
	return strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
}

func experienceEntry(r *layout.Renderer, e profile.Experience, width float64) {
	header := e.Company
	if e.Title != "" {
		header += " - " + e.Title
	}
	r.RenderText(header, entryHeaderStyle).
		MoveToNextLine(1).
		RenderText(e.Dates, metaStyle).
		MoveToNextLine(2)
	paragraph(r, e.Description, width, layout.Style{FontSize: DefaultFontSize}).
		MoveToNextLine(1)
	if len(e.Stack) > 0 {
		labeledList(r, "Stack: ", e.Stack, width)
	}
	r.MoveToNextLine(2)
}

func educationEntry(r *layout.Renderer, e profile.Education, width float64) {
	r.RenderText(e.Name, entryHeaderStyle).
		MoveToNextLine(1).
		RenderText(e.Degree, metaStyle).
		MoveToNextLine(1).
		RenderText(e.Dates, metaStyle).
		MoveToNextLine(2)
	paragraph(r, e.Description, width, layout.Style{FontSize: DefaultFontSize}).
		MoveToNextLine(2)
}
