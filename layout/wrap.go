package layout

import (
	"math"
	"strings"
)

// WrapText greedily splits content into lines no wider than width, as measured
// by measure. Explicit line breaks are kept (blank lines included), words are
// joined by single spaces and a word wider than the limit is split by rune.
// Wrapping an already wrapped line to the same width returns it unchanged.
func WrapText(content string, width float64, measure func(string) float64) []string {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	content = strings.ReplaceAll(content, "\r", "")

	var lines []string
	for _, paragraph := range strings.Split(content, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= limit {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			if measure(word) <= limit {
				current = word
				continue
			}
			chunks := splitWordByWidth(word, limit, measure)
			lines = append(lines, chunks[:len(chunks)-1]...)
			current = chunks[len(chunks)-1]
		}
		lines = append(lines, current)
	}
	return lines
}

func splitWordByWidth(word string, limit float64, measure func(string) float64) []string {
	var parts []string
	var builder strings.Builder
	for _, r := range word {
		if builder.Len() > 0 && measure(builder.String()+string(r)) > limit {
			parts = append(parts, builder.String())
			builder.Reset()
		}
		builder.WriteRune(r)
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
