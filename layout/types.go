package layout

import "time"

// This file defines the layout result shared by the cursor engine, the PDF
// backend and the debug JSON output. Coordinates are millimeters with the
// origin at the top-left corner of the page.

// Result holds the laid-out pages together with fonts and document metadata.
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet records the fonts referenced by text boxes.
type ResourceSet struct {
	Fonts map[string]FontResource `json:"fonts"`
}

// FontResource describes a font face. Src may be a file path, "embed:<name>"
// or "built-in:<name>" for bytes injected into the backend.
type FontResource struct {
	Name   string `json:"name"`
	Src    string `json:"src"`
	Style  string `json:"style"`
	Family string `json:"family"`
}

// Color uses 0-255 RGB components.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Page records the page size and the elements placed on it.
type Page struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Margin Margin    `json:"margin"`
	Texts  []TextBox `json:"texts"`
	Links  []LinkBox `json:"links,omitempty"`
}

// Margin is expressed in millimeters.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextBox is a positioned run of one or more lines. Y is the baseline of the
// first line; following lines sit LineHeight apart. FontSize is in points.
type TextBox struct {
	Content    string     `json:"content"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	LineHeight float64    `json:"lineHeight"`
	Font       string     `json:"font"`
	FontSize   float64    `json:"fontSize"`
	Color      Color      `json:"color"`
	Lines      []TextLine `json:"lines"`
}

// TextLine is a single drawn line and its measured width.
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// LinkBox is a clickable rectangle. Y is the top edge.
type LinkBox struct {
	URL    string  `json:"url"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentMeta holds the PDF document properties.
type DocumentMeta struct {
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Subject      string    `json:"subject"`
	Creator      string    `json:"creator"`
	Keywords     []string  `json:"keywords"`
	Language     string    `json:"language"`
	CreationDate time.Time `json:"creationDate"`
}
