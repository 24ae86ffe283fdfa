// Package profile holds the CV content record and loads it from the .cv text
// format or from JSON.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingName is returned for a profile without a full name.
var ErrMissingName = errors.New("profile: full_name is required")

// Profile is the content rendered into the CV. It is read-only during layout.
type Profile struct {
	FullName   string       `json:"full_name"`
	Title      string       `json:"title"`
	Location   string       `json:"location"`
	Languages  []string     `json:"languages"`
	Contacts   Contacts     `json:"contacts"`
	Social     []SocialLink `json:"social"`
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

type Contacts struct {
	Email string `json:"email"`
}

// SocialLink is rendered as "<Name>: <URL without scheme>" and bound to URL.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Dates       string   `json:"dates"`
	Description string   `json:"description"`
	Stack       []string `json:"stack"`
}

type Education struct {
	Name        string `json:"name"`
	Degree      string `json:"degree"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

// Validate checks the fields every layout depends on.
func (p *Profile) Validate() error {
	if p == nil || strings.TrimSpace(p.FullName) == "" {
		return ErrMissingName
	}
	for i, s := range p.Social {
		if s.Name == "" || s.URL == "" {
			return fmt.Errorf("profile: social entry %d needs a name and a url", i+1)
		}
	}
	return nil
}

// Data returns the profile as generic maps keyed by the JSON field names,
// the shape expected by the binding package.
func (p *Profile) Data() (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("profile: encode: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	return out, nil
}

// DecodeJSON reads a profile from JSON. Unknown fields are ignored.
func DecodeJSON(data []byte) (*Profile, error) {
	var p Profile
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("profile: decode json: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads a profile, choosing the format by extension: .json for JSON,
// anything else for the .cv text format.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(data)
	}
	p, err := ParseBytes(path, data)
	if err != nil {
		return nil, err
	}
	return p, nil
}
