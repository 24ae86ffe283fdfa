package profile

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The .cv format is a small block language:
//
//	cv {
//	  full_name: "Jane Doe"
//	  skills: ["Go", "SQL"]
//	  social { name: "GitHub"; url: "https://github.com/jane" }
//	  experience {
//	    company: "Acme"
//	    description: [
//	      "- first line"
//	      "- second line"
//	    ]
//	  }
//	}
//
// Text fields accept a string or a list of strings, joined with newlines.
// social, experience and education may repeat.
var (
	cvLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[][{}:,;]`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
	})

	cvParser = participle.MustBuild[document](
		participle.Lexer(cvLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

type document struct {
	Entries []*entry `parser:"Newline* 'cv' '{' ( Newline | ';' )* ( @@ ( Newline | ';' )* )* '}' Newline*"`
}

type entry struct {
	Pos  lexer.Position `parser:""`
	Key  string         `parser:"@Ident"`
	Body *entryBody     `parser:"@@"`
}

type entryBody struct {
	Value *value `parser:"  ':' @@"`
	Block *block `parser:"| @@"`
}

type value struct {
	Text *string    `parser:"  @String"`
	List *stringSeq `parser:"| @@"`
}

type stringSeq struct {
	Items []string `parser:"'[' ( Newline | ',' )* ( @String ( Newline | ',' )* )* ']'"`
}

type block struct {
	Entries []*entry `parser:"'{' ( Newline | ';' )* ( @@ ( Newline | ';' )* )* '}'"`
}

// Parse reads a .cv profile from r. name is used in error positions.
func Parse(name string, r io.Reader) (*Profile, error) {
	doc, err := cvParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return doc.profile()
}

// ParseString reads a .cv profile from a string.
func ParseString(name, input string) (*Profile, error) {
	doc, err := cvParser.ParseString(name, input)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return doc.profile()
}

// ParseBytes reads a .cv profile from a byte slice.
func ParseBytes(name string, data []byte) (*Profile, error) {
	doc, err := cvParser.ParseBytes(name, data)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return doc.profile()
}

func (d *document) profile() (*Profile, error) {
	p := &Profile{}
	err := decodeEntries("cv", d.Entries, fieldSet{
		"full_name": textField(&p.FullName),
		"title":     textField(&p.Title),
		"location":  textField(&p.Location),
		"languages": listField(&p.Languages),
		"summary":   textField(&p.Summary),
		"skills":    listField(&p.Skills),
		"contacts": blockField(func(entries []*entry) error {
			return decodeEntries("contacts", entries, fieldSet{
				"email": textField(&p.Contacts.Email),
			})
		}),
		"social": blockField(func(entries []*entry) error {
			var s SocialLink
			err := decodeEntries("social", entries, fieldSet{
				"name": textField(&s.Name),
				"url":  textField(&s.URL),
			})
			p.Social = append(p.Social, s)
			return err
		}),
		"experience": blockField(func(entries []*entry) error {
			var e Experience
			err := decodeEntries("experience", entries, fieldSet{
				"title":       textField(&e.Title),
				"company":     textField(&e.Company),
				"location":    textField(&e.Location),
				"dates":       textField(&e.Dates),
				"description": textField(&e.Description),
				"stack":       listField(&e.Stack),
			})
			p.Experience = append(p.Experience, e)
			return err
		}),
		"education": blockField(func(entries []*entry) error {
			var e Education
			err := decodeEntries("education", entries, fieldSet{
				"name":        textField(&e.Name),
				"degree":      textField(&e.Degree),
				"dates":       textField(&e.Dates),
				"description": textField(&e.Description),
			})
			p.Education = append(p.Education, e)
			return err
		}),
	})
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

type fieldSet map[string]func(*entry) error

func decodeEntries(scope string, entries []*entry, fields fieldSet) error {
	for _, e := range entries {
		decode, ok := fields[e.Key]
		if !ok {
			return fmt.Errorf("profile: %s: unknown field %q in %s", e.Pos, e.Key, scope)
		}
		if err := decode(e); err != nil {
			return err
		}
	}
	return nil
}

func textField(dst *string) func(*entry) error {
	return func(e *entry) error {
		v, err := e.value("text")
		if err != nil {
			return err
		}
		if v != nil && v.Text != nil {
			*dst = *v.Text
			return nil
		}
		*dst = strings.Join(v.items(), "\n")
		return nil
	}
}

func listField(dst *[]string) func(*entry) error {
	return func(e *entry) error {
		v, err := e.value("a list")
		if err != nil {
			return err
		}
		if v != nil && v.Text != nil {
			*dst = []string{*v.Text}
			return nil
		}
		*dst = append([]string(nil), v.items()...)
		return nil
	}
}

func (e *entry) value(want string) (*value, error) {
	if e.Body != nil && e.Body.Block != nil {
		return nil, fmt.Errorf("profile: %s: %s expects %s, got a block", e.Pos, e.Key, want)
	}
	if e.Body == nil {
		return nil, nil
	}
	return e.Body.Value, nil
}

func (v *value) items() []string {
	if v == nil || v.List == nil {
		return nil
	}
	return v.List.Items
}

func blockField(decode func([]*entry) error) func(*entry) error {
	return func(e *entry) error {
		if e.Body == nil || e.Body.Block == nil {
			return fmt.Errorf("profile: %s: %s expects a block", e.Pos, e.Key)
		}
		return decode(e.Body.Block.Entries)
	}
}
