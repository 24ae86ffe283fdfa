package compose

import (
	"fmt"

	"github.com/ayvaroff/ayvaroff.github.io/layout"
	"github.com/ayvaroff/ayvaroff.github.io/logging"
	"github.com/ayvaroff/ayvaroff.github.io/profile"
)

// SingleColumn lays the whole profile out as one chronological flow:
// identity, contacts, skills and languages, then About Me, Experience and
// Education.
type SingleColumn struct{}

var _ Composer = SingleColumn{}

func (SingleColumn) Name() string { return LayoutSingle }

func (SingleColumn) Compose(r *layout.Renderer, p *profile.Profile) error {
	logging.Logger().Debug("composing", "layout", LayoutSingle)
	width := r.PageContentWidth()

	r.MoveToNextLine(1).RenderText(p.FullName, nameStyle)
	if p.Title != "" {
		r.RenderText(" - "+p.Title, layout.Style{FontStyle: layout.FontNormal, Color: ColorJet})
	}
	r.MoveToNextLine(1).
		RenderText("Email: ", labelStyle).
		RenderText(p.Contacts.Email)
	for _, s := range p.Social {
		r.MoveToNextLine(1).
			RenderText(s.Name+": ").
			RenderTextWithLink(linkText(s.URL), s.URL)
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("compose: header: %w", err)
	}

	r.MoveToNextLine(2)
	labeledList(r, "Skills: ", p.Skills, width).MoveToNextLine(1)
	labeledList(r, "Languages: ", p.Languages, width).MoveToNextLine(1)
	if err := r.Err(); err != nil {
		return fmt.Errorf("compose: skills: %w", err)
	}

	r.MoveToNextLine(1).
		RenderText("About Me", sectionTitleStyle).
		MoveToNextLine(1)
	paragraph(r, p.Summary, width, bodyStyle).
		MoveToNextLine(2).
		RenderText("Experience", sectionTitleStyle).
		MoveToNextLine(1)
	for _, e := range p.Experience {
		experienceEntry(r, e, width)
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("compose: experience: %w", err)
	}

	r.MoveToNextLine(1).
		RenderText("Education", sectionTitleStyle).
		MoveToNextLine(1)
	for _, e := range p.Education {
		educationEntry(r, e, width)
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("compose: education: %w", err)
	}
	logging.Logger().Debug("composed", "layout", LayoutSingle, "pages", r.PageCount())
	return nil
}
