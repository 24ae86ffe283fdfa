package compose

import (
	"fmt"

	"github.com/ayvaroff/ayvaroff.github.io/layout"
	"github.com/ayvaroff/ayvaroff.github.io/logging"
	"github.com/ayvaroff/ayvaroff.github.io/profile"
)

// Phase is the progress of a two-column composition.
type Phase int

const (
	PhaseComposingLeft Phase = iota
	PhaseComposingRight
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseComposingLeft:
		return "composing-left"
	case PhaseComposingRight:
		return "composing-right"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TwoColumn renders the main stream (name, title, About Me, Experience,
// Education) in a wide left column across as many pages as needed, then
// returns to the first page for a narrow sidebar with contacts, skills and
// languages.
//
// The sidebar is not re-targeted when it overflows; where its extra lines
// land depends on the Renderer's overflow policy.
type TwoColumn struct {
	// OnPhase, when set, observes every phase transition.
	OnPhase func(Phase)
}

var _ Composer = TwoColumn{}

func (TwoColumn) Name() string { return LayoutSidebar }

func (c TwoColumn) Compose(r *layout.Renderer, p *profile.Profile) error {
	geom := r.Geometry()
	leftWidth, rightWidth := geom.Columns()
	if leftWidth <= 0 || rightWidth <= 0 {
		return fmt.Errorf("compose: column ratio %g with padding %g leaves no room for two columns", geom.ColumnRatio, geom.ColumnPadding)
	}

	c.enter(PhaseComposingLeft, r)
	if err := c.composeLeft(r, p, leftWidth); err != nil {
		return err
	}

	c.enter(PhaseComposingRight, r)
	r.SetActivePage(0).
		SetCursorX(geom.RightColumnX()).
		ResetCursor()
	if err := c.composeRight(r, p, rightWidth); err != nil {
		return err
	}

	c.enter(PhaseDone, r)
	return nil
}

func (c TwoColumn) enter(phase Phase, r *layout.Renderer) {
	logging.Logger().Debug("column phase", "layout", LayoutSidebar, "phase", phase.String(), "page", r.ActivePage()+1, "pages", r.PageCount())
	if c.OnPhase != nil {
		c.OnPhase(phase)
	}
}

func (c TwoColumn) composeLeft(r *layout.Renderer, p *profile.Profile, width float64) error {
	r.MoveToNextLine(1).RenderText(p.FullName, nameStyle)
	if p.Title != "" {
		r.MoveToNextLine(1).RenderText(p.Title, layout.Style{FontStyle: layout.FontNormal, FontSize: 14, Color: ColorJet})
	}
	r.MoveToNextLine(2).
		RenderText("About Me", sectionTitleStyle).
		MoveToNextLine(1)
	paragraph(r, p.Summary, width, bodyStyle).MoveToNextLine(2)
	if err := r.Err(); err != nil {
		return fmt.Errorf("compose: left column header: %w", err)
	}

	r.RenderText("Experience", sectionTitleStyle).MoveToNextLine(1)
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
	return nil
}

func (c TwoColumn) composeRight(r *layout.Renderer, p *profile.Profile, width float64) error {
	r.MoveToNextLine(1).
		RenderText("Contacts", sectionTitleStyle).
		MoveToNextLine(1).
		RenderText("Email", labelStyle).
		MoveToNextLine(1)
	paragraph(r, p.Contacts.Email, width, bodyStyle)
	for _, s := range p.Social {
		r.MoveToNextLine(1).
			RenderText(s.Name, labelStyle).
			MoveToNextLine(1).
			RenderTextWithLink(linkText(s.URL), s.URL, bodyStyle)
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("compose: sidebar contacts: %w", err)
	}

	r.MoveToNextLine(2).
		RenderText("Skills", sectionTitleStyle).
		MoveToNextLine(1)
	paragraph(r, joinList(p.Skills), width, bodyStyle)
	r.MoveToNextLine(2).
		RenderText("Languages", sectionTitleStyle).
		MoveToNextLine(1)
	paragraph(r, joinList(p.Languages), width, bodyStyle)
	if err := r.Err(); err != nil {
		return fmt.Errorf("compose: sidebar skills: %w", err)
	}
	return nil
}
