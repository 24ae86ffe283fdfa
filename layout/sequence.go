package layout

import "fmt"

type pageAccumulator struct {
	texts []TextBox
	links []LinkBox
}

// pageSequence is the ordered, append-only list of pages. Pages are never
// removed or reordered; the active index selects where new elements go.
type pageSequence struct {
	width  float64
	height float64
	margin Margin
	accs   []*pageAccumulator
	active int
}

func newPageSequence(g Geometry) *pageSequence {
	s := &pageSequence{
		width:  g.PageWidth(),
		height: g.PageHeight(),
		margin: g.Margin(),
	}
	s.appendPage()
	return s
}

func (s *pageSequence) appendPage() int {
	s.accs = append(s.accs, &pageAccumulator{})
	s.active = len(s.accs) - 1
	return s.active
}

func (s *pageSequence) setActive(index int) error {
	if index < 0 || index >= len(s.accs) {
		return fmt.Errorf("%w: %d (have %d pages)", ErrPageOutOfRange, index, len(s.accs))
	}
	s.active = index
	return nil
}

func (s *pageSequence) len() int { return len(s.accs) }

func (s *pageSequence) curr() *pageAccumulator { return s.accs[s.active] }

func (s *pageSequence) pages() []Page {
	out := make([]Page, len(s.accs))
	for i, acc := range s.accs {
		out[i] = Page{
			Width:  s.width,
			Height: s.height,
			Margin: s.margin,
			Texts:  acc.texts,
			Links:  acc.links,
		}
	}
	return out
}
