package player

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// cardModel flips through the lesson's words one card at a time. It backs
// lessons that declare no activity section.
type cardModel struct {
	items []lesson.Item
	index int
}

func newCardModel(doc *lesson.Document) cardModel {
	var items []lesson.Item
	for _, it := range doc.Items {
		if lesson.Word(it) != "" {
			items = append(items, it)
		}
	}
	return cardModel{items: items}
}

func (m *cardModel) update(s *Screen, key string) {
	if len(m.items) == 0 {
		return
	}
	switch key {
	case "left", "h":
		m.index = (m.index + len(m.items) - 1) % len(m.items)
	case "right", "l":
		m.index = (m.index + 1) % len(m.items)
	case "enter", "space":
		it := m.items[m.index]
		s.run.MarkVisited(it.ItemID())
		s.run.OpenItemByID(it.ItemID())
	}
}

func (m *cardModel) view(s *Screen, width int) string {
	if len(m.items) == 0 {
		return theme.Hint.Render("This lesson has no words yet.")
	}
	it := m.items[m.index]
	face := "?"
	if s.state.IsVisited(it.ItemID()) {
		face = lesson.Word(it)
	}
	card := components.Card(
		lipgloss.NewStyle().Foreground(theme.Glow).Bold(true).Render(face),
		min(components.ContentWidth(width), 40))
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, card),
		theme.Subtitle.Render(fmt.Sprintf("card %d of %d", m.index+1, len(m.items))),
	)
}
