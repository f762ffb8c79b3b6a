package player

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// defaultMaxBubbles caps how many bubbles float at once when the lesson does
// not say.
const defaultMaxBubbles = 6

// bubbleModel floats one bubble per vocabulary word. Popped bubbles are
// remembered by the runner's visited set under their bubble id.
type bubbleModel struct {
	items    []*lesson.VocabItem
	max      int
	selected int
}

func newBubbleModel(doc *lesson.Document) bubbleModel {
	m := bubbleModel{items: doc.VocabItems(), max: defaultMaxBubbles}
	if fb := doc.Defaults.FloatingBubble; fb != nil && fb.MaxBubbles > 0 {
		m.max = fb.MaxBubbles
	}
	return m
}

func bubbleID(itemID string) string { return "bubble-" + itemID }

// floating returns the unpopped bubbles currently on screen.
func (m *bubbleModel) floating(st runner.State) []*lesson.VocabItem {
	var out []*lesson.VocabItem
	for _, it := range m.items {
		if st.IsVisited(bubbleID(it.ID)) {
			continue
		}
		out = append(out, it)
		if len(out) == m.max {
			break
		}
	}
	return out
}

func (m *bubbleModel) popped(st runner.State) int {
	n := 0
	for _, it := range m.items {
		if st.IsVisited(bubbleID(it.ID)) {
			n++
		}
	}
	return n
}

func (m *bubbleModel) update(s *Screen, key string) {
	visible := m.floating(s.state)
	if len(visible) == 0 {
		return
	}
	m.selected = min(m.selected, len(visible)-1)

	switch key {
	case "left", "up", "h", "k":
		m.selected = (m.selected + len(visible) - 1) % len(visible)
	case "right", "down", "l", "j":
		m.selected = (m.selected + 1) % len(visible)
	case "enter", "space":
		it := visible[m.selected]
		s.run.TrackBubblePop()
		s.run.MarkVisited(bubbleID(it.ID))
		s.run.OpenItemByID(it.ID)
	}
}

func (m *bubbleModel) view(s *Screen, width int) string {
	visible := m.floating(s.state)
	if len(visible) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Correct.Render("\nEvery bubble is popped!"))
	}
	sel := min(m.selected, len(visible)-1)

	// Alternate heights so the row reads as floating.
	bubbles := make([]string, 0, len(visible))
	for i, it := range visible {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Bubble).
			Foreground(theme.Bubble).
			Padding(1, 2).
			MarginTop((i * 3) % 4)
		if i == sel {
			style = style.BorderForeground(theme.Glow).Foreground(theme.Glow).Bold(true)
		}
		bubbles = append(bubbles, style.Render(it.Word))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, joinWith(bubbles, "  ")...)

	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Hint.Render("Pop a bubble to hear its word."),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, row),
	)
}

func joinWith(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, strings.Repeat(" ", lipgloss.Width(sep)))
		}
		out = append(out, p)
	}
	return out
}
