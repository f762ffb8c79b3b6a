// Package library lists the catalog's lessons.
package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// LibraryScreen picks a lesson to play.
type LibraryScreen struct {
	deps *screens.Deps
	menu components.Menu
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New lists every catalog lesson with the activities it offers.
func New(deps *screens.Deps) *LibraryScreen {
	var items []components.MenuItem
	if deps.Catalog != nil {
		for _, doc := range deps.Catalog.Lessons {
			items = append(items, components.MenuItem{
				Label:  doc.Title,
				Detail: modeList(doc),
				Action: func() tea.Cmd {
					return func() tea.Msg { return screens.PlayMsg{Doc: doc} }
				},
			})
		}
	}
	return &LibraryScreen{deps: deps, menu: components.NewMenu(items)}
}

func modeList(doc *lesson.Document) string {
	modes := lesson.AvailableModes(doc)
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.DisplayName()
	}
	return strings.Join(names, ", ")
}

func (s *LibraryScreen) Init() tea.Cmd { return nil }

func (s *LibraryScreen) Title() string { return "Lessons" }

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LibraryScreen) View(width, height int) string {
	if len(s.menu.Items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons found. Point lessons.dir at a folder of lesson files.")
	}
	heading := theme.Title.Width(width).Render(fmt.Sprintf("%d lessons", len(s.menu.Items)))
	return heading + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View())
}
