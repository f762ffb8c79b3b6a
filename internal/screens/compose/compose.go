// Package compose lets an adult assemble a lesson from the
// master template by ticking activities.
package compose

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
	"github.com/abhisek/lexiz/internal/variant"
)

var details = map[lesson.UIMode]string{
	lesson.ModeRoom2D:          "find things in the room",
	lesson.ModePicSelection:    "pick the right picture",
	lesson.ModeFloatingBubble:  "pop word bubbles",
	lesson.ModeSentenceBuilder: "fill in a sentence",
}

// ComposeScreen builds a lesson variant and hands it to the player through
// the lesson slot.
type ComposeScreen struct {
	deps  *screens.Deps
	modes []lesson.UIMode
	list  components.Checklist
	err   string
}

var _ screen.Screen = (*ComposeScreen)(nil)
var _ screen.KeyHintProvider = (*ComposeScreen)(nil)

// New offers every selectable activity in priority order.
func New(deps *screens.Deps) *ComposeScreen {
	modes := append([]lesson.UIMode(nil), variant.Priority...)
	items := make([]components.ChecklistItem, len(modes))
	for i, m := range modes {
		items[i] = components.ChecklistItem{Label: m.DisplayName(), Detail: details[m]}
	}
	return &ComposeScreen{deps: deps, modes: modes, list: components.NewChecklist(items)}
}

func (s *ComposeScreen) Init() tea.Cmd { return nil }

func (s *ComposeScreen) Title() string { return "Build a Lesson" }

func (s *ComposeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Build & play"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the ticked modes in the order they were ticked.
func (s *ComposeScreen) Selected() []lesson.UIMode {
	var out []lesson.UIMode
	for _, i := range s.list.Checked() {
		out = append(out, s.modes[i])
	}
	return out
}

func (s *ComposeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if kmsg.String() != "enter" {
		s.err = ""
		s.list, _ = s.list.Update(kmsg)
		return s, nil
	}

	doc, err := s.deps.Builder.Build(s.Selected())
	if err != nil {
		if errors.Is(err, variant.ErrEmptySelection) {
			s.err = "Tick at least one activity."
		} else {
			s.err = err.Error()
		}
		return s, nil
	}
	s.deps.Slot.Set(doc)
	s.deps.Logger().Info("lesson built", "lesson_id", doc.LessonID)

	built, err := s.deps.Slot.Get()
	if err != nil {
		s.err = err.Error()
		return s, nil
	}
	return s, func() tea.Msg { return screens.PlayMsg{Doc: built, Replace: true} }
}

func (s *ComposeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := theme.Subtitle.Width(cw).Render("Choose the activities for your lesson") +
		"\n\n" + s.list.View()
	if s.err != "" {
		body += "\n" + theme.Incorrect.Render(s.err)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw))
}
