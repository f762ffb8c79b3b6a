package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens"
	"github.com/abhisek/lexiz/internal/screens/compose"
	"github.com/abhisek/lexiz/internal/screens/history"
	"github.com/abhisek/lexiz/internal/screens/library"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// Menu rows.
const (
	itemLessons = iota
	itemBuild
	itemResume
	itemReports
	itemExit
)

type latestLoadedMsg struct {
	report *store.StoredReport
	err    error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   *screens.Deps
	menu   components.Menu
	latest *store.StoredReport
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps *screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	push := func(s screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		itemLessons: {Label: "PLAY A LESSON", Action: func() tea.Cmd {
			return push(library.New(deps))()
		}},
		itemBuild: {Label: "BUILD A LESSON", Action: func() tea.Cmd {
			return push(compose.New(deps))()
		}},
		itemResume: {Label: "PLAY BUILT LESSON", Action: func() tea.Cmd {
			doc := deps.Slot.Peek()
			if doc == nil {
				return nil
			}
			return func() tea.Msg { return screens.PlayMsg{Doc: doc} }
		}},
		itemReports: {Label: "REPORTS", Action: func() tea.Cmd {
			return push(history.New(deps.Reports))()
		}},
		itemExit: {Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

// refresh enables rows whose collaborators have something to offer. The
// slot can fill while other screens are active, so it runs on every update.
func (h *HomeScreen) refresh() {
	items := h.menu.Items
	items[itemLessons].Disabled = h.deps.Catalog == nil || h.deps.Catalog.Len() == 0
	items[itemBuild].Disabled = h.deps.Builder == nil || h.deps.Slot == nil
	items[itemResume].Disabled = h.deps.Slot == nil || h.deps.Slot.Peek() == nil
	items[itemReports].Disabled = h.deps.Reports == nil
	if items[h.menu.Selected].Disabled {
		h.menu = components.NewMenu(items)
	}
}

// Init loads the newest stored report for the greeting line.
func (h *HomeScreen) Init() tea.Cmd {
	if h.deps.Reports == nil {
		return nil
	}
	repo := h.deps.Reports
	return func() tea.Msg {
		rep, err := repo.Latest(context.Background(), "")
		return latestLoadedMsg{report: rep, err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(latestLoadedMsg); ok {
		if m.err != nil {
			h.deps.Logger().Warn("load latest report", "error", m.err)
		}
		h.latest = m.report
		return h, nil
	}
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	sections := []string{renderBanner(cw, compact)}
	if !compact {
		sections = append(sections, renderOwl(h.latest != nil, cw))
	}
	sections = append(sections, h.statsBar(cw), h.menu.ButtonsView(buttonWidth, cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) statsBar(cw int) string {
	lessons := 0
	if h.deps.Catalog != nil {
		lessons = h.deps.Catalog.Len()
	}
	count := lipgloss.NewStyle().Foreground(theme.Glow).Bold(true).
		Render(fmt.Sprintf("★ %d LESSONS", lessons))

	last := lipgloss.NewStyle().Foreground(theme.TextDim).Render("NO REPORTS YET")
	if h.latest != nil {
		r := h.latest.Report
		last = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("LAST: %s · %d ATTEMPTS", r.LessonID, r.Attempts))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(count + "   " + last)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
