package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/perf"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Reports []store.StoredReport
	Err     error
}

// HistoryScreen lists exported performance reports, newest first.
type HistoryScreen struct {
	repo     store.ReportRepo
	reports  []store.StoredReport
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. A nil repo shows an empty history.
func New(repo store.ReportRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		reports, err := repo.List(ctx, store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Reports: reports, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Reports"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Reports returns the loaded rows.
func (s *HistoryScreen) Reports() []store.StoredReport { return s.reports }

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.reports = msg.Reports
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.reports)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.reports) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading reports...")
	}
	if len(s.reports) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No reports yet. Finish a lesson to see one here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, row := range s.reports {
		rep := row.Report
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-28s  %d attempts",
			prefix, formatWhen(rep.Timestamp), rep.LessonID, rep.Attempts)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(rep.Summary()) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func details(sum perf.Summary) []string {
	lines := []string{
		fmt.Sprintf("Recognition     %d/%d  %3.0f%%", sum.Room2DFound, sum.Room2DTargets, sum.RecognitionAccuracy()*100),
		fmt.Sprintf("Recall          %d/%d  %3.0f%%", sum.BubblePopped, sum.BubbleTotal, sum.RecallAccuracy()*100),
		fmt.Sprintf("Discrimination  %d/%d  %3.0f%%", sum.PicCorrect, sum.PicTotal, sum.DiscriminationAccuracy()*100),
		fmt.Sprintf("Sentences       %d correct", sum.SentenceCorrect),
	}
	if sum.Room2DMisTaps > 0 {
		lines = append(lines, fmt.Sprintf("Mis-taps        %d", sum.Room2DMisTaps))
	}
	return lines
}

func formatWhen(ts string) string {
	t, err := time.Parse(perf.TimestampLayout, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("Jan 02, 2006 15:04")
}
