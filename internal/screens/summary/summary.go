// Package summary shows how a finished session went, exports its report
// once and recommends what to play next.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/adaptive"
	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/perf"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// exportTimeout bounds one report export.
const exportTimeout = 10 * time.Second

type exportedMsg struct {
	err error
}

// SummaryScreen displays the results of a finished session.
type SummaryScreen struct {
	deps    *screens.Deps
	run     *runner.Runner
	summary perf.Summary
	report  perf.Report

	next     *lesson.Document
	decision adaptive.Decision

	exporting bool
	exported  bool
	exportErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.Leaver = (*SummaryScreen)(nil)

// New snapshots run and picks the recommended next lesson. Without a
// catalog the recommendation stays within the finished lesson.
func New(deps *screens.Deps, run *runner.Runner) *SummaryScreen {
	s := &SummaryScreen{
		deps:    deps,
		run:     run,
		summary: run.Summary(),
		report:  run.Report(),
	}

	if deps.Catalog != nil {
		if doc, d, ok := deps.Catalog.Next(s.summary); ok {
			s.next, s.decision = doc, d
		}
	}
	if s.next == nil {
		doc := run.Document()
		s.next = doc
		s.decision = adaptive.Decide(adaptive.CandidatesFrom([]*lesson.Document{doc}), s.summary)
	}
	return s
}

// Init exports the report. A session exports at most once.
func (s *SummaryScreen) Init() tea.Cmd {
	if s.exported || s.exporting {
		return nil
	}
	s.exporting = true
	saver := s.deps.Saver(s.run.SessionID())
	rep := s.report
	log := s.deps.Logger()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		err := perf.Export(ctx, saver, rep)
		if err != nil {
			log.Warn("export failed", "lesson_id", rep.LessonID, "error", err)
		} else {
			log.Info("report exported", "lesson_id", rep.LessonID, "file", rep.Filename())
		}
		return exportedMsg{err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Lesson Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play next"},
		{Key: "Esc", Description: "Home"},
	}
}

// Decision returns the routing outcome shown to the learner.
func (s *SummaryScreen) Decision() adaptive.Decision { return s.decision }

// Next returns the recommended lesson.
func (s *SummaryScreen) Next() *lesson.Document { return s.next }

// Leave ends the session if it is still the live one.
func (s *SummaryScreen) Leave() {
	if cur, ok := s.deps.Host.Current(); ok && cur == s.run {
		s.deps.Host.Unload()
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportedMsg:
		s.exporting = false
		s.exported = true
		s.exportErr = msg.err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			s.Leave()
			play := screens.PlayMsg{Doc: s.next, Mode: s.decision.Mode, Replace: true}
			return s, func() tea.Msg { return play }
		case "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sum := s.summary

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Well done!"))
	b.WriteString("\n\n")

	barWidth := min(cw, 56)
	if sum.Room2DTargets > 0 {
		b.WriteString(components.NewCountBar("Room objects ", sum.Room2DFound, sum.Room2DTargets, barWidth).View())
		b.WriteString("\n")
	}
	if sum.BubbleTotal > 0 {
		b.WriteString(components.NewCountBar("Bubbles      ", sum.BubblePopped, sum.BubbleTotal, barWidth).View())
		b.WriteString("\n")
	}
	if sum.PicTotal > 0 {
		b.WriteString(components.NewCountBar("Pictures     ", sum.PicCorrect, sum.PicTotal, barWidth).View())
		b.WriteString("\n")
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("Sentences right: %d   Mis-taps: %d   Attempts: %d",
		sum.SentenceCorrect, sum.Room2DMisTaps, sum.Attempts)))
	b.WriteString("\n\n")
	b.WriteString(s.exportLine())
	b.WriteString("\n\n")
	b.WriteString(s.nextLine())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw))
}

func (s *SummaryScreen) exportLine() string {
	switch {
	case s.exporting:
		return theme.Hint.Render("Saving report...")
	case s.exportErr != nil:
		return theme.Incorrect.Render("Report not saved: " + s.exportErr.Error())
	case s.exported:
		return theme.Correct.Render("Report saved: " + s.report.Filename())
	default:
		return ""
	}
}

func (s *SummaryScreen) nextLine() string {
	title := s.next.Title
	if s.decision.Mode != "" {
		title += " · " + s.decision.Mode.DisplayName()
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Up next: "+title) +
		"\n" + theme.Hint.Render("Why: "+s.decision.Reason)
}
