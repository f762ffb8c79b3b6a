// Package player is the screen that runs a lesson session. Every learner
// action is forwarded to the runner; the view is drawn from the latest
// runner.State the screen received through its subscription.
package player

import (
	"fmt"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens"
	"github.com/abhisek/lexiz/internal/screens/summary"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// Screen plays one lesson.
type Screen struct {
	deps  *screens.Deps
	doc   *lesson.Document
	run   *runner.Runner
	state runner.State
	unsub func()
	err   error

	active   lesson.UIMode
	room     roomModel
	bubbles  bubbleModel
	pictures pictureModel
	sentence sentenceModel
	cards    cardModel

	closeBtn components.Button
	notice   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Leaver = (*Screen)(nil)
var _ screen.EscapeCapturer = (*Screen)(nil)
var _ layout.StatusProvider = (*Screen)(nil)

// New loads doc into the shared runner host in its first available mode.
func New(deps *screens.Deps, doc *lesson.Document) *Screen {
	return NewAt(deps, doc, "")
}

// NewAt loads doc and switches to mode when it is not empty. Returning to a
// lesson that is still live resumes its session. A lesson that fails
// validation leaves the previous session untouched and renders the error.
func NewAt(deps *screens.Deps, doc *lesson.Document, mode lesson.UIMode) *Screen {
	s := &Screen{deps: deps, doc: doc}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(1, 2))
	}

	run, err := deps.Host.Load(doc)
	if err != nil {
		deps.Logger().Warn("lesson rejected", "lesson_id", doc.LessonID, "error", err)
		s.err = err
		return s
	}
	s.run = run
	if mode != "" && run.Mode() != mode {
		run.SetMode(mode)
	}
	s.state = run.State()
	s.unsub = run.Subscribe(func(st runner.State) { s.state = st })
	s.closeBtn = components.NewButton("Close", func() tea.Cmd {
		s.run.CloseOverlay()
		return nil
	}, "space", "x", "esc")
	s.syncMode()
	return s
}

// Runner returns the session, or nil when the lesson was rejected.
func (s *Screen) Runner() *runner.Runner { return s.run }

// Err returns the load error, if any.
func (s *Screen) Err() error { return s.err }

func (s *Screen) Init() tea.Cmd {
	return screens.ArmTimers(s.deps.Timers)
}

func (s *Screen) Title() string {
	if s.doc == nil || s.doc.Title == "" {
		return "Lesson"
	}
	return s.doc.Title
}

// Status summarizes progress in the current mode for the header.
func (s *Screen) Status() string {
	if s.run == nil {
		return ""
	}
	sum := s.run.Summary()
	switch s.state.Mode {
	case lesson.ModeRoom2D:
		return fmt.Sprintf("Found %d/%d", sum.Room2DFound, sum.Room2DTargets)
	case lesson.ModeFloatingBubble:
		return fmt.Sprintf("Popped %d/%d", s.bubbles.popped(s.state), len(s.doc.VocabItems()))
	case lesson.ModePicSelection:
		return fmt.Sprintf("Pictures %d/%d", s.pictures.asked, s.pictures.total)
	case lesson.ModeSentenceBuilder:
		return fmt.Sprintf("Sentences %d", sum.SentenceCorrect)
	default:
		return fmt.Sprintf("Seen %d", len(s.state.Visited))
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.run == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.state.Overlay != nil {
		return []layout.KeyHint{{Key: "Enter", Description: "Close card"}}
	}
	hints := s.modeHints()
	if len(s.state.AvailableModes) > 1 {
		hints = append(hints, layout.KeyHint{Key: s.key("n"), Description: "Next activity"})
	}
	return append(hints,
		layout.KeyHint{Key: s.key("f"), Description: "Finish"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// key names a global shortcut. Letters are reserved for typing while the
// sentence builder is active, so it uses ctrl chords instead.
func (s *Screen) key(k string) string {
	if s.state.Mode == lesson.ModeSentenceBuilder {
		return "Ctrl+" + k
	}
	return k
}

// CapturesEscape keeps Esc for closing the word card.
func (s *Screen) CapturesEscape() bool {
	return s.state.Overlay != nil
}

// Leave drops the state subscription. The session itself stays with the
// host so returning to the same lesson resumes it.
func (s *Screen) Leave() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.run == nil {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.state.Overlay != nil {
		var cmd tea.Cmd
		s.closeBtn, cmd = s.closeBtn.Update(kmsg)
		return s, tea.Batch(cmd, s.afterAction())
	}

	s.notice = ""
	key := kmsg.String()
	typing := s.state.Mode == lesson.ModeSentenceBuilder

	switch {
	case key == "ctrl+n" || (!typing && key == "n"):
		s.run.ClearHintForce()
		s.run.GoNext()
		return s, s.afterAction()
	case key == "ctrl+f" || (!typing && key == "f"):
		return s, s.finish()
	}

	switch s.state.Mode {
	case lesson.ModeRoom2D:
		s.room.update(s, key)
	case lesson.ModeFloatingBubble:
		s.bubbles.update(s, key)
	case lesson.ModePicSelection:
		s.pictures.update(s, kmsg)
	case lesson.ModeSentenceBuilder:
		return s, tea.Batch(s.sentence.update(s, kmsg), s.afterAction())
	default:
		s.cards.update(s, key)
	}
	return s, s.afterAction()
}

// afterAction resets per-mode state on a mode change and arms timers the
// runner scheduled.
func (s *Screen) afterAction() tea.Cmd {
	s.syncMode()
	return screens.ArmTimers(s.deps.Timers)
}

func (s *Screen) syncMode() {
	if s.state.Mode == s.active {
		return
	}
	s.active = s.state.Mode
	switch s.active {
	case lesson.ModeRoom2D:
		s.room = newRoomModel()
	case lesson.ModeFloatingBubble:
		s.bubbles = newBubbleModel(s.doc)
	case lesson.ModePicSelection:
		s.pictures = newPictureModel(s.doc, s.deps.Rand)
		s.pictures.prompt(s)
	case lesson.ModeSentenceBuilder:
		s.sentence = newSentenceModel(s.doc.Defaults.SentenceBuilder)
	default:
		s.cards = newCardModel(s.doc)
	}
	s.deps.Logger().Debug("activity started", "lesson_id", s.doc.LessonID, "mode", s.active)
}

// finish hands the session to the summary screen.
func (s *Screen) finish() tea.Cmd {
	s.run.ClearHintForce()
	next := summary.New(s.deps, s.run)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *Screen) modeHints() []layout.KeyHint {
	switch s.state.Mode {
	case lesson.ModeRoom2D:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Tab", Description: "Jump"},
			{Key: "Enter", Description: "Tap"},
			{Key: "h", Description: "Hint"},
		}
	case lesson.ModeFloatingBubble:
		return []layout.KeyHint{{Key: "←→", Description: "Choose"}, {Key: "Enter", Description: "Pop"}}
	case lesson.ModePicSelection:
		return []layout.KeyHint{{Key: "1-9", Description: "Pick"}, {Key: "h", Description: "Hint"}}
	case lesson.ModeSentenceBuilder:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Blank"},
			{Key: "1-9", Description: "Use word"},
			{Key: "Enter", Description: "Place/Check"},
		}
	default:
		return []layout.KeyHint{{Key: "←→", Description: "Flip"}, {Key: "Enter", Description: "Open"}}
	}
}

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nThis lesson can't be played:\n%s", s.err))
	}

	var body string
	switch s.state.Mode {
	case lesson.ModeRoom2D:
		body = s.room.view(s, width, height-2)
	case lesson.ModeFloatingBubble:
		body = s.bubbles.view(s, width)
	case lesson.ModePicSelection:
		body = s.pictures.view(s, width)
	case lesson.ModeSentenceBuilder:
		body = s.sentence.view(width)
	default:
		body = s.cards.view(s, width)
	}

	if s.state.Overlay != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.overlayView())
	}

	banner := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(s.state.Mode.DisplayName())
	if s.notice != "" {
		banner += "   " + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, banner) + "\n" + body
}

func (s *Screen) overlayView() string {
	it := s.state.Overlay
	word := lesson.Word(it)
	if word == "" {
		word = it.ItemID()
	}
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Glow).Bold(true).Render(word),
	}
	if img := lesson.Image(it); img != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("picture: "+img))
	}
	lines = append(lines, "", s.closeBtn.View())
	return theme.Overlay.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
