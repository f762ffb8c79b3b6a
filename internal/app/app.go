// Package app is the bubbletea root model and composition point for the
// Lexiz TUI.
package app

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/logger"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens"
	"github.com/abhisek/lexiz/internal/screens/home"
	"github.com/abhisek/lexiz/internal/screens/player"
	"github.com/abhisek/lexiz/internal/slot"
	"github.com/abhisek/lexiz/internal/speech"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/variant"
)

// Options holds the collaborators the app is built from.
type Options struct {
	Catalog   *catalog.Catalog
	Builder   *variant.Builder
	Slot      *slot.Store
	Reports   store.ReportRepo
	ExportDir string
	Speaker   speech.Speaker
	Logger    *logger.Logger
	Runner    runner.Config

	// Initial opens the player on this lesson at startup.
	Initial *lesson.Document
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps    *screens.Deps
	router  *router.Router
	initial *lesson.Document
	width   int
	height  int
}

// NewAppModel wires the shared collaborators and starts on the home screen.
func NewAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	sp := opts.Speaker
	if sp == nil {
		sp = speech.Nop{}
	}
	if opts.Slot == nil {
		opts.Slot = slot.New()
	}
	cfg := opts.Runner
	if cfg.IdleDelay <= 0 || cfg.MisTapsToForce < 1 {
		cfg = runner.DefaultConfig()
	}

	timers := runner.NewDeferred()
	now := time.Now()
	deps := &screens.Deps{
		Catalog: opts.Catalog,
		Builder: opts.Builder,
		Slot:    opts.Slot,
		Host: runner.NewHost(
			runner.WithScheduler(timers),
			runner.WithLogger(log),
			runner.WithSpeaker(sp),
			runner.WithConfig(cfg),
		),
		Timers:    timers,
		Reports:   opts.Reports,
		ExportDir: opts.ExportDir,
		Speaker:   sp,
		Log:       log,
		Rand:      rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix()))),
	}
	return AppModel{
		deps:    deps,
		router:  router.New(home.New(deps)),
		initial: opts.Initial,
	}
}

// Deps exposes the shared collaborators.
func (m AppModel) Deps() *screens.Deps { return m.deps }

// Router exposes the screen stack.
func (m AppModel) Router() *router.Router { return m.router }

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if doc := m.initial; doc != nil {
		cmds = append(cmds, func() tea.Msg { return screens.PlayMsg{Doc: doc} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screens.TimerFiredMsg:
		m.deps.Timers.Fire(msg.ID)
		return m, screens.ArmTimers(m.deps.Timers)

	case screens.PlayMsg:
		p := player.NewAt(m.deps, msg.Doc, msg.Mode)
		if msg.Replace {
			return m, m.router.Update(router.ReplaceScreenMsg{Screen: p})
		}
		return m, m.router.Update(router.PushScreenMsg{Screen: p})

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(layout.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Close ends the live session and waits for speech still in flight.
func (m AppModel) Close() {
	m.deps.Host.Unload()
	if w, ok := m.deps.Speaker.(interface{ Wait() }); ok {
		w.Wait()
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model := NewAppModel(opts)
	defer model.Close()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
