// Package screens holds what every Lexiz screen shares: the collaborators
// wired by the composition root and the timer bridge into bubbletea.
package screens

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/logger"
	"github.com/abhisek/lexiz/internal/perf"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/slot"
	"github.com/abhisek/lexiz/internal/speech"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/variant"
)

// Deps are the collaborators screens read from. Nil Reports disables the
// history view and database export; an empty ExportDir disables file export.
type Deps struct {
	Catalog   *catalog.Catalog
	Builder   *variant.Builder
	Slot      *slot.Store
	Host      *runner.Host
	Timers    *runner.Deferred
	Reports   store.ReportRepo
	ExportDir string
	Speaker   speech.Speaker
	Log       *logger.Logger
	Rand      *rand.Rand
	Now       func() time.Time
}

// Saver returns the sink an exported report is offered to.
func (d *Deps) Saver(sessionID string) perf.Saver {
	var sinks perf.MultiSaver
	if d.ExportDir != "" {
		sinks = append(sinks, perf.DirSaver{Dir: d.ExportDir})
	}
	if d.Reports != nil {
		sinks = append(sinks, store.Saver(d.Reports, sessionID))
	}
	return sinks
}

// Logger never returns nil.
func (d *Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}

// Clock returns the current time.
func (d *Deps) Clock() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// PlayMsg asks the app to open the player on Doc, starting in Mode when the
// lesson offers it. Replace swaps the active screen instead of pushing.
type PlayMsg struct {
	Doc     *lesson.Document
	Mode    lesson.UIMode
	Replace bool
}

// TimerFiredMsg is delivered when a deferred runner timer comes due. The
// app fires it on the Update goroutine whichever screen is active.
type TimerFiredMsg struct {
	ID uint64
}

// ArmTimers turns timers the runner scheduled since the last call into
// bubbletea ticks.
func ArmTimers(d *runner.Deferred) tea.Cmd {
	if d == nil {
		return nil
	}
	pending := d.Drain()
	if len(pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(pending))
	for _, t := range pending {
		id := t.ID
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return TimerFiredMsg{ID: id}
		}))
	}
	return tea.Batch(cmds...)
}
