package runner

import (
	"slices"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/perf"
)

// State is an immutable snapshot of a Runner taken after an operation.
type State struct {
	LessonID       string
	Mode           lesson.UIMode
	AvailableModes []lesson.UIMode
	Visited        []string
	Counters       perf.Counters
	Overlay        lesson.Item // nil when closed
	HintTarget     string
	HintForceShow  bool
	HintMode       lesson.HintMode
	Generation     uint64
}

// ShowHint reports whether the presentation should highlight HintTarget.
func (s State) ShowHint() bool {
	return s.HintTarget != "" && (s.HintForceShow || s.HintMode == lesson.HintAlways)
}

// IsVisited reports whether id is in the snapshot's visited set.
func (s State) IsVisited(id string) bool {
	return slices.Contains(s.Visited, id)
}

// State takes a snapshot.
func (r *Runner) State() State {
	s := State{
		LessonID:       r.doc.LessonID,
		Mode:           r.mode,
		AvailableModes: slices.Clone(r.modes),
		Visited:        slices.Clone(r.visitedOrder),
		Counters:       r.counters,
		Overlay:        r.overlay,
		HintTarget:     r.hintTarget,
		HintForceShow:  r.forceShow,
		Generation:     r.generation,
	}
	if room := r.doc.Room(); room != nil {
		s.HintMode = room.HintMode
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every state change.
// Callbacks run synchronously on the caller of the changing operation.
func (r *Runner) Subscribe(fn func(State)) (unsubscribe func()) {
	if r.closed {
		return func() {}
	}
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	return func() { delete(r.subs, id) }
}

func (r *Runner) notify() {
	if len(r.subs) == 0 {
		return
	}
	s := r.State()
	ids := make([]int, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := r.subs[id]; ok {
			fn(s)
		}
	}
}
