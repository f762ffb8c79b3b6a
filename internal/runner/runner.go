// Package runner holds the per-session state machine of a lesson: mode
// switching, overlay, visited tracking, counters and room hint escalation.
//
// A Runner is not safe for concurrent use. Every operation, including timer
// callbacks, must run on the host's single event loop.
package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/logger"
	"github.com/abhisek/lexiz/internal/perf"
	"github.com/abhisek/lexiz/internal/speech"
)

// ErrInvalidLesson wraps the validation failure of a document handed to New.
var ErrInvalidLesson = errors.New("invalid lesson")

// Config tunes hint escalation.
type Config struct {
	// IdleDelay arms the room hint timer. A room's hintDelayMs overrides it.
	IdleDelay time.Duration
	// MisTapsToForce is the number of consecutive mis-taps on one target
	// that forces the hint.
	MisTapsToForce int
}

// DefaultConfig returns the stock hint timings.
func DefaultConfig() Config {
	return Config{IdleDelay: 5 * time.Second, MisTapsToForce: 2}
}

// Option configures a Runner.
type Option func(*Runner)

func WithScheduler(s Scheduler) Option { return func(r *Runner) { r.sched = s } }
func WithLogger(l *logger.Logger) Option { return func(r *Runner) { r.log = l } }
func WithSpeaker(s speech.Speaker) Option { return func(r *Runner) { r.speaker = s } }
func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }
func WithConfig(c Config) Option { return func(r *Runner) { r.cfg = c } }
func WithInitialMode(m lesson.UIMode) Option { return func(r *Runner) { r.mode = m } }
func WithSessionID(id string) Option { return func(r *Runner) { r.sessionID = id } }

// Runner is one live practice session over one document.
type Runner struct {
	doc       *lesson.Document
	sessionID string

	modes []lesson.UIMode
	mode  lesson.UIMode

	visited      map[string]struct{}
	visitedOrder []string
	counters     perf.Counters

	overlay lesson.Item

	hintTarget    string
	forceShow     bool
	targetMisTaps int
	generation    uint64
	cancelIdle    func()

	subs    map[int]func(State)
	nextSub int
	closed  bool

	sched   Scheduler
	log     *logger.Logger
	speaker speech.Speaker
	now     func() time.Time
	cfg     Config
}

// New validates doc and starts a session on it. The initial mode is the
// first available mode unless WithInitialMode names another available one.
func New(doc *lesson.Document, opts ...Option) (*Runner, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", ErrInvalidLesson)
	}
	if err := lesson.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLesson, err)
	}

	r := &Runner{
		doc:     doc,
		modes:   lesson.AvailableModes(doc),
		visited: make(map[string]struct{}),
		subs:    make(map[int]func(State)),
		log:     logger.Nop(),
		speaker: speech.Nop{},
		now:     time.Now,
		cfg:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sched == nil {
		r.sched = NewManualScheduler()
	}
	if r.sessionID == "" {
		r.sessionID = uuid.NewString()
	}
	if r.cfg.MisTapsToForce <= 0 {
		r.cfg.MisTapsToForce = DefaultConfig().MisTapsToForce
	}
	r.log = r.log.With("lesson_id", doc.LessonID, "session", r.sessionID)

	requested := r.mode
	r.mode = ""
	r.enterMode(requested)
	r.log.Debug("session started", "mode", r.mode, "modes", r.modes)
	return r, nil
}

// Document returns the session's lesson.
func (r *Runner) Document() *lesson.Document { return r.doc }

// SessionID identifies this session in logs and stored reports.
func (r *Runner) SessionID() string { return r.sessionID }

// Mode returns the active mode.
func (r *Runner) Mode() lesson.UIMode { return r.mode }

// AvailableModes returns a copy of the session's modes in cycle order.
func (r *Runner) AvailableModes() []lesson.UIMode { return slices.Clone(r.modes) }

// GoNext advances to the next available mode, wrapping at the end. It does
// nothing when fewer than two modes are available.
func (r *Runner) GoNext() {
	if r.closed || len(r.modes) <= 1 {
		return
	}
	idx := slices.Index(r.modes, r.mode)
	r.enterMode(r.modes[(idx+1)%len(r.modes)])
	r.notify()
}

// SetMode switches to m. A mode the lesson does not offer falls back to the
// first available mode.
func (r *Runner) SetMode(m lesson.UIMode) {
	if r.closed {
		return
	}
	prev := r.mode
	r.enterMode(m)
	if r.mode != prev {
		r.notify()
	}
}

// enterMode applies a mode change and its hint side effects.
func (r *Runner) enterMode(m lesson.UIMode) {
	if !slices.Contains(r.modes, m) {
		m = r.modes[0]
	}
	if m == r.mode {
		return
	}
	r.mode = m
	r.forceShow = false
	r.generation++
	r.cancelTimer()

	if m == lesson.ModeRoom2D {
		r.recomputeHint()
	} else {
		r.hintTarget = ""
		r.targetMisTaps = 0
	}
}

// OpenItemByID shows the item with id in the overlay, replacing any open
// item. Unknown ids are ignored. Vocabulary words are spoken when the lesson
// enables text-to-speech.
func (r *Runner) OpenItemByID(id string) bool {
	if r.closed {
		return false
	}
	it, ok := r.doc.ItemByID(id)
	if !ok {
		r.log.Debug("overlay item not found", "item_id", id)
		return false
	}
	r.overlay = it
	if f := r.doc.Defaults.Features; f != nil && f.TTS {
		if v, ok := it.(*lesson.VocabItem); ok {
			r.speaker.Speak(v.Word)
		}
	}
	r.notify()
	return true
}

// CloseOverlay closes the overlay.
func (r *Runner) CloseOverlay() {
	if r.closed || r.overlay == nil {
		return
	}
	r.overlay = nil
	r.notify()
}

// Overlay returns the open item.
func (r *Runner) Overlay() (lesson.Item, bool) {
	return r.overlay, r.overlay != nil
}

// MarkVisited records a correct interaction with id. Only the first mark of
// an id counts as an attempt. Every mark clears a forced hint and the
// mis-tap streak.
func (r *Runner) MarkVisited(id string) {
	if r.closed {
		return
	}
	cleared := r.forceShow
	changed := r.forceShow || r.targetMisTaps != 0
	r.forceShow = false
	r.targetMisTaps = 0

	if _, seen := r.visited[id]; !seen {
		r.visited[id] = struct{}{}
		r.visitedOrder = append(r.visitedOrder, id)
		r.counters.Attempts++
		changed = true
		if r.mode == lesson.ModeRoom2D {
			r.recomputeHint()
			cleared = false
		}
	}
	if cleared {
		r.rearmIdle()
	}
	if changed {
		r.notify()
	}
}

// Visited returns visited ids in first-visit order.
func (r *Runner) Visited() []string { return slices.Clone(r.visitedOrder) }

// IsVisited reports whether id has been marked.
func (r *Runner) IsVisited(id string) bool {
	_, ok := r.visited[id]
	return ok
}

// TrackMisTap records a tap on empty space in the room. Outside room2d it
// does nothing.
func (r *Runner) TrackMisTap() {
	if r.closed || r.mode != lesson.ModeRoom2D {
		return
	}
	r.counters.MisTaps++
	r.counters.Attempts++
	r.targetMisTaps++
	if r.targetMisTaps >= r.cfg.MisTapsToForce && r.hintTarget != "" {
		r.forceShow = true
	}
	r.notify()
}

// TrackBubblePop records a popped bubble.
func (r *Runner) TrackBubblePop() {
	if r.closed {
		return
	}
	r.counters.BubblePops++
	r.counters.Attempts++
	r.notify()
}

// TrackPicAttempt records a picture choice.
func (r *Runner) TrackPicAttempt(ok bool) {
	if r.closed {
		return
	}
	r.counters.PicAttempts++
	if ok {
		r.counters.PicCorrect++
	}
	r.counters.Attempts++
	r.notify()
}

// TrackSentenceAttempt records a graded sentence submission.
func (r *Runner) TrackSentenceAttempt(ok bool) {
	if r.closed {
		return
	}
	r.counters.SentenceAttempts++
	if ok {
		r.counters.SentenceCorrect++
	}
	r.counters.Attempts++
	r.notify()
}

// Counters returns a copy of the session counters.
func (r *Runner) Counters() perf.Counters { return r.counters }

// Summary aggregates the session so far.
func (r *Runner) Summary() perf.Summary {
	return perf.Aggregate(r.doc, r.counters, r.visited, r.mode)
}

// Report stamps the summary with the lesson id and the current time.
func (r *Runner) Report() perf.Report {
	return perf.NewReport(r.doc.LessonID, r.Summary(), r.now())
}

// Export hands the current report to saver.
func (r *Runner) Export(ctx context.Context, saver perf.Saver) (perf.Report, error) {
	rep := r.Report()
	if err := perf.Export(ctx, saver, rep); err != nil {
		r.log.Warn("export failed", "error", err)
		return rep, err
	}
	r.log.Info("report exported", "file", rep.Filename(), "attempts", rep.Attempts)
	return rep, nil
}

// Close stops the idle timer and drops subscribers. Later operations are
// ignored.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.cancelTimer()
	r.generation++
	r.closed = true
	clear(r.subs)
	r.log.Debug("session closed", "attempts", r.counters.Attempts)
}

// Closed reports whether Close was called.
func (r *Runner) Closed() bool { return r.closed }
