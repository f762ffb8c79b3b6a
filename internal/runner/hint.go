package runner

import (
	"time"

	"github.com/abhisek/lexiz/internal/lesson"
)

// RequestHint forces the hint on the current room target. It does nothing
// outside room2d or when every object has been found.
func (r *Runner) RequestHint() {
	if r.closed || r.mode != lesson.ModeRoom2D || r.hintTarget == "" || r.forceShow {
		return
	}
	r.forceShow = true
	r.notify()
}

// ClearHintForce hides a forced hint without changing the target.
func (r *Runner) ClearHintForce() {
	if r.closed || !r.forceShow {
		return
	}
	r.forceShow = false
	r.rearmIdle()
	r.notify()
}

// HintTarget returns the room object the learner should find next.
func (r *Runner) HintTarget() (string, bool) {
	return r.hintTarget, r.hintTarget != ""
}

// HintForceShow reports whether the hint is currently forced.
func (r *Runner) HintForceShow() bool { return r.forceShow }

// Generation changes whenever the hint context moves on.
func (r *Runner) Generation() uint64 { return r.generation }

// recomputeHint picks the first unvisited object in activation order, resets
// escalation and re-arms the idle timer.
func (r *Runner) recomputeHint() {
	r.hintTarget = ""
	if room := r.doc.Room(); room != nil {
		for _, o := range room.Sorted() {
			if _, ok := r.visited[o.ID]; !ok {
				r.hintTarget = o.ID
				break
			}
		}
	}
	r.forceShow = false
	r.targetMisTaps = 0
	r.generation++
	r.cancelTimer()

	if r.hintTarget != "" {
		r.armIdle()
	}
}

func (r *Runner) idleDelay() time.Duration {
	if room := r.doc.Room(); room != nil && room.HintDelayMs > 0 {
		return time.Duration(room.HintDelayMs) * time.Millisecond
	}
	if r.cfg.IdleDelay > 0 {
		return r.cfg.IdleDelay
	}
	return DefaultConfig().IdleDelay
}

func (r *Runner) armIdle() {
	gen := r.generation
	target := r.hintTarget
	r.cancelIdle = r.sched.Schedule(r.idleDelay(), func() {
		if r.closed || r.generation != gen {
			return
		}
		r.cancelIdle = nil
		if r.forceShow {
			return
		}
		r.forceShow = true
		r.log.Debug("hint forced after idle", "target", target)
		r.notify()
	})
}

// rearmIdle restarts the idle timer after a forced hint is cleared, unless
// one is still pending.
func (r *Runner) rearmIdle() {
	if r.mode == lesson.ModeRoom2D && r.hintTarget != "" && r.cancelIdle == nil {
		r.armIdle()
	}
}

func (r *Runner) cancelTimer() {
	if r.cancelIdle != nil {
		r.cancelIdle()
		r.cancelIdle = nil
	}
}
