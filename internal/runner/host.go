package runner

import (
	"github.com/abhisek/lexiz/internal/lesson"
)

// Host owns the single live Runner. Loading a different lesson discards the
// previous session.
type Host struct {
	opts    []Option
	current *Runner
}

// NewHost returns a Host that builds runners with opts.
func NewHost(opts ...Option) *Host {
	return &Host{opts: opts}
}

// Load returns the live Runner for doc, reusing it when doc has the same
// lesson id and replacing it otherwise. On error the previous Runner stays
// live.
func (h *Host) Load(doc *lesson.Document, extra ...Option) (*Runner, error) {
	if h.current != nil && !h.current.Closed() && doc != nil && h.current.doc.LessonID == doc.LessonID {
		return h.current, nil
	}
	r, err := New(doc, append(append([]Option(nil), h.opts...), extra...)...)
	if err != nil {
		return nil, err
	}
	h.Unload()
	h.current = r
	return r, nil
}

// Current returns the live Runner, if any.
func (h *Host) Current() (*Runner, bool) {
	if h.current == nil || h.current.Closed() {
		return nil, false
	}
	return h.current, true
}

// Unload closes the live Runner.
func (h *Host) Unload() {
	if h.current != nil {
		h.current.Close()
		h.current = nil
	}
}
