package runner

import (
	"sync"
	"time"
)

// Scheduler runs fn once after delay. The returned cancel stops a pending
// call and is safe to call more than once or after fn has run.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

type manualTask struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// ManualScheduler keeps virtual time that only moves on Advance. Callbacks
// run synchronously inside Advance in due order.
type ManualScheduler struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) Schedule(delay time.Duration, fn func()) func() {
	if delay < 0 {
		delay = 0
	}
	m.seq++
	t := &manualTask{at: m.now + delay, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return func() { t.cancelled = true }
}

// Advance moves virtual time forward by d and runs every task that becomes
// due, including tasks scheduled by callbacks within the window.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.popDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		next.fn()
	}
	m.now = target
}

func (m *ManualScheduler) popDue(target time.Duration) *manualTask {
	best := -1
	for i, t := range m.tasks {
		if t.cancelled || t.at > target {
			continue
		}
		if best < 0 || t.at < m.tasks[best].at || (t.at == m.tasks[best].at && t.seq < m.tasks[best].seq) {
			best = i
		}
	}
	if best < 0 {
		m.compact()
		return nil
	}
	t := m.tasks[best]
	m.tasks = append(m.tasks[:best], m.tasks[best+1:]...)
	return t
}

func (m *ManualScheduler) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
}

// Now returns the elapsed virtual time.
func (m *ManualScheduler) Now() time.Duration { return m.now }

// Pending counts tasks that are neither cancelled nor run.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Timer is a callback request handed out by Deferred.
type Timer struct {
	ID    uint64
	Delay time.Duration
}

// Deferred hands scheduled callbacks to a host event loop. The host drains
// new timers, waits for each delay in its own way and calls Fire with the
// timer id on the goroutine that owns the Runner.
type Deferred struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]func()
	queued  []Timer
}

func NewDeferred() *Deferred {
	return &Deferred{pending: make(map[uint64]func())}
}

func (d *Deferred) Schedule(delay time.Duration, fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	id := d.next
	d.pending[id] = fn
	d.queued = append(d.queued, Timer{ID: id, Delay: delay})
	return func() {
		d.mu.Lock()
		delete(d.pending, id)
		d.mu.Unlock()
	}
}

// Drain returns timers scheduled since the last call, skipping ones already
// cancelled.
func (d *Deferred) Drain() []Timer {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Timer
	for _, t := range d.queued {
		if _, ok := d.pending[t.ID]; ok {
			out = append(out, t)
		}
	}
	d.queued = nil
	return out
}

// Fire runs the callback for id unless it was cancelled or already fired.
// It reports whether a callback ran.
func (d *Deferred) Fire(id uint64) bool {
	d.mu.Lock()
	fn, ok := d.pending[id]
	delete(d.pending, id)
	d.mu.Unlock()
	if !ok {
		return false
	}
	fn()
	return true
}
