package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/lesson"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.Schedule(3*time.Second, func() { got = append(got, "c") })
	s.Schedule(time.Second, func() {
		got = append(got, "a")
		s.Schedule(time.Second, func() { got = append(got, "b") })
	})
	cancel := s.Schedule(2*time.Second, func() { got = append(got, "cancelled") })
	cancel()
	cancel()

	s.Advance(10 * time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 10*time.Second, s.Now())
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerSameInstantKeepsScheduleOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []int
	for i := range 3 {
		s.Schedule(time.Second, func() { got = append(got, i) })
	}
	s.Advance(time.Second)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestDeferred(t *testing.T) {
	d := NewDeferred()
	ran := 0
	d.Schedule(time.Second, func() { ran++ })
	cancel := d.Schedule(2*time.Second, func() { ran += 10 })
	cancel()

	timers := d.Drain()
	require.Len(t, timers, 1)
	assert.Equal(t, time.Second, timers[0].Delay)
	assert.Empty(t, d.Drain())

	assert.True(t, d.Fire(timers[0].ID))
	assert.False(t, d.Fire(timers[0].ID), "a timer fires once")
	assert.Equal(t, 1, ran)
}

func TestDeferredDrivesRunner(t *testing.T) {
	d := NewDeferred()
	r, err := New(loadDoc(t), WithScheduler(d))
	require.NoError(t, err)

	first := d.Drain()
	require.Len(t, first, 1)
	assert.Equal(t, 5*time.Second, first[0].Delay)

	r.MarkVisited("obj_ball")
	second := d.Drain()
	require.Len(t, second, 1)

	assert.False(t, d.Fire(first[0].ID), "superseded timer was cancelled")
	assert.True(t, d.Fire(second[0].ID))
	assert.True(t, r.HintForceShow())

	r.SetMode(lesson.ModeFloatingBubble)
	assert.Empty(t, d.Drain())
}
