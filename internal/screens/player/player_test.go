package player

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/screens"
	"github.com/abhisek/lexiz/internal/screens/summary"
	"github.com/abhisek/lexiz/internal/variant"
)

type recordingSpeaker struct{ words []string }

func (r *recordingSpeaker) Speak(w string) { r.words = append(r.words, w) }

func classroom(t *testing.T) *lesson.Document {
	t.Helper()
	doc, err := lesson.Load("../../lesson/testdata/classroom.json")
	require.NoError(t, err)
	return doc
}

func newDeps() *screens.Deps {
	timers := runner.NewDeferred()
	return &screens.Deps{
		Host:    runner.NewHost(runner.WithScheduler(timers)),
		Timers:  timers,
		Rand:    rand.New(rand.NewPCG(7, 11)),
		Speaker: &recordingSpeaker{},
	}
}

func newPlayer(t *testing.T) (*Screen, *screens.Deps) {
	t.Helper()
	deps := newDeps()
	s := New(deps, classroom(t))
	require.NoError(t, s.Err())
	return s, deps
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	if strings.HasPrefix(k, "ctrl+") {
		return tea.KeyPressMsg{Code: rune(k[len(k)-1]), Mod: tea.ModCtrl}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func press(s *Screen, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(keyMsg(k))
	}
	return cmd
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestStartsInDeclaredMode(t *testing.T) {
	s, _ := newPlayer(t)
	assert.Equal(t, lesson.ModeRoom2D, s.state.Mode)
	assert.Equal(t, "Classroom Toys", s.Title())
	assert.Equal(t, "Found 0/4", s.Status())
	assert.NotNil(t, s.Init(), "the room arms its idle hint timer")
}

func TestRoomTapOpensWord(t *testing.T) {
	s, _ := newPlayer(t)

	press(s, "tab", "enter")

	require.NotNil(t, s.state.Overlay)
	assert.Equal(t, "ball", s.state.Overlay.ItemID())
	assert.True(t, s.state.IsVisited("obj_ball"))
	assert.Equal(t, "obj_teddy", s.state.HintTarget)
	assert.True(t, s.CapturesEscape())

	press(s, "esc")
	assert.Nil(t, s.state.Overlay)
	assert.False(t, s.CapturesEscape())
	assert.Equal(t, "Found 1/4", s.Status())
}

func TestRoomMisTapsForceHint(t *testing.T) {
	s, _ := newPlayer(t)

	press(s, "up", "up", "up", "up", "up")
	press(s, "enter")
	assert.Equal(t, 1, s.state.Counters.MisTaps)
	assert.False(t, s.state.ShowHint())

	press(s, "enter")
	assert.Equal(t, 2, s.state.Counters.MisTaps)
	assert.True(t, s.state.ShowHint())
	assert.Contains(t, s.View(100, 30), "Can you find the ball?")
}

func TestRoomHintKey(t *testing.T) {
	s, _ := newPlayer(t)
	press(s, "h")
	assert.True(t, s.state.HintForceShow)
}

func TestIdleTimerForcesHintThroughSubscription(t *testing.T) {
	s, deps := newPlayer(t)

	timers := deps.Timers.Drain()
	require.Len(t, timers, 1)
	assert.Equal(t, 5000, int(timers[0].Delay.Milliseconds()))

	require.True(t, deps.Timers.Fire(timers[0].ID))
	assert.True(t, s.state.HintForceShow)
}

func TestNextModeCyclesActivities(t *testing.T) {
	s, _ := newPlayer(t)

	press(s, "n")
	assert.Equal(t, lesson.ModeFloatingBubble, s.state.Mode)
	press(s, "n")
	assert.Equal(t, lesson.ModePicSelection, s.state.Mode)
	press(s, "n")
	assert.Equal(t, lesson.ModeSentenceBuilder, s.state.Mode)
	press(s, "n")
	assert.Equal(t, lesson.ModeSentenceBuilder, s.state.Mode, "letters are typed in the sentence builder")
	press(s, "ctrl+n")
	assert.Equal(t, lesson.ModeRoom2D, s.state.Mode)
}

func TestBubblePop(t *testing.T) {
	s, _ := newPlayer(t)
	press(s, "n", "right", "enter")

	assert.Equal(t, 1, s.state.Counters.BubblePops)
	assert.True(t, s.state.IsVisited("bubble-teddy"))
	require.NotNil(t, s.state.Overlay)
	assert.Equal(t, "teddy", s.state.Overlay.ItemID())

	press(s, "enter")
	assert.Equal(t, "Popped 1/4", s.Status())
	assert.NotContains(t, s.View(120, 30), "Teddy Bear")
}

func TestPictureSelection(t *testing.T) {
	s, deps := newPlayer(t)
	press(s, "n", "n")
	require.Equal(t, lesson.ModePicSelection, s.state.Mode)

	speaker := deps.Speaker.(*recordingSpeaker)
	assert.Equal(t, []string{"Ball"}, speaker.words, "prompt is spoken")

	correct := s.pictures.choice.CorrectIndex
	wrong := (correct + 1) % len(s.pictures.choice.Options)

	press(s, string(rune('1'+wrong)))
	assert.Equal(t, 1, s.state.Counters.PicAttempts)
	assert.Equal(t, 0, s.state.Counters.PicCorrect)
	assert.Nil(t, s.state.Overlay)
	assert.Contains(t, s.View(120, 30), "Try again")

	press(s, string(rune('1'+correct)))
	assert.Equal(t, 2, s.state.Counters.PicAttempts)
	assert.Equal(t, 1, s.state.Counters.PicCorrect)
	assert.True(t, s.state.IsVisited("pic:ball:ball"))
	require.NotNil(t, s.state.Overlay)
	assert.Equal(t, "ball", s.state.Overlay.ItemID())
	assert.Equal(t, "teddy", s.pictures.target.ID)
}

func TestPictureHintPulsesAnswer(t *testing.T) {
	s, _ := newPlayer(t)
	press(s, "n", "n", "h")
	assert.Equal(t, s.pictures.choice.CorrectIndex, s.pictures.choice.Pulse)
	assert.Equal(t, 0, s.state.Counters.PicAttempts)
}

func TestSentenceFromWordBank(t *testing.T) {
	s, _ := newPlayer(t)
	press(s, "n", "n", "n")
	require.Equal(t, lesson.ModeSentenceBuilder, s.state.Mode)

	press(s, "enter")
	assert.Equal(t, 0, s.state.Counters.SentenceAttempts, "incomplete sentences are not graded")

	press(s, "1", "1")
	assert.Equal(t, map[string]string{"b1": "ball", "b2": "teddy"}, s.sentence.filled)

	press(s, "enter")
	assert.Equal(t, 1, s.state.Counters.SentenceAttempts)
	assert.Equal(t, 1, s.state.Counters.SentenceCorrect)
}

func TestSentenceTypedWordsAndMoves(t *testing.T) {
	s, _ := newPlayer(t)
	press(s, "n", "n", "n")

	typeText(s, "kite")
	press(s, "enter")
	assert.Equal(t, "kite", s.sentence.filled["b1"])

	// Placing kite again moves it instead of duplicating it.
	typeText(s, "KITE")
	press(s, "enter")
	assert.Equal(t, map[string]string{"b2": "kite"}, s.sentence.filled)

	typeText(s, "zebra")
	press(s, "enter")
	assert.Contains(t, s.View(120, 30), "word bank")

	press(s, "ctrl+r")
	assert.Empty(t, s.sentence.filled)
}

func TestWrongSentenceCountsAttempt(t *testing.T) {
	s, _ := newPlayer(t)
	press(s, "n", "n", "n")
	press(s, "3", "3", "enter")
	assert.Equal(t, 1, s.state.Counters.SentenceAttempts)
	assert.Equal(t, 0, s.state.Counters.SentenceCorrect)
	assert.False(t, s.sentence.result.Correct)
}

func TestFinishReplacesWithSummary(t *testing.T) {
	s, _ := newPlayer(t)
	cmd := press(s, "f")
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*summary.SummaryScreen)
	assert.True(t, ok)
}

func TestRejectedLessonKeepsSession(t *testing.T) {
	s, deps := newPlayer(t)
	live := s.Runner()

	bad := classroom(t)
	bad.LessonID = "broken"
	bad.Version = 2
	rejected := New(deps, bad)

	require.Error(t, rejected.Err())
	assert.Contains(t, rejected.View(100, 30), "can't be played")
	cur, ok := deps.Host.Current()
	require.True(t, ok)
	assert.Same(t, live, cur)
}

func TestReturningResumesSession(t *testing.T) {
	s, deps := newPlayer(t)
	press(s, "tab", "enter", "enter")
	s.Leave()

	again := New(deps, classroom(t))
	assert.Same(t, s.Runner(), again.Runner())
	assert.True(t, again.state.IsVisited("obj_ball"))
}

func TestLeaveStopsUpdates(t *testing.T) {
	s, _ := newPlayer(t)
	s.Leave()
	s.Runner().RequestHint()
	assert.False(t, s.state.HintForceShow)
}

func TestStartsInFirstAvailableMode(t *testing.T) {
	doc, err := variant.Build([]lesson.UIMode{lesson.ModePicSelection})
	require.NoError(t, err)
	require.Equal(t, lesson.ModePicSelection, doc.Defaults.UI)

	s := New(newDeps(), doc)
	require.NoError(t, s.Err())
	modes := lesson.AvailableModes(doc)
	require.NotEmpty(t, modes)
	assert.Equal(t, lesson.ModeFloatingBubble, modes[0])
	assert.Equal(t, modes[0], s.state.Mode)
	assert.Equal(t, modes, s.Runner().AvailableModes())
}

func TestNewAtStartsInRequestedMode(t *testing.T) {
	deps := newDeps()
	s := NewAt(deps, classroom(t), lesson.ModePicSelection)
	require.NoError(t, s.Err())
	assert.Equal(t, lesson.ModePicSelection, s.state.Mode)
	assert.Equal(t, "Pictures 0/4", s.Status())
}
