package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { fired = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { fired = "D"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(key("enter"))
	assert.Equal(t, "D", fired)

	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("up"))
	assert.Equal(t, 1, m.Selected)
}

func TestChoiceCorrectAndRetry(t *testing.T) {
	c := NewChoice("Which one is the ball?", []string{"kite", "ball", "teddy"}, 1)

	c, _ = c.Update(key("3"))
	require.True(t, c.Submitted)
	assert.False(t, c.IsCorrect())

	c, _ = c.Update(key("1"))
	assert.Equal(t, 2, c.ChosenIndex, "submitted choice is locked")

	c.Reset()
	c, _ = c.Update(key("right"))
	c, _ = c.Update(key("enter"))
	assert.True(t, c.IsCorrect())
}

func TestChoiceIgnoresOutOfRangeDigits(t *testing.T) {
	c := NewChoice("?", []string{"a", "b"}, 0)
	c, _ = c.Update(key("9"))
	assert.False(t, c.Submitted)
}

func TestChoiceViewListsOptions(t *testing.T) {
	c := NewChoice("Pick", []string{"kite", "ball"}, 1)
	out := c.View()
	assert.Contains(t, out, "Pick")
	assert.Contains(t, out, "kite")
	assert.Contains(t, out, "ball")
}

func TestChecklistKeepsTickOrder(t *testing.T) {
	c := NewChecklist([]ChecklistItem{{Label: "room"}, {Label: "bubbles"}, {Label: "pictures"}})

	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("space"))
	c, _ = c.Update(key("up"))
	c, _ = c.Update(key("up"))
	c, _ = c.Update(key("space"))
	assert.Equal(t, []int{2, 0}, c.Checked())

	c.Toggle(2)
	assert.Equal(t, []int{0}, c.Checked())
	assert.True(t, strings.Contains(c.View(), "[x] room"))
}

func TestButtonPressedKeys(t *testing.T) {
	pressed := 0
	b := NewButton("Close", func() tea.Cmd { pressed++; return nil }, "x")

	b, _ = b.Update(key("enter"))
	b, _ = b.Update(key("x"))
	b, _ = b.Update(key("q"))
	assert.Equal(t, 2, pressed)

	b.Active = false
	assert.False(t, b.Pressed(key("enter")))
}

func TestProgressBarClamps(t *testing.T) {
	p := NewProgressBar("Found", 1.5, true, 30)
	assert.Contains(t, p.View(), "100%")
	p = NewProgressBar("", -1, true, 10)
	assert.Contains(t, p.View(), "0%")

	c := NewCountBar("Found", 2, 4, 30)
	assert.Contains(t, c.View(), "2/4")
	assert.InDelta(t, 0.5, c.Percent, 1e-9)
}

func TestTextInputLettersOnly(t *testing.T) {
	ti := NewTextInput("word", true, 20)
	for _, s := range []string{"c", "a", "7", "t"} {
		ti, _ = ti.Update(key(s))
	}
	assert.Equal(t, "cat", ti.Value())

	ti.Clear()
	assert.Equal(t, "", ti.Value())
}
