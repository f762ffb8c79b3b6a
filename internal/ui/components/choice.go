package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

// Choice is a single-answer picker laid out as a row of cards. A wrong
// pick can be retried after Reset.
type Choice struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
	// Pulse marks an option to glow while nothing is submitted.
	Pulse int
}

// NewChoice creates a new picker with the cursor on the first option.
func NewChoice(prompt string, options []string, correctIndex int) Choice {
	return Choice{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
		Pulse:        -1,
	}
}

// Update handles keyboard navigation and selection. Digits pick directly.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "left", "up", "h", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "right", "down", "l", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter", "space":
		c.submit(c.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.Options) {
			c.Selected = n - 1
			c.submit(n - 1)
		}
	}
	return c, nil
}

func (c *Choice) submit(i int) {
	if len(c.Options) == 0 {
		return
	}
	c.Submitted = true
	c.ChosenIndex = i
}

// Reset clears a submitted answer so the learner can try again.
func (c *Choice) Reset() {
	c.Submitted = false
	c.ChosenIndex = -1
}

// IsCorrect returns true if the learner chose the correct option.
func (c Choice) IsCorrect() bool {
	return c.Submitted && c.ChosenIndex == c.CorrectIndex
}

// View renders the prompt above a row of option cards.
func (c Choice) View() string {
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt)

	cards := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		label := fmt.Sprintf("%d\n%s", i+1, opt)
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text).
			Align(lipgloss.Center).
			Padding(0, 2)

		switch {
		case c.Submitted && i == c.ChosenIndex && i == c.CorrectIndex:
			style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case c.Submitted && i == c.ChosenIndex:
			style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
		case !c.Submitted && i == c.Pulse:
			style = style.BorderForeground(theme.Glow)
		}
		if !c.Submitted && i == c.Selected {
			style = style.BorderStyle(lipgloss.ThickBorder()).BorderForeground(theme.Primary).Bold(true)
		}
		cards = append(cards, style.Render(label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, spaced(cards)...)
	return prompt + "\n\n" + row
}

func spaced(cards []string) []string {
	out := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, c)
	}
	return out
}
