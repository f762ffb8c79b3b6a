package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

// ChecklistItem is one toggleable row.
type ChecklistItem struct {
	Label   string
	Detail  string
	Checked bool
}

// Checklist is a vertical list of toggles. Space flips the row under the
// cursor; the order of Checked follows the order rows were ticked.
type Checklist struct {
	Items    []ChecklistItem
	Selected int
	order    []int
}

// NewChecklist creates a checklist with nothing ticked.
func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

// Update handles navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case "space", "x":
		c.Toggle(c.Selected)
	}
	return c, nil
}

// Toggle flips row i.
func (c *Checklist) Toggle(i int) {
	if i < 0 || i >= len(c.Items) {
		return
	}
	c.Items[i].Checked = !c.Items[i].Checked
	if c.Items[i].Checked {
		c.order = append(c.order, i)
		return
	}
	for k, idx := range c.order {
		if idx == i {
			c.order = append(c.order[:k:k], c.order[k+1:]...)
			break
		}
	}
}

// Checked returns the ticked row indexes in the order they were ticked.
func (c Checklist) Checked() []int {
	out := make([]int, len(c.order))
	copy(out, c.order)
	return out
}

// View renders the checklist.
func (c Checklist) View() string {
	var s string
	for i, item := range c.Items {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		line := "  " + box + " " + item.Label
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Selected {
			line = "▸ " + box + " " + item.Label
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line)
		if item.Detail != "" {
			s += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Detail)
		}
		s += "\n"
	}
	return s
}
