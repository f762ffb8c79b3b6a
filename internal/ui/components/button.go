package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

// Button is a single action triggered by any of its keys.
type Button struct {
	Label   string
	Keys    []string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates an active button pressed with enter or any extra key.
func NewButton(label string, onPress func() tea.Cmd, keys ...string) Button {
	return Button{
		Label:   label,
		Keys:    append([]string{"enter"}, keys...),
		Active:  true,
		OnPress: onPress,
	}
}

// Pressed reports whether msg presses the button.
func (b Button) Pressed(msg tea.Msg) bool {
	if !b.Active {
		return false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	key := kmsg.String()
	for _, k := range b.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Update runs OnPress when the button is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if b.Pressed(msg) && b.OnPress != nil {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
