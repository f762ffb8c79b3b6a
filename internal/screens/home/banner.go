package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

const bannerFull = ` ██╗     ███████╗██╗  ██╗██╗███████╗
 ██║     ██╔════╝╚██╗██╔╝██║╚══███╔╝
 ██║     █████╗   ╚███╔╝ ██║  ███╔╝
 ██║     ██╔══╝   ██╔██╗ ██║ ███╔╝
 ███████╗███████╗██╔╝ ██╗██║███████╗
 ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝╚══════╝`

const bannerCompact = "L · E · X · I · Z"

// owl greets the learner; it winks once a report has been saved.
const owlIdle = ` ,___,
 (O,O)
 /)_)
  ""`

const owlWink = ` ,___,
 (O,-)
 /)_)
  ""`

func renderBanner(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Glow).Bold(true)
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
}

func renderOwl(wink bool, cw int) string {
	art := owlIdle
	if wink {
		art = owlWink
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(art)
}
