package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/ui/theme"
)

var banner = struct{ wide, narrow string }{
	wide: `╔═╗╔╦╗╦ ╦╔╦╗╔═╗╔╗╔╔╦╗╔═╗╦═╗
║╣  ║║║ ║║║║║╣ ║║║ ║ ║ ║╠╦╝
╚═╝═╩╝╚═╝╩ ╩╚═╝╝╚╝ ╩ ╚═╝╩╚═`,
	narrow: "E D U M E N T O R",
}

// RenderBanner draws the wordmark, spelled out in plain letters below 40
// columns.
func RenderBanner(width int) string {
	text := banner.wide
	if width < 40 {
		text = banner.narrow
	}
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(text)
}
