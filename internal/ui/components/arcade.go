package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/ui/theme"
)

// ContentWidth is the inner width every boxed section on a screen shares:
// the frame width less the cabinet border and padding, kept between 20
// and 72 columns.
func ContentWidth(frameWidth int) int {
	const chrome = 6
	return max(20, min(frameWidth-chrome, 72))
}

// CabinetFrame draws the outer double border at width x height with
// content centred in both directions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width-2).
		Height(height-2).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		AlignHorizontal(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}

func ArcadeCard(content string, cw int) string {
	return card(cw).Render(content)
}

// TitledCard is an ArcadeCard headed by title.
func TitledCard(title, content string, cw int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Render(title)
	return card(cw).Render(lipgloss.JoinVertical(lipgloss.Left, head, "", content))
}

func card(cw int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(cw-2).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// ArcadeButton is a bordered label of fixed width. The selected button is
// drawn inverted with a pointer.
func ArcadeButton(label string, selected bool, width int) string {
	st := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		AlignHorizontal(lipgloss.Center)
	if selected {
		st = st.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow)
		label = "▸ " + label
	} else {
		st = st.Foreground(theme.Text).BorderForeground(theme.Border)
	}
	return st.Render(label)
}
