package home

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/ui/components"
	"github.com/abhisek/edumentor/internal/ui/theme"
)

const (
	logo        = "╔═╗╔╦╗╦ ╦╔╦╗╔═╗╔╗╔╔╦╗╔═╗╦═╗\n║╣  ║║║ ║║║║║╣ ║║║ ║ ║ ║╠╦╝\n╚═╝═╩╝╚═╝╩ ╩╚═╝╝╚╝ ╩ ╚═╝╩╚═"
	logoCompact = "E · D · U · M · E · N · T · O · R"
	tagline     = "Practice exams with a mentor in your terminal"

	buttonWidth = 22
)

func centered(cw int, s string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func bold(c color.Color, s string) string {
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(s)
}

func renderTitle(cw int, compact bool) string {
	title := logo
	if compact {
		title = logoCompact
	}
	return centered(cw, bold(theme.ArcadeYellow, title)+"\n"+theme.Hint.Render(tagline))
}

// renderStatsBar shows catalog size, attempts taken and the average score.
func renderStatsBar(s dashboardStats, cw int, compact bool) string {
	exams, taken := fmt.Sprintf("▤ %d EXAMS", s.exams), fmt.Sprintf("✎ %d TAKEN", s.attempts)
	sep := "  "
	if compact {
		exams, taken = fmt.Sprintf("%d exams", s.exams), fmt.Sprintf("%d taken", s.attempts)
		sep = " "
	}

	avg := lipgloss.NewStyle().Foreground(theme.TextDim).Render("NO SCORES YET")
	if s.attempts > 0 {
		avg = bold(theme.ArcadeCyan, fmt.Sprintf("%d%% AVG", s.avgPct))
	}

	line := strings.Join([]string{bold(theme.ArcadeYellow, exams), bold(theme.Accent, taken), avg}, sep)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderMenu draws bordered buttons, or highlighted plain lines when the
// terminal is too small for borders.
func renderMenu(labels []string, selected, cw int, compact bool) string {
	rows := make([]string, len(labels))
	for i, label := range labels {
		switch {
		case !compact:
			rows[i] = components.ArcadeButton(label, i == selected, buttonWidth)
		case i == selected:
			rows[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			rows[i] = theme.Unselected.Render("   " + label)
		}
	}
	return centered(cw, strings.Join(rows, "\n"))
}

func renderOfflineNote(cw int) string {
	return centered(cw, lipgloss.NewStyle().Foreground(theme.Accent).
		Render("⚠ Offline: feedback uses a standard message (see edumentor --help)"))
}

func renderUpdateNote(latest string, cw int) string {
	return centered(cw, lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("New version %s available, run edumentor update", latest)))
}
