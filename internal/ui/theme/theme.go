// Package theme holds the shared color palette and text styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/quiz"
)

var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
	BgDark  = lipgloss.Color("#0F172A")
	BgCard  = lipgloss.Color("#1E293B")

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title = fg(Primary).Bold(true).Align(lipgloss.Center)
	Hint  = fg(TextDim).Italic(true)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)

	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)
)

// TierStyle colors a score tier.
func TierStyle(t quiz.Tier) lipgloss.Style {
	switch t {
	case quiz.TierExcellent:
		return fg(Success).Bold(true)
	case quiz.TierGood:
		return fg(ArcadeCyan).Bold(true)
	}
	return fg(Accent).Bold(true)
}

// AccuracyColor grades a 0..1 accuracy with the same thresholds as tiers.
func AccuracyColor(ratio float64) color.Color {
	switch {
	case ratio >= 0.8:
		return Success
	case ratio >= 0.5:
		return Accent
	}
	return Error
}
