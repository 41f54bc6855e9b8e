// Package layout draws the application chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/ui/theme"
)

// Terminals smaller than MinWidth x MinHeight get a resize notice instead
// of the UI.
const (
	MinWidth  = 80
	MinHeight = 24
)

const (
	brand    = "Edumentor"
	barInset = 4 // border and padding of a header or footer bar
	hintGap  = "   "
)

type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	key := lipgloss.NewStyle().Bold(true).Foreground(theme.Text)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	return key.Render(h.Key) + " " + desc.Render(h.Description)
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// TooSmallNotice fills the terminal with the minimum and current sizes.
func TooSmallNotice(width, height int) string {
	msg := fmt.Sprintf("Terminal too small\n\nneed %d x %d\nhave %d x %d\n\nResize to continue.",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(theme.Text).
		AlignHorizontal(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(msg)
}

// Frame is the chrome for one render: a header bar with the screen title
// and run status, and a footer bar of key hints.
type Frame struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Render draws the header and footer and fills the space between them with
// body, which receives the width and height left over.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	header := RenderHeader(f.Title, f.Status, width)
	footer := RenderFooter(f.Hints, width)

	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// RenderHeader renders the brand on the left, the title centered, and
// status on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-barInset, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	// Center the title on the bar, then let the status take what is left.
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter renders key hints left to right, dropping those that no
// longer fit on one line.
func RenderFooter(hints []KeyHint, width int) string {
	return bar(strings.Join(fitHints(hints, max(width-barInset, 0)), hintGap), width)
}

func fitHints(hints []KeyHint, room int) []string {
	parts := make([]string, 0, len(hints))
	used := 0
	for _, h := range hints {
		part := h.render()
		need := lipgloss.Width(part)
		if len(parts) > 0 {
			need += len(hintGap)
		}
		if used+need > room {
			break
		}
		parts = append(parts, part)
		used += need
	}
	return parts
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
