package components

import (
	"strings"

	"github.com/angristan/hue-scenes/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// RenderHeader renders the application header with a status on the right
func RenderHeader(width int, title, status string, healthy bool) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.ColorText).
		Background(styles.ColorPrimary).
		Padding(0, 1)

	statusStyle := lipgloss.NewStyle().
		Foreground(styles.ColorSuccess).
		Padding(0, 1)
	if !healthy {
		statusStyle = statusStyle.Foreground(styles.ColorWarning)
	}

	left := titleStyle.Render(title)
	right := statusStyle.Render(status)

	spacing := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	headerBg := lipgloss.NewStyle().
		Background(styles.ColorSurface)
	if width > 0 {
		headerBg = headerBg.Width(width)
	}

	return headerBg.Render(left + strings.Repeat(" ", spacing) + right)
}

// RenderPopup renders a boxed message centred in width x height
func RenderPopup(width, height int, message string) string {
	box := styles.StyleModal.Render(message)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
