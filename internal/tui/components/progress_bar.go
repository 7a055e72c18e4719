package components

import (
	"strings"

	"github.com/angristan/hue-scenes/internal/models"
	"github.com/angristan/hue-scenes/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// BarWidth is the number of cells in a full scene progress bar
const BarWidth = 60

// RenderProgressBar renders fill of width cells as a solid bar followed by
// an empty track
func RenderProgressBar(fill, width int) string {
	return renderBar(fill, width, styles.StyleBarFill)
}

// RenderPresetBar renders a progress bar in the color of a lighting preset
func RenderPresetBar(fill, width int, preset models.Color) string {
	return renderBar(fill, width, lipgloss.NewStyle().Foreground(lipgloss.Color(preset.HexString())))
}

func renderBar(fill, width int, fillStyle lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	fill = max(0, min(fill, width))

	var b strings.Builder
	if fill > 0 {
		b.WriteString(fillStyle.Render(strings.Repeat("█", fill)))
	}
	if fill < width {
		b.WriteString(styles.StyleBarEmpty.Render(strings.Repeat("─", width-fill)))
	}
	return b.String()
}
