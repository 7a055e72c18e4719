package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/angristan/hue-scenes/internal/tui/styles"
)

// InfoItem is one labelled value of an info panel
type InfoItem struct {
	Label string
	Value string
}

// RenderInfoPanel renders labelled values with aligned columns. Empty
// values render as "None".
func RenderInfoPanel(items []InfoItem, width int) string {
	labelWidth := 0
	for _, item := range items {
		labelWidth = max(labelWidth, lipgloss.Width(item.Label))
	}

	var b strings.Builder
	for i, item := range items {
		value := item.Value
		valueStyle := styles.StyleMenuItem
		if value == "" {
			value = "None"
			valueStyle = styles.StyleTextMuted
		}

		label := styles.StyleInfoLabel.Render(item.Label)
		padding := labelWidth - lipgloss.Width(item.Label)
		b.WriteString(label + strings.Repeat(" ", padding+2) + valueStyle.Render(truncate(value, width-labelWidth-8)))
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}

	panel := styles.StyleInfoPanel
	if width > 4 {
		panel = panel.Width(width - 4)
	}
	return panel.Render(b.String())
}

// truncate shortens s from the left, keeping the file name end of paths
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[len(s)-maxLen:]
	}
	return "..." + s[len(s)-maxLen+3:]
}
