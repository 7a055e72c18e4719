package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/angristan/hue-scenes/internal/session"
	"github.com/angristan/hue-scenes/internal/tui/components"
	"github.com/angristan/hue-scenes/internal/tui/styles"
)

// MenuItems are the numbered main menu entries
var MenuItems = []string{"Start new session", "Run session", "Exit"}

// MenuModel is the main menu. Key handling lives in the root model.
type MenuModel struct {
	info []components.InfoItem

	// Window size
	width  int
	height int
}

// NewMenuModel creates a menu describing sess
func NewMenuModel(sess *session.Session, bridgeHost string) MenuModel {
	m := MenuModel{}
	m.SetSession(sess, bridgeHost)
	return m
}

// SetSize sets the terminal size
func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetSession refreshes the session info shown above the menu
func (m *MenuModel) SetSession(sess *session.Session, bridgeHost string) {
	m.info = []components.InfoItem{
		{Label: "Session name", Value: sess.Name},
		{Label: "Configuration file", Value: sess.ConfigPath},
		{Label: "Log file", Value: sess.LogPath},
		{Label: "Bridge", Value: bridgeHost},
	}
	if n := len(sess.Scenes()); n > 0 {
		m.info = append(m.info, components.InfoItem{Label: "Scenes", Value: fmt.Sprintf("%d", n)})
	}
}

// View renders the menu
func (m MenuModel) View() string {
	var b strings.Builder

	header := styles.StyleHeaderGradient.Render("  Hue Scenes  ")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, header))
	b.WriteString("\n\n")

	panelWidth := 80
	if m.width > 0 {
		panelWidth = min(max(m.width, 40), 80)
	}
	b.WriteString(components.RenderInfoPanel(m.info, panelWidth))
	b.WriteString("\n\n")

	for i, item := range MenuItems {
		b.WriteString(styles.StyleMenuKey.Render(fmt.Sprintf("%d. ", i+1)))
		b.WriteString(styles.StyleMenuItem.Render(item))
		b.WriteString("\n")
	}

	b.WriteString(styles.StyleHelp.Render("1/2/3 select • ctrl+c quit"))
	return b.String()
}
