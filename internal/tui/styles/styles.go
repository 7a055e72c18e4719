package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - lavender theme with a cyan progress bar
var (
	// Primary colors
	ColorPrimary    = lipgloss.Color("#B794F4") // Lavender
	ColorAccent     = lipgloss.Color("#E9D8FD") // Light lavender
	ColorSurface    = lipgloss.Color("#2D2D44") // Surface color
	ColorSurfaceAlt = lipgloss.Color("#3D3D5C") // Alternate surface

	// Text colors
	ColorText        = lipgloss.Color("#FAFAFA") // Primary text
	ColorTextMuted   = lipgloss.Color("#A0A0B0") // Muted text
	ColorTextDim     = lipgloss.Color("#6B6B80") // Dim text
	ColorTextInverse = lipgloss.Color("#1A1A2E") // Inverse text

	// State colors
	ColorSuccess = lipgloss.Color("#68D391") // Green
	ColorWarning = lipgloss.Color("#F6E05E") // Yellow
	ColorError   = lipgloss.Color("#FC8181") // Red

	// Progress bar
	ColorBar = lipgloss.Color("#00B5D8") // Cyan
)

// Styles for various UI components
var (
	StyleHeaderGradient = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText).
				Background(ColorPrimary).
				Padding(0, 2)

	// Menu styles
	StyleMenuKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StyleMenuItem = lipgloss.NewStyle().
			Foreground(ColorText)

	// Info panel styles
	StyleInfoPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSurface).
			Padding(0, 1).
			MarginBottom(1)

	StyleInfoLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	// Scene row styles
	StyleSceneName = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleSceneActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	StyleSceneFinished = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	StyleBarFill = lipgloss.NewStyle().
			Foreground(ColorBar)

	StyleBarEmpty = lipgloss.NewStyle().
			Foreground(ColorSurfaceAlt)

	// Modal styles
	StyleModal = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Background(ColorSurface).
			Padding(1, 2)

	// Input styles
	StyleInput = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorSurfaceAlt).
			Padding(0, 1)

	StyleInputFocused = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Help styles
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			MarginTop(1)

	// Loading/spinner styles
	StyleSpinner = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// Error styles
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// Success styles
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// Text muted style
	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// Primary style
	StylePrimary = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)
