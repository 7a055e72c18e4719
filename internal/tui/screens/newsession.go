package screens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/angristan/hue-scenes/internal/session"
	"github.com/angristan/hue-scenes/internal/tui/messages"
	"github.com/angristan/hue-scenes/internal/tui/styles"
)

var errNameRequired = errors.New("session name is required")

// NewSessionStep is the prompt the new-session screen is on
type NewSessionStep int

const (
	StepName NewSessionStep = iota
	StepConfig
	StepConfirm
	StepCreating
)

// CreateFunc builds a session and loads its configuration
type CreateFunc func(name, configPath string) (*session.Session, error)

// NewSessionModel prompts for a session name and configuration file
type NewSessionModel struct {
	step        NewSessionStep
	nameInput   textinput.Model
	configInput textinput.Model
	spinner     spinner.Model
	create      CreateFunc
	err         error

	// Window size
	width  int
	height int
}

// NewNewSessionModel creates the screen with an empty name prompt focused
func NewNewSessionModel(create CreateFunc) NewSessionModel {
	name := textinput.New()
	name.Placeholder = "evening"
	name.CharLimit = 64
	name.Focus()

	cfg := textinput.New()
	cfg.Placeholder = "scenes.cfg"
	cfg.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	return NewSessionModel{
		step:        StepName,
		nameInput:   name,
		configInput: cfg,
		spinner:     sp,
		create:      create,
	}
}

// Init starts the cursor blinking
func (m NewSessionModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the terminal size
func (m *NewSessionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Step returns the current prompt
func (m NewSessionModel) Step() NewSessionStep {
	return m.step
}

// Err returns the error shown inline, if any
func (m NewSessionModel) Err() error {
	return m.err
}

// Update handles messages
func (m NewSessionModel) Update(msg tea.Msg) (NewSessionModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.step == StepCreating {
			return m, nil
		}
		if msg.String() == "esc" {
			return m, func() tea.Msg { return messages.SessionCancelledMsg{} }
		}

		switch m.step {
		case StepName:
			if msg.String() == "enter" {
				if strings.TrimSpace(m.nameInput.Value()) == "" {
					m.err = errNameRequired
					return m, nil
				}
				m.err = nil
				m.step = StepConfig
				m.nameInput.Blur()
				cmds = append(cmds, m.configInput.Focus())
				return m, tea.Batch(cmds...)
			}

		case StepConfig:
			if msg.String() == "enter" {
				m.step = StepConfirm
				m.configInput.Blur()
				return m, nil
			}

		case StepConfirm:
			switch msg.String() {
			case "y", "Y":
				m.step = StepCreating
				m.err = nil
				return m, tea.Batch(m.spinner.Tick, m.createCmd())
			case "n", "N":
				return m.restart()
			}
			return m, nil
		}

	case messages.SessionErrorMsg:
		// Back to the path prompt so it can be corrected
		m.err = msg.Err
		m.step = StepConfig
		return m, m.configInput.Focus()

	case spinner.TickMsg:
		if m.step == StepCreating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Update the focused text input
	switch m.step {
	case StepName:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
	case StepConfig:
		var cmd tea.Cmd
		m.configInput, cmd = m.configInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m NewSessionModel) restart() (NewSessionModel, tea.Cmd) {
	m.nameInput.Reset()
	m.configInput.Reset()
	m.configInput.Blur()
	m.err = nil
	m.step = StepName
	return m, m.nameInput.Focus()
}

// View renders the prompts entered so far
func (m NewSessionModel) View() string {
	var b strings.Builder

	b.WriteString(styles.StyleHeaderGradient.Render("  Start new session  "))
	b.WriteString("\n\n")

	b.WriteString(styles.StylePrimary.Render("Enter session name:"))
	b.WriteString("\n")
	b.WriteString(m.inputStyle(StepName).Render(m.nameInput.View()))
	b.WriteString("\n")

	if m.step >= StepConfig {
		b.WriteString(styles.StylePrimary.Render("Enter configuration file location:"))
		b.WriteString("\n")
		b.WriteString(m.inputStyle(StepConfig).Render(m.configInput.View()))
		b.WriteString("\n")
	}

	switch m.step {
	case StepConfirm:
		b.WriteString("\nIs this correct [y/n]?\n")
	case StepCreating:
		b.WriteString(fmt.Sprintf("\n%s Loading %s...\n", m.spinner.View(), m.configInput.Value()))
	}

	if m.err != nil {
		b.WriteString("\n" + styles.StyleError.Render("✗ "+m.err.Error()) + "\n")
	}

	b.WriteString(styles.StyleHelp.Render("enter confirm • esc back to menu"))
	return b.String()
}

func (m NewSessionModel) inputStyle(step NewSessionStep) lipgloss.Style {
	if m.step == step {
		return styles.StyleInputFocused
	}
	return styles.StyleInput
}

func (m NewSessionModel) createCmd() tea.Cmd {
	name := strings.TrimSpace(m.nameInput.Value())
	path := strings.TrimSpace(m.configInput.Value())
	create := m.create
	return func() tea.Msg {
		sess, err := create(name, path)
		if err != nil {
			return messages.SessionErrorMsg{Err: err}
		}
		return messages.SessionCreatedMsg{Session: sess}
	}
}
