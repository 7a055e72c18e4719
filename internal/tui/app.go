package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/audio"
	"github.com/angristan/hue-scenes/internal/config"
	"github.com/angristan/hue-scenes/internal/session"
	"github.com/angristan/hue-scenes/internal/tui/messages"
	"github.com/angristan/hue-scenes/internal/tui/screens"
)

// Options are the collaborators of the application
type Options struct {
	Config *config.Config
	// Bridge is nil when no bridge is paired
	Bridge api.BridgeClient
	Player audio.Player
	Logger *zap.Logger
	// Clock stamps run starts; defaults to time.Now
	Clock func() time.Time
}

// Model is the main application model
type Model struct {
	// Configuration
	config *config.Config

	// Collaborators
	bridge api.BridgeClient
	player audio.Player
	logger *zap.Logger
	clock  func() time.Time

	// Current session, empty until one is created
	session *session.Session

	// Current state
	state State
	runs  int

	// Screen models
	menuScreen       screens.MenuModel
	newSessionScreen screens.NewSessionModel
	runningScreen    screens.RunningModel

	// Window size
	width  int
	height int

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a new application model showing the menu
func NewModel(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	player := opts.Player
	if player == nil {
		player = &audio.Silent{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	m := Model{
		config: cfg,
		bridge: opts.Bridge,
		player: player,
		logger: logger,
		clock:  clock,
		state:  StateMenu,
		ctx:    ctx,
		cancel: cancel,
	}
	m.session = m.newSession("", "")
	m.menuScreen = screens.NewMenuModel(m.session, m.bridgeHost())

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Hue Scenes")
}

// State returns the current top-level state
func (m Model) State() State {
	return m.state
}

// Session returns the current session
func (m Model) Session() *session.Session {
	return m.session
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuScreen.SetSize(msg.Width, msg.Height)
		m.newSessionScreen.SetSize(msg.Width, msg.Height)
		m.runningScreen.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global key handlers
		if msg.String() == "ctrl+c" {
			if m.state == StateSessionRunning {
				if r := m.runningScreen.Runner(); r != nil {
					r.Abort(m.ctx)
				}
			}
			m.cancel()
			return m, tea.Quit
		}
		if m.state == StateMenu {
			return m.transition(Next(m.state, KeyEvent(msg.String())))
		}

	case messages.SessionCreatedMsg:
		m.session = msg.Session
		m.logger.Info("session created",
			zap.String("session_id", m.session.ID.String()),
			zap.String("name", m.session.Name),
			zap.Int("scenes", len(m.session.Scenes())))
		return m.transition(Next(m.state, EventSessionCreated))

	case messages.SessionCancelledMsg:
		return m.transition(Next(m.state, EventSessionCancelled))

	case messages.RunEndedMsg:
		return m.transition(Next(m.state, EventRunEnded))

	case messages.RunStartedMsg:
		// A start that outlived its screen still plays scene 0
		if m.state != StateSessionRunning || msg.RunID != m.runs {
			if msg.Runner != nil {
				msg.Runner.Abort(m.ctx)
				m.logger.Warn("silenced run started after it was left", zap.Int("run", msg.RunID))
			}
			return m, nil
		}
	}

	// Route to current screen
	switch m.state {
	case StateStartNewSession:
		var cmd tea.Cmd
		m.newSessionScreen, cmd = m.newSessionScreen.Update(msg)
		cmds = append(cmds, cmd)

	case StateSessionRunning:
		var cmd tea.Cmd
		m.runningScreen, cmd = m.runningScreen.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// transition enters next, preparing its screen
func (m Model) transition(next State) (tea.Model, tea.Cmd) {
	if next == m.state {
		return m, nil
	}
	m.logger.Debug("state transition",
		zap.Stringer("from", m.state), zap.Stringer("to", next))
	m.state = next

	switch next {
	case StateMenu:
		m.menuScreen.SetSession(m.session, m.bridgeHost())
		return m, nil

	case StateStartNewSession:
		m.newSessionScreen = screens.NewNewSessionModel(m.CreateSession)
		m.newSessionScreen.SetSize(m.width, m.height)
		return m, m.newSessionScreen.Init()

	case StateSessionRunning:
		m.runs++
		m.runningScreen = screens.NewRunningModel(m.ctx, m.session, m.runs)
		m.runningScreen.SetSize(m.width, m.height)
		return m, tea.Batch(
			m.runningScreen.Init(),
			m.runningScreen.StartCmd(m.player, m.clock),
		)

	case StateExit:
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

// newSession builds an unloaded session wired to the app's collaborators
func (m Model) newSession(name, configPath string) *session.Session {
	return session.New(session.Options{
		Name:        name,
		ConfigPath:  configPath,
		Lights:      m.bridge,
		GroupLights: m.config.GroupLights,
		Logger:      m.logger,
	})
}

// CreateSession builds a session and loads its configuration
func (m Model) CreateSession(name, configPath string) (*session.Session, error) {
	sess := m.newSession(name, configPath)
	if err := sess.LoadConfiguration(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (m Model) bridgeHost() string {
	if m.bridge == nil {
		return ""
	}
	return m.bridge.Host()
}

// View renders the current screen
func (m Model) View() string {
	switch m.state {
	case StateMenu:
		return m.menuScreen.View()
	case StateStartNewSession:
		return m.newSessionScreen.View()
	case StateSessionRunning:
		return m.runningScreen.View()
	default:
		return ""
	}
}
