package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/angristan/hue-scenes/internal/audio"
	"github.com/angristan/hue-scenes/internal/sequence"
	"github.com/angristan/hue-scenes/internal/session"
	"github.com/angristan/hue-scenes/internal/tui/components"
	"github.com/angristan/hue-scenes/internal/tui/messages"
	"github.com/angristan/hue-scenes/internal/tui/styles"
)

// Popup messages shown at the end of a run
const (
	PopupNoScenes = "No scenes found in current session! [enter]"
	PopupFinished = "Session finished! [enter]"
)

// RunningModel plays a session and renders one row per scene
type RunningModel struct {
	// ctx is cancelled when the run is left; parent outlives it and
	// carries the commands that silence an abandoned run
	ctx    context.Context
	parent context.Context
	cancel context.CancelFunc

	runID   int
	session *session.Session
	runner  *sequence.Runner
	spinner spinner.Model
	popup   string

	// Set when esc is pressed before the runner was handed over
	abandoning bool

	// Window size
	width  int
	height int
}

// NewRunningModel creates the screen for one run of sess. runID tags the
// run's ticks so stale ones from an earlier run are dropped.
func NewRunningModel(parent context.Context, sess *session.Session, runID int) RunningModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	ctx, cancel := context.WithCancel(parent)
	return RunningModel{
		ctx:     ctx,
		parent:  parent,
		cancel:  cancel,
		runID:   runID,
		session: sess,
		spinner: sp,
	}
}

// Init starts the spinner
func (m RunningModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize sets the terminal size
func (m *RunningModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Popup returns the popup being shown, empty while the run plays
func (m RunningModel) Popup() string {
	return m.popup
}

// Runner returns the run's runner, nil until it started
func (m RunningModel) Runner() *sequence.Runner {
	return m.runner
}

// Abandoning reports whether esc was pressed while the run was starting
func (m RunningModel) Abandoning() bool {
	return m.abandoning
}

// StartCmd starts this screen's run under its own context
func (m RunningModel) StartCmd(player audio.Player, clock func() time.Time) tea.Cmd {
	return StartRunCmd(m.ctx, m.session, player, m.runID, clock)
}

// StartRunCmd connects the lighting and starts the run at clock(). A run
// whose ctx is already cancelled once the lighting is ready is not started.
func StartRunCmd(ctx context.Context, sess *session.Session, player audio.Player, runID int, clock func() time.Time) tea.Cmd {
	return func() tea.Msg {
		runner := sess.NewRunner(ctx, player)
		if err := ctx.Err(); err != nil {
			return messages.RunStartedMsg{RunID: runID, Err: err}
		}
		if err := runner.Start(ctx, clock()); err != nil {
			return messages.RunStartedMsg{RunID: runID, Err: err}
		}
		return messages.RunStartedMsg{RunID: runID, Runner: runner}
	}
}

func (m RunningModel) tickCmd() tea.Cmd {
	id := m.runID
	return tea.Tick(sequence.TickInterval, func(t time.Time) tea.Msg {
		return messages.TickMsg{RunID: id, Time: t}
	})
}

func ended() tea.Msg {
	return messages.RunEndedMsg{}
}

// end leaves the screen, releasing the run's context
func (m RunningModel) end() tea.Cmd {
	m.cancel()
	return ended
}

// Update handles messages
func (m RunningModel) Update(msg tea.Msg) (RunningModel, tea.Cmd) {
	log := m.session.Logger()

	switch msg := msg.(type) {
	case messages.RunStartedMsg:
		if msg.RunID != m.runID {
			return m, nil
		}
		if m.abandoning {
			if msg.Runner != nil {
				msg.Runner.Abort(m.parent)
				log.Info("session run abandoned while starting")
			}
			return m, m.end()
		}
		if msg.Err != nil {
			if errors.Is(msg.Err, sequence.ErrNoScenes) {
				m.popup = PopupNoScenes
			} else {
				log.Error("failed to start session", zap.Error(msg.Err))
				m.popup = fmt.Sprintf("Could not start session: %v [enter]", msg.Err)
			}
			return m, nil
		}
		m.runner = msg.Runner
		log.Info("session run started", zap.Int("scenes", len(m.runner.Scenes())))
		return m, m.tickCmd()

	case messages.TickMsg:
		if msg.RunID != m.runID || m.runner == nil || m.popup != "" {
			return m, nil
		}
		if m.runner.Tick(m.ctx, msg.Time) {
			log.Info("session run finished", zap.Int("scenes", len(m.runner.Scenes())))
			m.popup = PopupFinished
			return m, nil
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		if m.popup != "" {
			if msg.String() == "enter" {
				return m, m.end()
			}
			return m, nil
		}
		if msg.String() == "esc" {
			if m.runner == nil {
				// The start command still owns the session; leave once it
				// reports back
				m.abandoning = true
				m.cancel()
				return m, nil
			}
			m.runner.Abort(m.parent)
			log.Info("session run abandoned", zap.Stringer("progress", m.runner))
			return m, m.end()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the scene rows, or the popup once the run ended
func (m RunningModel) View() string {
	if m.popup != "" {
		return components.RenderPopup(m.width, m.height, m.popup)
	}

	var b strings.Builder
	b.WriteString(components.RenderHeader(m.width, " "+m.session.Name+" ", m.status(), m.healthy()))
	b.WriteString("\n\n")

	if m.runner == nil {
		if m.abandoning {
			b.WriteString(fmt.Sprintf("%s Abandoning session...\n", m.spinner.View()))
			return b.String()
		}
		b.WriteString(fmt.Sprintf("%s Starting session...\n", m.spinner.View()))
		return b.String()
	}

	for i, scene := range m.runner.Scenes() {
		marker := ""
		if i == m.runner.Active() && scene.Running() {
			marker = m.spinner.View()
		}
		b.WriteString(components.RenderSceneRow(scene, marker))
		b.WriteString("\n")
	}

	b.WriteString(styles.StyleHelp.Render("esc abandon run • ctrl+c quit"))
	return b.String()
}

func (m RunningModel) status() string {
	parts := []string{m.bridgeState()}
	if m.runner != nil {
		parts = append(parts, fmt.Sprintf("%d/%d finished", m.runner.Finished(), len(m.runner.Scenes())))
	}
	return strings.Join(parts, " • ")
}

func (m RunningModel) bridgeState() string {
	switch {
	case !m.session.HasLighting():
		return "no bridge"
	// The session is only read once the start command handed the runner over
	case m.runner == nil:
		return "connecting"
	case m.session.Connected():
		return "bridge " + m.session.Lighting().Host()
	default:
		return "bridge unreachable"
	}
}

func (m RunningModel) healthy() bool {
	if !m.session.HasLighting() || m.runner == nil {
		return true
	}
	return m.session.Connected()
}
