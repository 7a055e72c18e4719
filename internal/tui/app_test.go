package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/audio"
	"github.com/angristan/hue-scenes/internal/config"
	"github.com/angristan/hue-scenes/internal/session"
	"github.com/angristan/hue-scenes/internal/tui/messages"
	"github.com/angristan/hue-scenes/internal/tui/screens"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(Options{
		Config: &config.Config{GroupLights: []int{1, 2}},
		Bridge: api.NewDemoBridge(),
		Player: &audio.Silent{},
		Clock:  func() time.Time { return time.Date(2024, time.April, 4, 20, 0, 0, 0, time.UTC) },
	})
}

func TestDemoModeInit(t *testing.T) {
	m := newTestModel(t)

	if m.State() != StateMenu {
		t.Errorf("Expected StateMenu, got %s", m.State())
	}
	view := m.View()
	if !strings.Contains(view, "Start new session") || !strings.Contains(view, "demo-bridge.local") {
		t.Errorf("Menu should list items and the bridge:\n%s", view)
	}

	m, _ = update(t, m, key("x"))
	if m.State() != StateMenu {
		t.Errorf("Unknown key should stay in the menu, got %s", m.State())
	}
}

func TestMenuExit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, key("3"))
	if m.State() != StateExit {
		t.Fatalf("Expected StateExit, got %s", m.State())
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestCtrlCQuitsFromAnyState(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key("1"))
	if m.State() != StateStartNewSession {
		t.Fatalf("Expected StateStartNewSession, got %s", m.State())
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestCreateAndRunSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evening.cfg")
	if err := os.WriteFile(path, []byte("[intro]\nduration = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t)
	m, _ = update(t, m, key("1"))

	// Menu keys are prompt input on the new-session screen
	m, _ = update(t, m, key("2"))
	if m.State() != StateStartNewSession {
		t.Fatalf("Typing should not leave the new-session screen, got %s", m.State())
	}

	sess, err := m.CreateSession("evening", path)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	sess.LogPath = filepath.Join(dir, "evening.log")

	m, _ = update(t, m, messages.SessionCreatedMsg{Session: sess})
	if m.State() != StateMenu || m.Session() != sess {
		t.Fatalf("Expected menu with the new session, got %s", m.State())
	}
	if !strings.Contains(m.View(), "evening.cfg") {
		t.Error("Menu should show the configuration file")
	}

	m, _ = update(t, m, key("2"))
	if m.State() != StateSessionRunning {
		t.Fatalf("Expected StateSessionRunning, got %s", m.State())
	}

	start := m.clock()
	m, _ = update(t, m, m.runningScreen.StartCmd(m.player, m.clock)())
	m, _ = update(t, m, messages.TickMsg{RunID: m.runs, Time: start.Add(time.Second)})
	if !strings.Contains(m.View(), "Session finished!") {
		t.Fatalf("Expected finished popup:\n%s", m.View())
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected enter to end the run")
	}
	m, _ = update(t, m, cmd())
	if m.State() != StateMenu {
		t.Errorf("Expected menu after the run, got %s", m.State())
	}

	data, err := os.ReadFile(sess.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 3 {
		t.Errorf("Expected 3 log lines, got %d:\n%s", n, data)
	}
}

func TestCreateSessionErrors(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.CreateSession("x", filepath.Join(t.TempDir(), "none.cfg")); !errors.Is(err, session.ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestRunWithoutScenesReturnsToMenu(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key("2"))
	if m.State() != StateSessionRunning {
		t.Fatalf("Expected StateSessionRunning, got %s", m.State())
	}

	// A start result from an older run is dropped
	m, _ = update(t, m, messages.RunStartedMsg{RunID: m.runs - 1, Err: errors.New("stale")})
	if m.runningScreen.Popup() != "" {
		t.Fatalf("Stale start should be ignored, got popup %q", m.runningScreen.Popup())
	}

	m, _ = update(t, m, m.runningScreen.StartCmd(m.player, m.clock)())
	if !strings.Contains(m.View(), "No scenes found in current session! [enter]") {
		t.Fatalf("Expected no scenes popup:\n%s", m.View())
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	if m.State() != StateMenu {
		t.Errorf("Expected menu, got %s", m.State())
	}
}

// scoredSession creates a session with one long scene playing a track
func scoredSession(t *testing.T, m Model) *session.Session {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "drone.wav"), []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "long.cfg")
	if err := os.WriteFile(path, []byte("[intro]\nduration = 600\naudio = drone.wav\naudio_loop = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sess, err := m.CreateSession("long", path)
	if err != nil {
		t.Fatal(err)
	}
	sess.LogPath = filepath.Join(dir, "long.log")
	return sess
}

func TestAbandonWhileStarting(t *testing.T) {
	m := newTestModel(t)
	sess := scoredSession(t, m)
	m, _ = update(t, m, messages.SessionCreatedMsg{Session: sess})
	m, _ = update(t, m, key("2"))

	// The start command finishes only after esc was pressed
	started := screens.StartRunCmd(m.ctx, sess, m.player, m.runs, m.clock)()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateSessionRunning {
		t.Fatalf("esc while starting should wait for the start, got %s", m.State())
	}
	if !m.runningScreen.Abandoning() || !strings.Contains(m.View(), "Abandoning session") {
		t.Errorf("Expected abandoning view:\n%s", m.View())
	}

	m, cmd := update(t, m, started)
	if cmd == nil {
		t.Fatal("Expected the screen to end once the start reported back")
	}
	m, _ = update(t, m, cmd())
	if m.State() != StateMenu {
		t.Errorf("Expected menu, got %s", m.State())
	}

	if playing, _ := m.player.(*audio.Silent).Playing(); playing != nil {
		t.Error("Expected audio stopped for the abandoned run")
	}
	g, _ := m.bridge.(*api.DemoBridge).Group(api.GroupAll)
	if g.On {
		t.Error("Expected lights off for the abandoned run")
	}
}

func TestAbandonBeforeLightingReady(t *testing.T) {
	m := newTestModel(t)
	sess := scoredSession(t, m)
	m, _ = update(t, m, messages.SessionCreatedMsg{Session: sess})
	m, _ = update(t, m, key("2"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	msg := m.runningScreen.StartCmd(m.player, m.clock)().(messages.RunStartedMsg)
	if !errors.Is(msg.Err, context.Canceled) || msg.Runner != nil {
		t.Fatalf("Cancelled start should not run, got runner=%v err=%v", msg.Runner, msg.Err)
	}
	if _, err := os.Stat(sess.LogPath); !os.IsNotExist(err) {
		t.Error("Cancelled start should not write the session log")
	}

	m, cmd := update(t, m, msg)
	m, _ = update(t, m, cmd())
	if m.State() != StateMenu {
		t.Errorf("Expected menu, got %s", m.State())
	}
}

func TestLateRunStartIsSilenced(t *testing.T) {
	m := newTestModel(t)
	sess := scoredSession(t, m)
	m, _ = update(t, m, messages.SessionCreatedMsg{Session: sess})

	late := screens.StartRunCmd(m.ctx, sess, m.player, 41, m.clock)().(messages.RunStartedMsg)
	if playing, _ := m.player.(*audio.Silent).Playing(); playing == nil {
		t.Fatal("Expected the started run to play")
	}

	m, _ = update(t, m, late)
	if m.State() != StateMenu {
		t.Errorf("Expected menu, got %s", m.State())
	}
	if playing, _ := m.player.(*audio.Silent).Playing(); playing != nil {
		t.Error("Expected a run started outside its screen to be silenced")
	}
	g, _ := m.bridge.(*api.DemoBridge).Group(api.GroupAll)
	if g.On {
		t.Error("Expected lights off")
	}
}
