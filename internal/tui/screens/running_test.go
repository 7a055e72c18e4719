package screens

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/audio"
	"github.com/angristan/hue-scenes/internal/session"
	"github.com/angristan/hue-scenes/internal/tui/messages"
)

var runStart = time.Date(2024, time.February, 2, 21, 0, 0, 0, time.UTC)

func loadedSession(t *testing.T, content string, lights api.BridgeClient) *session.Session {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "s.cfg")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	sess := session.New(session.Options{
		Name:       "evening",
		ConfigPath: path,
		LogPath:    filepath.Join(dir, "evening.log"),
		Lights:     lights,
	})
	if err := sess.LoadConfiguration(); err != nil {
		t.Fatal(err)
	}
	return sess
}

func startedModel(t *testing.T, sess *session.Session) RunningModel {
	t.Helper()
	ctx := context.Background()
	m := NewRunningModel(ctx, sess, 7)
	msg := StartRunCmd(ctx, sess, &audio.Silent{}, 7, func() time.Time { return runStart })()
	m, _ = m.Update(msg)
	return m
}

func tick(m RunningModel, at time.Duration) (RunningModel, bool) {
	m, cmd := m.Update(messages.TickMsg{RunID: 7, Time: runStart.Add(at)})
	return m, cmd != nil
}

func TestRunningPlaysToCompletion(t *testing.T) {
	sess := loadedSession(t, "[intro]\nduration = 2\n[main]\nduration = 3\n", api.NewDemoBridge())
	m := startedModel(t, sess)
	if m.Runner() == nil {
		t.Fatal("Expected runner to start")
	}

	m, more := tick(m, time.Second)
	if !more {
		t.Fatal("Expected another tick to be scheduled")
	}
	view := m.View()
	for _, want := range []string{"intro [Remaining: 1.00]", "main [Not started]", "bridge demo-bridge.local", "0/2 finished"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q:\n%s", want, view)
		}
	}

	m, _ = tick(m, 2*time.Second)
	view = m.View()
	if !strings.Contains(view, "intro [Finished]") || !strings.Contains(view, "main [Remaining: 3.00]") {
		t.Errorf("Expected handover in view:\n%s", view)
	}

	m, more = tick(m, 5*time.Second)
	if more {
		t.Error("No tick should follow the last scene")
	}
	if m.Popup() != PopupFinished {
		t.Fatalf("Popup = %q, want %q", m.Popup(), PopupFinished)
	}
	if !strings.Contains(m.View(), "Session finished! [enter]") {
		t.Error("Expected finished popup in view")
	}

	// Only enter dismisses the popup
	if _, cmd := m.Update(runes("x")); cmd != nil {
		t.Error("Other keys should not dismiss the popup")
	}
	_, cmd := m.Update(keyEnter)
	if cmd == nil {
		t.Fatal("Expected enter to end the run")
	}
	if _, ok := cmd().(messages.RunEndedMsg); !ok {
		t.Error("Expected RunEndedMsg")
	}
}

func TestRunningNoScenes(t *testing.T) {
	sess := session.New(session.Options{})
	m := startedModel(t, sess)

	if m.Popup() != PopupNoScenes {
		t.Fatalf("Popup = %q, want %q", m.Popup(), PopupNoScenes)
	}
	if !strings.Contains(m.View(), "No scenes found in current session! [enter]") {
		t.Error("Expected no scenes popup in view")
	}
}

func TestRunningDropsStaleTicks(t *testing.T) {
	sess := loadedSession(t, "[only]\nduration = 1\n", nil)
	m := startedModel(t, sess)

	m, cmd := m.Update(messages.TickMsg{RunID: 6, Time: runStart.Add(time.Hour)})
	if cmd != nil || m.Runner().Done() {
		t.Error("Tick from another run should be ignored")
	}
	if !strings.Contains(m.View(), "no bridge") {
		t.Error("Expected no bridge status")
	}
}

func TestRunningAbandon(t *testing.T) {
	bridge := api.NewDemoBridge()
	sess := loadedSession(t, "[long]\nduration = 600\nbri = 200\n", bridge)
	m := startedModel(t, sess)

	g, _ := bridge.Group(api.GroupAll)
	if !g.On {
		t.Fatal("Expected lights on while running")
	}

	_, cmd := m.Update(keyEsc)
	if cmd == nil {
		t.Fatal("Expected esc to end the run")
	}
	if _, ok := cmd().(messages.RunEndedMsg); !ok {
		t.Error("Expected RunEndedMsg")
	}
	g, _ = bridge.Group(api.GroupAll)
	if g.On {
		t.Error("Expected lights off after abandoning")
	}
}

func TestRunningUnreachableBridge(t *testing.T) {
	bridge := api.NewDemoBridge()
	bridge.SetUnreachable(true)
	sess := loadedSession(t, "[only]\nduration = 1\n", bridge)
	m := startedModel(t, sess)

	if m.Runner() == nil {
		t.Fatal("Run should start without lighting")
	}
	if !strings.Contains(m.View(), "bridge unreachable") {
		t.Errorf("Expected unreachable status:\n%s", m.View())
	}
	m, _ = tick(m, time.Second)
	if m.Popup() != PopupFinished {
		t.Error("Run should finish without lighting")
	}
}

func TestRunningAbandonWhileStarting(t *testing.T) {
	bridge := api.NewDemoBridge()
	sess := loadedSession(t, "[long]\nduration = 600\nbri = 200\n", bridge)
	m := NewRunningModel(context.Background(), sess, 7)

	// Started under a context the screen does not cancel
	started := StartRunCmd(context.Background(), sess, &audio.Silent{}, 7, func() time.Time { return runStart })()

	m, cmd := m.Update(keyEsc)
	if cmd != nil {
		t.Fatal("esc before the runner arrives should wait for it")
	}
	if !m.Abandoning() || !strings.Contains(m.View(), "Abandoning session") {
		t.Errorf("Expected abandoning view:\n%s", m.View())
	}

	m, cmd = m.Update(started)
	if cmd == nil {
		t.Fatal("Expected the screen to end")
	}
	if _, ok := cmd().(messages.RunEndedMsg); !ok {
		t.Error("Expected RunEndedMsg")
	}
	if m.Runner() != nil {
		t.Error("Abandoned run should not be adopted")
	}
	g, _ := bridge.Group(api.GroupAll)
	if g.On {
		t.Error("Expected lights off after abandoning")
	}

	if msg := m.StartCmd(&audio.Silent{}, time.Now)().(messages.RunStartedMsg); msg.Runner != nil {
		t.Error("Start under the cancelled run context should not run")
	}
}
