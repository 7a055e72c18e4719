package screens

import (
	"strings"
	"testing"

	"github.com/angristan/hue-scenes/internal/session"
)

func TestMenuView(t *testing.T) {
	m := NewMenuModel(session.New(session.Options{}), "")
	view := m.View()
	for _, item := range []string{"1. ", "Start new session", "Run session", "Exit", "None"} {
		if !strings.Contains(view, item) {
			t.Errorf("Menu missing %q", item)
		}
	}

	m.SetSession(session.New(session.Options{Name: "evening", ConfigPath: "evening.cfg"}), "192.168.1.20")
	view = m.View()
	for _, want := range []string{"evening", "evening.cfg", "evening.log", "192.168.1.20"} {
		if !strings.Contains(view, want) {
			t.Errorf("Menu missing %q", want)
		}
	}
}
