package sequence

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFormatLine(t *testing.T) {
	at := time.Date(2024, time.January, 5, 9, 3, 7, 0, time.UTC)
	want := "[Fri Jan  5 09:03:07 2024] Session started\n"
	if got := FormatLine(at, MessageSessionStarted); got != want {
		t.Errorf("FormatLine() = %q, want %q", got, want)
	}
}

func TestEventLogBeginTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.log")
	l := NewEventLog(path)

	if err := l.Begin(base); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(base, SceneStarted("a")); err != nil {
		t.Fatal(err)
	}
	if err := l.Begin(base.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := FormatLine(base.Add(time.Minute), MessageSessionStarted); string(data) != want {
		t.Errorf("Expected only the new start line, got %q", data)
	}
}

func TestEventLogUnwritable(t *testing.T) {
	l := NewEventLog(filepath.Join(t.TempDir(), "missing", "dir", "s.log"))
	if err := l.Append(base, "x"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestSceneMessages(t *testing.T) {
	if got := SceneStarted("intro"); got != `Sequence "intro" started` {
		t.Errorf("SceneStarted() = %q", got)
	}
	if got := SceneFinished("intro"); got != `Sequence "intro" finished` {
		t.Errorf("SceneFinished() = %q", got)
	}
}
