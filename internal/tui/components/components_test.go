package components

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/angristan/hue-scenes/internal/sequence"
)

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		fill, width int
		full, empty int
	}{
		{30, 60, 30, 30},
		{0, 10, 0, 10},
		{10, 10, 10, 0},
		{15, 10, 10, 0},
		{-2, 5, 0, 5},
	}
	for _, tt := range tests {
		bar := RenderProgressBar(tt.fill, tt.width)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("RenderProgressBar(%d, %d): %d filled cells, want %d", tt.fill, tt.width, got, tt.full)
		}
		if got := strings.Count(bar, "─"); got != tt.empty {
			t.Errorf("RenderProgressBar(%d, %d): %d empty cells, want %d", tt.fill, tt.width, got, tt.empty)
		}
		if w := lipgloss.Width(bar); w != tt.width {
			t.Errorf("RenderProgressBar(%d, %d) width = %d", tt.fill, tt.width, w)
		}
	}
	if RenderProgressBar(3, 0) != "" {
		t.Error("Zero-width bar should be empty")
	}
}

func TestSceneLabel(t *testing.T) {
	tests := []struct {
		status sequence.Status
		want   string
	}{
		{sequence.Status{State: sequence.StateNotStarted, Remaining: 60}, "intro [Not started]"},
		{sequence.Status{State: sequence.StateRunning, Remaining: 12.346}, "intro [Remaining: 12.35]"},
		{sequence.Status{State: sequence.StateRunning, Remaining: 0.5}, "intro [Remaining: 0.50]"},
		{sequence.Status{State: sequence.StateFinished}, "intro [Finished]"},
	}
	for _, tt := range tests {
		if got := SceneLabel(tt.status, "intro"); got != tt.want {
			t.Errorf("SceneLabel(%+v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRenderSceneRow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, time.June, 1, 18, 0, 0, 0, time.UTC)
	scene := sequence.NewScene("main", sequence.Params{Duration: 4})

	row := RenderSceneRow(scene, "")
	if !strings.Contains(row, "main [Not started]") || strings.Count(row, "█") != BarWidth {
		t.Errorf("Not started row should show a full bar:\n%s", row)
	}

	scene.Start(ctx, start, sequence.Outputs{})
	scene.Update(ctx, start.Add(time.Second), sequence.Outputs{})
	row = RenderSceneRow(scene, "*")
	if !strings.HasPrefix(row, "* ") || !strings.Contains(row, "main [Remaining: 3.00]") {
		t.Errorf("Unexpected running row:\n%s", row)
	}
	if got := strings.Count(row, "█"); got != 45 {
		t.Errorf("Running row has %d filled cells, want 45", got)
	}

	scene.Update(ctx, start.Add(4*time.Second), sequence.Outputs{})
	row = RenderSceneRow(scene, "")
	if !strings.Contains(row, "main [Finished]") || strings.Contains(row, "█") || strings.Contains(row, "\n") {
		t.Errorf("Finished row should be a single label:\n%s", row)
	}
}

func TestRenderInfoPanel(t *testing.T) {
	panel := RenderInfoPanel([]InfoItem{
		{Label: "Session name", Value: "evening"},
		{Label: "Log file", Value: ""},
	}, 80)

	if !strings.Contains(panel, "evening") {
		t.Error("Expected session name in panel")
	}
	if !strings.Contains(panel, "None") {
		t.Error("Expected empty value rendered as None")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("configuration.cfg", 10); got != "...ion.cfg" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}
