package components

import (
	"fmt"

	"github.com/angristan/hue-scenes/internal/models"
	"github.com/angristan/hue-scenes/internal/sequence"
	"github.com/angristan/hue-scenes/internal/tui/styles"
)

// SceneLabel returns the status text of a scene row
func SceneLabel(status sequence.Status, name string) string {
	switch status.State {
	case sequence.StateFinished:
		return fmt.Sprintf("%s [Finished]", name)
	case sequence.StateRunning:
		return fmt.Sprintf("%s [Remaining: %0.2f]", name, status.Remaining)
	default:
		return fmt.Sprintf("%s [Not started]", name)
	}
}

// RenderSceneRow renders one scene: its label and, unless finished, a
// progress bar. The running bar takes the color of the scene's preset.
// marker prefixes the active scene.
func RenderSceneRow(scene *sequence.Scene, marker string) string {
	status := scene.Status()
	label := SceneLabel(status, scene.Name)

	prefix := "  "
	if marker != "" {
		prefix = marker + " "
	}

	switch status.State {
	case sequence.StateFinished:
		return prefix + styles.StyleSceneFinished.Render(label)
	case sequence.StateRunning:
		return prefix + styles.StyleSceneActive.Render(label) + "\n  " +
			RenderPresetBar(scene.Fill(BarWidth), BarWidth, models.NewColor(scene.Params.Hue, scene.Params.Brightness))
	default:
		return prefix + styles.StyleSceneName.Render(label) + "\n  " +
			RenderProgressBar(BarWidth, BarWidth)
	}
}
