package models

import "testing"

func TestColorHexString(t *testing.T) {
	tests := []struct {
		name     string
		hue, bri int
		want     string
	}{
		{"red", 0, MaxBrightness, "#FF0000"},
		{"green", 21845, MaxBrightness, "#00FF00"},
		{"blue", 43690, MaxBrightness, "#0000FF"},
		{"dim red is floored", 0, 1, "#4C0000"},
		{"out of range hue clamps", 70000, MaxBrightness, "#FF0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewColor(tt.hue, tt.bri).HexString(); got != tt.want {
				t.Errorf("NewColor(%d, %d).HexString() = %s, want %s", tt.hue, tt.bri, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if ClampBrightness(0) != MinBrightness || ClampBrightness(300) != MaxBrightness || ClampBrightness(50) != 50 {
		t.Error("ClampBrightness out of range")
	}
	if ClampHue(-5) != 0 || ClampHue(70000) != MaxHue || ClampHue(1234) != 1234 {
		t.Error("ClampHue out of range")
	}
	if BrightnessPct(254) != 100 || BrightnessPct(127) != 50 {
		t.Errorf("BrightnessPct(127) = %d", BrightnessPct(127))
	}
}

func TestGroupClone(t *testing.T) {
	g := &Group{ID: "1", Name: "all", LightIDs: []int{1, 2}}
	c := g.Clone()
	c.LightIDs[0] = 9
	if g.LightIDs[0] != 1 {
		t.Error("Clone shares the light slice")
	}
}
