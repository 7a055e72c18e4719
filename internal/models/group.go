package models

// Group is a named set of lights controlled as one unit
type Group struct {
	// Bridge-assigned identifier (empty until created)
	ID string
	// Name used to address the group
	Name string
	// Member light IDs
	LightIDs []int
	// Last commanded power state
	On bool
	// Last commanded brightness (1-254)
	Brightness int
	// Last commanded hue (0-65535)
	Hue int
}

// Clone creates a deep copy of the group
func (g *Group) Clone() *Group {
	clone := *g
	clone.LightIDs = append([]int(nil), g.LightIDs...)
	return &clone
}

// Brightness and hue limits of the Hue v1 API
const (
	MinBrightness = 1
	MaxBrightness = 254
	MaxHue        = 65535
)

// ClampBrightness limits a brightness value to the range the bridge accepts
func ClampBrightness(bri int) int {
	if bri < MinBrightness {
		return MinBrightness
	}
	if bri > MaxBrightness {
		return MaxBrightness
	}
	return bri
}

// ClampHue limits a hue value to 0-65535
func ClampHue(hue int) int {
	if hue < 0 {
		return 0
	}
	if hue > MaxHue {
		return MaxHue
	}
	return hue
}

// BrightnessPct returns a brightness value as a percentage (0-100)
func BrightnessPct(bri int) int {
	return int(float64(ClampBrightness(bri)) / float64(MaxBrightness) * 100)
}
