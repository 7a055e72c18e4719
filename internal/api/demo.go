package api

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/angristan/hue-scenes/internal/models"
)

// Command is a group operation received by the demo bridge
type Command struct {
	Op    string // "define", "power", "brightness", "hue"
	Group string
	Value int // 0/1 for power, the level otherwise, light count for define
}

func (c Command) String() string {
	return fmt.Sprintf("%s %s=%d", c.Op, c.Group, c.Value)
}

// DemoBridge implements BridgeClient for demo mode without a real Hue bridge.
// All state changes are maintained in memory.
type DemoBridge struct {
	groups      map[string]*models.Group
	history     []Command
	nextID      int
	unreachable bool
	mu          sync.RWMutex
}

// NewDemoBridge creates an empty demo bridge
func NewDemoBridge() *DemoBridge {
	return &DemoBridge{
		groups: make(map[string]*models.Group),
		nextID: 1,
	}
}

// Host returns the demo bridge host
func (d *DemoBridge) Host() string {
	return "demo-bridge.local"
}

// BridgeID returns the demo bridge identifier
func (d *DemoBridge) BridgeID() string {
	return "demo-bridge-001"
}

// SetUnreachable makes every following call fail with ErrBridgeUnreachable
func (d *DemoBridge) SetUnreachable(unreachable bool) {
	d.mu.Lock()
	d.unreachable = unreachable
	d.mu.Unlock()
}

// DefineGroup creates or replaces a demo group
func (d *DemoBridge) DefineGroup(ctx context.Context, name string, lightIDs []int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.unreachable {
		return fmt.Errorf("failed to create group: %w", ErrBridgeUnreachable)
	}

	group, ok := d.groups[name]
	if !ok {
		group = &models.Group{ID: strconv.Itoa(d.nextID), Name: name}
		d.nextID++
		d.groups[name] = group
	}
	group.LightIDs = append([]int(nil), lightIDs...)
	d.history = append(d.history, Command{Op: "define", Group: name, Value: len(lightIDs)})
	return nil
}

// SetGroupPower switches a demo group on or off
func (d *DemoBridge) SetGroupPower(ctx context.Context, name string, on bool) error {
	value := 0
	if on {
		value = 1
	}
	return d.apply(name, Command{Op: "power", Group: name, Value: value}, func(g *models.Group) {
		g.On = on
	})
}

// SetGroupBrightness sets a demo group's brightness
func (d *DemoBridge) SetGroupBrightness(ctx context.Context, name string, brightness int) error {
	brightness = models.ClampBrightness(brightness)
	return d.apply(name, Command{Op: "brightness", Group: name, Value: brightness}, func(g *models.Group) {
		g.On = true
		g.Brightness = brightness
	})
}

// SetGroupHue sets a demo group's hue
func (d *DemoBridge) SetGroupHue(ctx context.Context, name string, hue int) error {
	hue = models.ClampHue(hue)
	return d.apply(name, Command{Op: "hue", Group: name, Value: hue}, func(g *models.Group) {
		g.On = true
		g.Hue = hue
	})
}

func (d *DemoBridge) apply(name string, cmd Command, mutate func(*models.Group)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.unreachable {
		return fmt.Errorf("failed to set group state: %w", ErrBridgeUnreachable)
	}

	group, ok := d.groups[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGroupNotDefined, name)
	}
	mutate(group)
	d.history = append(d.history, cmd)
	return nil
}

// Group returns a copy of a demo group's state
func (d *DemoBridge) Group(name string) (*models.Group, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	group, ok := d.groups[name]
	if !ok {
		return nil, false
	}
	return group.Clone(), true
}

// Commands returns every command received so far
func (d *DemoBridge) Commands() []Command {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]Command(nil), d.history...)
}
