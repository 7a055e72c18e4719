package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"

	"github.com/amimof/huego"
	"github.com/samber/lo"

	"github.com/angristan/hue-scenes/internal/models"
)

// HueBridge represents a connection to a Philips Hue bridge over the v1 API
type HueBridge struct {
	host     string
	bridgeID string
	bridge   *huego.Bridge

	// Group name -> bridge group ID
	groups  map[string]int
	groupMu sync.RWMutex
}

// NewHueBridge creates a new bridge client. No request is made until the
// first group operation.
func NewHueBridge(host, username, bridgeID string) *HueBridge {
	return &HueBridge{
		host:     host,
		bridgeID: bridgeID,
		bridge:   huego.New(host, username),
		groups:   make(map[string]int),
	}
}

// Host returns the bridge host
func (b *HueBridge) Host() string {
	return b.host
}

// BridgeID returns the bridge identifier
func (b *HueBridge) BridgeID() string {
	return b.bridgeID
}

// DefineGroup makes sure a LightGroup called name exists with exactly
// lightIDs as members
func (b *HueBridge) DefineGroup(ctx context.Context, name string, lightIDs []int) error {
	lights := lo.Map(lightIDs, func(id int, _ int) string {
		return strconv.Itoa(id)
	})

	existing, err := b.findGroup(ctx, name)
	if err != nil && !errors.Is(err, ErrGroupNotDefined) {
		return err
	}

	if existing != nil {
		if _, err := b.bridge.UpdateGroupContext(ctx, existing.ID, huego.Group{Lights: lights}); err != nil {
			return wrapRequestError("failed to update group", err)
		}
		b.rememberGroup(name, existing.ID)
		return nil
	}

	resp, err := b.bridge.CreateGroupContext(ctx, huego.Group{
		Name:   name,
		Lights: lights,
		Type:   "LightGroup",
	})
	if err != nil {
		return wrapRequestError("failed to create group", err)
	}

	id, err := createdID(resp)
	if err != nil {
		return err
	}
	b.rememberGroup(name, id)
	return nil
}

// SetGroupPower turns all lights in a group on or off
func (b *HueBridge) SetGroupPower(ctx context.Context, name string, on bool) error {
	return b.setGroupState(ctx, name, huego.State{On: on})
}

// SetGroupBrightness sets a group's brightness (1-254). The state body
// always carries on=true, otherwise the bridge would switch the group off.
func (b *HueBridge) SetGroupBrightness(ctx context.Context, name string, brightness int) error {
	return b.setGroupState(ctx, name, huego.State{
		On:  true,
		Bri: uint8(models.ClampBrightness(brightness)),
	})
}

// SetGroupHue sets a group's hue (0-65535)
func (b *HueBridge) SetGroupHue(ctx context.Context, name string, hue int) error {
	return b.setGroupState(ctx, name, huego.State{
		On:  true,
		Hue: wireHue(hue),
	})
}

// wireHue converts a hue for the state body. huego omits a zero hue, so 0
// is sent as MaxHue, the same red on the hue circle.
func wireHue(hue int) uint16 {
	hue = models.ClampHue(hue)
	if hue == 0 {
		return models.MaxHue
	}
	return uint16(hue)
}

func (b *HueBridge) setGroupState(ctx context.Context, name string, state huego.State) error {
	id, err := b.groupID(ctx, name)
	if err != nil {
		return err
	}

	if _, err := b.bridge.SetGroupStateContext(ctx, id, state); err != nil {
		return wrapRequestError("failed to set group state", err)
	}
	return nil
}

// groupID resolves a group name, asking the bridge when it was not
// defined through this client
func (b *HueBridge) groupID(ctx context.Context, name string) (int, error) {
	b.groupMu.RLock()
	id, ok := b.groups[name]
	b.groupMu.RUnlock()
	if ok {
		return id, nil
	}

	group, err := b.findGroup(ctx, name)
	if err != nil {
		return 0, err
	}
	b.rememberGroup(name, group.ID)
	return group.ID, nil
}

func (b *HueBridge) findGroup(ctx context.Context, name string) (*huego.Group, error) {
	groups, err := b.bridge.GetGroupsContext(ctx)
	if err != nil {
		return nil, wrapRequestError("failed to get groups", err)
	}

	group, ok := lo.Find(groups, func(g huego.Group) bool {
		return g.Name == name
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotDefined, name)
	}
	return &group, nil
}

func (b *HueBridge) rememberGroup(name string, id int) {
	b.groupMu.Lock()
	b.groups[name] = id
	b.groupMu.Unlock()
}

// createdID extracts the new resource ID from a create response
func createdID(resp *huego.Response) (int, error) {
	if resp == nil {
		return 0, errors.New("empty create group response")
	}

	raw, ok := resp.Success["id"]
	if !ok {
		return 0, errors.New("create group response has no id")
	}

	switch v := raw.(type) {
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid group id %q: %w", v, err)
		}
		return id, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("unexpected group id type %T", raw)
	}
}

// wrapRequestError marks transport failures with ErrBridgeUnreachable so
// callers can degrade instead of failing
func wrapRequestError(op string, err error) error {
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", op, ErrBridgeUnreachable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
