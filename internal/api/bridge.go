package api

import (
	"context"
	"errors"
)

// GroupAll is the lighting group every scene drives
const GroupAll = "all"

var (
	ErrBridgeUnreachable = errors.New("bridge unreachable")
	ErrGroupNotDefined   = errors.New("lighting group not defined")
)

// BridgeClient defines the group-level lighting operations scenes need.
// This abstraction allows for both real bridge connections and demo mode.
type BridgeClient interface {
	// DefineGroup creates or updates a named group covering lightIDs
	DefineGroup(ctx context.Context, name string, lightIDs []int) error

	// Group control
	SetGroupPower(ctx context.Context, name string, on bool) error
	SetGroupBrightness(ctx context.Context, name string, brightness int) error
	SetGroupHue(ctx context.Context, name string, hue int) error

	// Metadata
	Host() string
	BridgeID() string
}

// Compile-time checks
var (
	_ BridgeClient = (*HueBridge)(nil)
	_ BridgeClient = (*DemoBridge)(nil)
)
