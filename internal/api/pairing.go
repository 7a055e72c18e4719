package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amimof/huego"
)

var ErrPairingTimeout = errors.New("pairing timeout - link button was not pressed")

// linkButtonError is the v1 API description for error type 101
const linkButtonError = "link button not pressed"

// CreateAppKey attempts to create an application key on the bridge.
// The user must press the link button on the bridge within the timeout.
func CreateAppKey(ctx context.Context, host, appName string, timeout time.Duration) (string, error) {
	bridge := huego.New(host, "")
	retry := time.NewTicker(time.Second)
	defer retry.Stop()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		user, err := bridge.CreateUserContext(ctx, appName)
		if err == nil {
			return user, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if isLinkButtonError(err) || errors.Is(wrapRequestError("pair", err), ErrBridgeUnreachable) {
			// wait for the button or the network, then retry
			select {
			case <-retry.C:
				continue
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return "", fmt.Errorf("pairing error: %w", err)
	}

	return "", ErrPairingTimeout
}

func isLinkButtonError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), linkButtonError)
}

// BridgeIDFor reads the bridge identifier using a paired application key
func BridgeIDFor(ctx context.Context, host, appKey string) (string, error) {
	cfg, err := huego.New(host, appKey).GetConfigContext(ctx)
	if err != nil {
		return "", wrapRequestError("failed to get bridge config", err)
	}
	return strings.ToUpper(cfg.BridgeID), nil
}
