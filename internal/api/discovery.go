package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amimof/huego"
	"github.com/hashicorp/mdns"
)

// DiscoveredBridge represents a Hue bridge found during discovery
type DiscoveredBridge struct {
	// IP address of the bridge
	Host string
	// Unique bridge identifier (may be empty for mDNS results without TXT)
	BridgeID string
	// Name from mDNS
	Name string
	// "mdns" or "cloud"
	Source string
}

// fromServiceEntry converts an mDNS answer for _hue._tcp
func fromServiceEntry(entry *mdns.ServiceEntry) DiscoveredBridge {
	bridge := DiscoveredBridge{
		Name:   entry.Name,
		Source: "mdns",
	}
	if entry.AddrV4 != nil {
		bridge.Host = entry.AddrV4.String()
	}

	for _, txt := range entry.InfoFields {
		if id, ok := strings.CutPrefix(txt, "bridgeid="); ok {
			bridge.BridgeID = strings.ToUpper(id)
		}
	}

	if bridge.Name == "" && entry.Host != "" {
		bridge.Name = strings.TrimSuffix(entry.Host, ".")
	}
	return bridge
}

// DiscoverMDNS discovers Hue bridges on the local network using mDNS
func DiscoverMDNS(ctx context.Context, timeout time.Duration) ([]DiscoveredBridge, error) {
	entriesCh := make(chan *mdns.ServiceEntry, 10)
	collected := make(chan []DiscoveredBridge, 1)

	go func() {
		var bridges []DiscoveredBridge
		for entry := range entriesCh {
			bridges = append(bridges, fromServiceEntry(entry))
		}
		collected <- bridges
	}()

	params := mdns.DefaultParams("_hue._tcp")
	params.Entries = entriesCh
	params.Timeout = timeout
	params.DisableIPv6 = true

	err := mdns.QueryContext(ctx, params)
	close(entriesCh)
	bridges := <-collected

	if err != nil {
		return bridges, fmt.Errorf("mDNS query failed: %w", err)
	}
	return bridges, nil
}

// DiscoverCloud asks the Philips Hue discovery service (NUPNP) for bridges
// registered from this network
func DiscoverCloud(ctx context.Context) ([]DiscoveredBridge, error) {
	found, err := huego.DiscoverAllContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("cloud discovery failed: %w", err)
	}

	result := make([]DiscoveredBridge, len(found))
	for i, b := range found {
		result[i] = DiscoveredBridge{
			Host:     b.Host,
			BridgeID: strings.ToUpper(b.ID),
			Source:   "cloud",
		}
	}
	return result, nil
}

// Discover runs mDNS and cloud discovery concurrently and merges the
// results. An error is returned only when both methods fail.
func Discover(ctx context.Context, timeout time.Duration) ([]DiscoveredBridge, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		bridges []DiscoveredBridge
		err     error
	}
	results := make(chan result, 2)

	go func() {
		bridges, err := DiscoverMDNS(ctx, timeout)
		results <- result{bridges, err}
	}()
	go func() {
		bridges, err := DiscoverCloud(ctx)
		results <- result{bridges, err}
	}()

	var batches [][]DiscoveredBridge
	var lastErr error
	for range 2 {
		r := <-results
		if r.err != nil {
			lastErr = r.err
		}
		batches = append(batches, r.bridges)
	}

	merged := MergeBridges(batches...)
	if len(merged) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return merged, nil
}

// MergeBridges de-duplicates bridges by ID (or host when the ID is
// unknown), keeping the first occurrence
func MergeBridges(batches ...[]DiscoveredBridge) []DiscoveredBridge {
	var merged []DiscoveredBridge
	seen := make(map[string]bool)

	for _, batch := range batches {
		for _, b := range batch {
			if b.Host == "" {
				continue
			}
			key := b.Host
			if b.BridgeID != "" {
				key = b.BridgeID
			}
			if seen[key] || seen[b.Host] {
				continue
			}
			seen[key] = true
			seen[b.Host] = true
			merged = append(merged, b)
		}
	}
	return merged
}
