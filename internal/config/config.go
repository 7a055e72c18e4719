package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// BridgeConfig stores connection details for a Hue bridge
type BridgeConfig struct {
	// IP address or hostname of the bridge
	Host string `json:"host"`
	// Application key (username) for authentication
	Username string `json:"username"`
	// Unique bridge identifier
	BridgeID string `json:"bridge_id"`
}

// LoggingConfig controls the diagnostics log
type LoggingConfig struct {
	// debug, info, warn or error
	Level string `json:"level,omitempty"`
	// Destination file; empty means <config dir>/hue-scenes.log
	File string `json:"file,omitempty"`
}

// Config stores all application configuration
type Config struct {
	// List of paired bridges
	Bridges []BridgeConfig `json:"bridges"`
	// ID of the last used bridge
	LastBridgeID string `json:"last_bridge_id,omitempty"`
	// Light IDs that make up the scene lighting group
	GroupLights []int `json:"group_lights,omitempty"`
	// Diagnostics logging
	Logging LoggingConfig `json:"logging"`

	// Demo selects the in-memory bridge; never persisted
	Demo bool `json:"-"`

	// Values as read from the file, nil for a config not built by Load
	file *fileValues
}

// fileValues are the settings Load may fill in or override
type fileValues struct {
	GroupLights []int
	Logging     LoggingConfig
}

// Overrides are environment variables that take precedence over the file
type Overrides struct {
	BridgeHost string `env:"HUE_SCENES_BRIDGE_HOST"`
	BridgeUser string `env:"HUE_SCENES_BRIDGE_USER"`
	LogLevel   string `env:"HUE_SCENES_LOG_LEVEL"`
	LogFile    string `env:"HUE_SCENES_LOG_FILE"`
	Demo       bool   `env:"HUE_SCENES_DEMO"`
}

var (
	ErrBridgeNotFound = errors.New("bridge not found")
	ErrNoBridges      = errors.New("no bridges configured")
)

const envBridgePrefix = "env:"

// DefaultGroupLights is the light set used when the config names none
var DefaultGroupLights = []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

// Dir returns the configuration directory path
func Dir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hue-scenes"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hue-scenes"), nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk and applies environment overrides
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}
	cfg.file = &fileValues{
		GroupLights: append([]int(nil), cfg.GroupLights...),
		Logging:     cfg.Logging,
	}

	var ov Overrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Apply(ov)

	if len(cfg.GroupLights) == 0 {
		cfg.GroupLights = append([]int(nil), DefaultGroupLights...)
	}
	if cfg.Logging.File == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		cfg.Logging.File = filepath.Join(dir, "hue-scenes.log")
	}

	return cfg, nil
}

// Apply merges environment overrides into the config.
// A host override becomes the last used bridge.
func (c *Config) Apply(ov Overrides) {
	if ov.BridgeHost != "" {
		bridge := BridgeConfig{
			Host:     ov.BridgeHost,
			Username: ov.BridgeUser,
			BridgeID: envBridgePrefix + ov.BridgeHost,
		}
		c.AddBridge(bridge)
		c.LastBridgeID = bridge.BridgeID
	}
	if ov.LogLevel != "" {
		c.Logging.Level = ov.LogLevel
	}
	if ov.LogFile != "" {
		c.Logging.File = ov.LogFile
	}
	if ov.Demo {
		c.Demo = true
	}
}

// Save writes the configuration to disk. Bridges that came from the
// environment are not persisted, and for a loaded config the logging and
// group lights are written as the file had them, leaving out defaults and
// overrides.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	out := *c
	out.Bridges = nil
	for _, b := range c.Bridges {
		if !isEnvBridge(b) {
			out.Bridges = append(out.Bridges, b)
		}
	}
	if isEnvBridge(BridgeConfig{BridgeID: out.LastBridgeID}) {
		out.LastBridgeID = ""
	}
	if c.file != nil {
		out.GroupLights = c.file.GroupLights
		out.Logging = c.file.Logging
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func isEnvBridge(b BridgeConfig) bool {
	return strings.HasPrefix(b.BridgeID, envBridgePrefix)
}

// AddBridge adds or updates a bridge configuration
func (c *Config) AddBridge(bridge BridgeConfig) {
	for i, b := range c.Bridges {
		if b.BridgeID == bridge.BridgeID {
			c.Bridges[i] = bridge
			return
		}
	}

	c.Bridges = append(c.Bridges, bridge)
}

// GetBridge returns the bridge configuration by ID
func (c *Config) GetBridge(bridgeID string) (*BridgeConfig, error) {
	for i := range c.Bridges {
		if c.Bridges[i].BridgeID == bridgeID {
			return &c.Bridges[i], nil
		}
	}
	return nil, ErrBridgeNotFound
}

// GetLastBridge returns the last used bridge or the first available
func (c *Config) GetLastBridge() (*BridgeConfig, error) {
	if len(c.Bridges) == 0 {
		return nil, ErrNoBridges
	}

	if c.LastBridgeID != "" {
		bridge, err := c.GetBridge(c.LastBridgeID)
		if err == nil {
			return bridge, nil
		}
	}

	return &c.Bridges[0], nil
}

// HasBridges returns true if at least one bridge is configured
func (c *Config) HasBridges() bool {
	return len(c.Bridges) > 0
}
