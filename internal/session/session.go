// Package session groups a named list of scenes with their configuration
// file, their event log and the lighting they drive.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/audio"
	"github.com/angristan/hue-scenes/internal/config"
	"github.com/angristan/hue-scenes/internal/sequence"
)

var (
	ErrConfigNotFound  = errors.New("configuration file not found")
	ErrConfigMalformed = errors.New("malformed configuration file")
)

// Options configure a new session
type Options struct {
	Name       string
	ConfigPath string
	// LogPath overrides the default <name>.log
	LogPath string
	// Lights is nil when no bridge is paired
	Lights      api.BridgeClient
	GroupLights []int
	Logger      *zap.Logger
}

// Session is a named, ordered list of scenes
type Session struct {
	ID         uuid.UUID
	Name       string
	ConfigPath string
	LogPath    string

	explicitLog bool
	scenes      []*sequence.Scene

	lights      api.BridgeClient
	groupLights []int
	connected   bool

	logger *zap.Logger
}

// New creates a session. Scenes are read by LoadConfiguration.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	groupLights := opts.GroupLights
	if len(groupLights) == 0 {
		groupLights = append([]int(nil), config.DefaultGroupLights...)
	}

	id := uuid.New()
	s := &Session{
		ID:          id,
		ConfigPath:  opts.ConfigPath,
		LogPath:     opts.LogPath,
		explicitLog: opts.LogPath != "",
		lights:      opts.Lights,
		groupLights: groupLights,
		logger:      logger.With(zap.String("session_id", id.String())),
	}
	s.SetName(opts.Name)
	return s
}

// DefaultLogPath returns the log file used for a session name
func DefaultLogPath(name string) string {
	if name == "" {
		return ""
	}
	return name + ".log"
}

// SetName renames the session, moving its log path along unless one was
// given explicitly
func (s *Session) SetName(name string) {
	s.Name = name
	if !s.explicitLog {
		s.LogPath = DefaultLogPath(name)
	}
}

// SetConfigPath changes the scene file read by LoadConfiguration
func (s *Session) SetConfigPath(path string) {
	s.ConfigPath = path
}

// LoadConfiguration replaces the scene list with the contents of the
// configuration file
func (s *Session) LoadConfiguration() error {
	scenes, err := LoadScenes(s.ConfigPath)
	if err != nil {
		s.logger.Warn("failed to load configuration",
			zap.String("path", s.ConfigPath), zap.Error(err))
		return err
	}
	s.scenes = scenes
	s.logger.Info("configuration loaded",
		zap.String("path", s.ConfigPath), zap.Int("scenes", len(scenes)))
	return nil
}

// Scenes returns the scenes in play order
func (s *Session) Scenes() []*sequence.Scene {
	return s.scenes
}

// Reset puts every scene back in its not-started state
func (s *Session) Reset() {
	for _, scene := range s.scenes {
		scene.Reset()
	}
}

// HasLighting reports whether a bridge is attached
func (s *Session) HasLighting() bool {
	return s.lights != nil
}

// Lighting returns the attached bridge, nil when there is none
func (s *Session) Lighting() api.BridgeClient {
	return s.lights
}

// Connected reports whether the lighting group has been prepared
func (s *Session) Connected() bool {
	return s.connected
}

// ConnectLighting prepares the lighting group on first use: it points the
// group at the configured lights and switches them off. On failure the
// session stays unconnected so the next run tries again.
func (s *Session) ConnectLighting(ctx context.Context) (api.BridgeClient, error) {
	if s.lights == nil {
		return nil, nil
	}
	if s.connected {
		return s.lights, nil
	}

	if err := s.prepareGroup(ctx); err != nil {
		if !errors.Is(err, api.ErrBridgeUnreachable) {
			err = fmt.Errorf("%w: %w", api.ErrBridgeUnreachable, err)
		}
		s.logger.Warn("lighting unavailable, running without it",
			zap.String("host", s.lights.Host()), zap.Error(err))
		return nil, err
	}

	s.connected = true
	s.logger.Info("lighting group ready",
		zap.String("host", s.lights.Host()), zap.Ints("lights", s.groupLights))
	return s.lights, nil
}

func (s *Session) prepareGroup(ctx context.Context) error {
	if err := s.lights.DefineGroup(ctx, api.GroupAll, s.groupLights); err != nil {
		return err
	}
	return s.lights.SetGroupPower(ctx, api.GroupAll, false)
}

// EventLog returns the session event log, nil for an unnamed session
func (s *Session) EventLog() *sequence.EventLog {
	if s.LogPath == "" {
		return nil
	}
	return sequence.NewEventLog(s.LogPath)
}

// NewRunner prepares a run of every scene. Scenes left over from an
// earlier run are reset first. A lighting failure is logged and the run
// goes ahead without lights.
func (s *Session) NewRunner(ctx context.Context, player audio.Player) *sequence.Runner {
	s.Reset()

	lights, _ := s.ConnectLighting(ctx)
	out := sequence.Outputs{
		Lights: lights,
		Player: player,
		Logger: s.logger,
	}
	return sequence.NewRunner(s.scenes, s.EventLog(), out)
}

// Logger returns the session's diagnostics logger
func (s *Session) Logger() *zap.Logger {
	return s.logger
}
