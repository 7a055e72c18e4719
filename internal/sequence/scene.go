package sequence

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/audio"
)

// Defaults for keys a scene section leaves out
const (
	DefaultHue        = 0
	DefaultBrightness = 10
	DefaultDuration   = 60.0
)

// Params are the configured values of a scene
type Params struct {
	// Hue in bridge units (0-65535)
	Hue int
	// Brightness in bridge units (1-254)
	Brightness int
	// Audio file path; empty for no audio
	Audio string
	// Restart the track when it ends
	AudioLoop bool
	// Length of the scene in seconds
	Duration float64
}

// DefaultParams returns the values used for missing keys
func DefaultParams() Params {
	return Params{
		Hue:        DefaultHue,
		Brightness: DefaultBrightness,
		Duration:   DefaultDuration,
	}
}

// State is the display state of a scene
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateFinished:
		return "Finished"
	default:
		return "Not started"
	}
}

// Outputs are the collaborators a scene drives. Nil fields disable the
// corresponding modality.
type Outputs struct {
	Lights api.BridgeClient
	Player audio.Player
	Logger *zap.Logger
}

func (o Outputs) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Scene is one timed unit of a session.
//
// Its flags only move forward: not started, started (running), finished.
// Remaining time always stays within [0, Duration].
type Scene struct {
	Name   string
	Params Params

	running   bool
	started   bool
	finished  bool
	startedAt time.Time
	remaining float64

	track audio.Track
}

// NewScene creates a scene that has not started yet
func NewScene(name string, params Params) *Scene {
	s := &Scene{Name: name, Params: params}
	s.Reset()
	return s
}

// Reset returns the scene to its not-started state
func (s *Scene) Reset() {
	if s.track != nil {
		_ = s.track.Close()
	}
	s.running = false
	s.started = false
	s.finished = false
	s.startedAt = time.Time{}
	s.remaining = s.duration()
	s.track = nil
}

func (s *Scene) duration() float64 {
	if s.Params.Duration < 0 {
		return 0
	}
	return s.Params.Duration
}

// Start begins the scene at now: applies the lighting preset and starts
// the audio track. It returns false when the scene had already started.
// Collaborator failures are logged and the scene runs without them.
func (s *Scene) Start(ctx context.Context, now time.Time, out Outputs) bool {
	if s.started {
		return false
	}

	s.started = true
	s.running = true
	s.startedAt = now
	s.remaining = s.duration()

	log := out.logger().With(zap.String("scene", s.Name))
	if out.Lights != nil {
		if err := s.applyLighting(ctx, out.Lights); err != nil {
			log.Warn("lighting preset failed, continuing without lighting", zap.Error(err))
		}
	}
	if out.Player != nil && s.Params.Audio != "" {
		if err := s.startAudio(out.Player); err != nil {
			log.Warn("audio failed, continuing without audio",
				zap.String("audio", s.Params.Audio), zap.Error(err))
		}
	}
	return true
}

func (s *Scene) applyLighting(ctx context.Context, lights api.BridgeClient) error {
	if err := lights.SetGroupPower(ctx, api.GroupAll, true); err != nil {
		return err
	}
	if err := lights.SetGroupBrightness(ctx, api.GroupAll, s.Params.Brightness); err != nil {
		return err
	}
	return lights.SetGroupHue(ctx, api.GroupAll, s.Params.Hue)
}

func (s *Scene) startAudio(player audio.Player) error {
	track, err := player.Load(s.Params.Audio)
	if err != nil {
		return err
	}
	if err := player.Play(track, s.Params.AudioLoop); err != nil {
		_ = track.Close()
		return err
	}
	s.track = track
	return nil
}

// Update recomputes the remaining time at now and finishes the scene once
// it runs out. It is a no-op before Start and after the scene finished.
// It returns true on the call that finishes the scene.
func (s *Scene) Update(ctx context.Context, now time.Time, out Outputs) bool {
	if !s.started || s.finished {
		return false
	}

	elapsed := now.Sub(s.startedAt).Seconds()
	s.remaining = clamp(s.duration()-elapsed, 0, s.duration())
	if s.remaining > 0 {
		return false
	}

	s.remaining = 0
	s.running = false
	s.finished = true
	s.stopOutputs(ctx, out)
	return true
}

// Stop silences the scene's outputs without changing its state, for runs
// abandoned part way
func (s *Scene) Stop(ctx context.Context, out Outputs) {
	if s.running {
		s.stopOutputs(ctx, out)
	}
}

func (s *Scene) stopOutputs(ctx context.Context, out Outputs) {
	log := out.logger().With(zap.String("scene", s.Name))
	if s.track != nil {
		if out.Player != nil {
			if err := out.Player.Pause(); err != nil {
				log.Warn("failed to stop audio", zap.Error(err))
			}
		}
		if err := s.track.Close(); err != nil {
			log.Warn("failed to close audio track", zap.Error(err))
		}
		s.track = nil
	}
	if out.Lights != nil {
		if err := out.Lights.SetGroupPower(ctx, api.GroupAll, false); err != nil {
			log.Warn("failed to switch lights off", zap.Error(err))
		}
	}
}

// Status is what a view needs to render one scene row
type Status struct {
	State     State
	Remaining float64
}

// Status returns the scene's current status
func (s *Scene) Status() Status {
	return Status{State: s.State(), Remaining: s.remaining}
}

// State projects the flags onto a display state
func (s *Scene) State() State {
	switch {
	case s.finished:
		return StateFinished
	case s.started:
		return StateRunning
	default:
		return StateNotStarted
	}
}

// Started reports whether Start has been called
func (s *Scene) Started() bool { return s.started }

// Running reports whether the scene is currently playing
func (s *Scene) Running() bool { return s.running }

// Finished reports whether the scene ran out of time
func (s *Scene) Finished() bool { return s.finished }

// StartedAt returns the start time, zero before Start
func (s *Scene) StartedAt() time.Time { return s.startedAt }

// Remaining returns the seconds left as of the last Update
func (s *Scene) Remaining() float64 { return s.remaining }

// Duration returns the configured length in seconds
func (s *Scene) Duration() float64 { return s.duration() }

// Fill returns how many of width cells a progress bar shows for the time
// remaining. Zero-length scenes have an empty bar.
func (s *Scene) Fill(width int) int {
	d := s.duration()
	if d == 0 || width <= 0 {
		return 0
	}
	return int(math.Round(s.remaining / d * float64(width)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
