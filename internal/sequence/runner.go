package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// TickInterval is the polling cadence of a run
const TickInterval = 100 * time.Millisecond

var ErrNoScenes = errors.New("no scenes configured")

// Runner plays scenes one after another, in list order.
//
// The active scene is the lowest-index scene that has not finished: every
// scene before it is finished and every scene after it has not started.
type Runner struct {
	scenes  []*Scene
	active  int
	events  *EventLog
	out     Outputs
	started bool
}

// NewRunner creates a runner over scenes. events may be nil to skip the
// session log.
func NewRunner(scenes []*Scene, events *EventLog, out Outputs) *Runner {
	return &Runner{
		scenes: scenes,
		events: events,
		out:    out,
	}
}

// Start writes the session start line and starts the first scene.
// With no scenes it returns ErrNoScenes and leaves the log untouched.
func (r *Runner) Start(ctx context.Context, now time.Time) error {
	if len(r.scenes) == 0 {
		return ErrNoScenes
	}
	if r.started {
		return nil
	}

	if r.events != nil {
		if err := r.events.Begin(now); err != nil {
			return err
		}
	}
	r.started = true
	r.active = 0
	r.startActive(ctx, now)
	return nil
}

func (r *Runner) startActive(ctx context.Context, now time.Time) {
	scene := r.scenes[r.active]
	if scene.Start(ctx, now, r.out) {
		r.record(now, SceneStarted(scene.Name))
	}
}

// Tick polls the active scene at now. When it finishes, the next scene
// starts straight away. It reports whether the whole run is done.
func (r *Runner) Tick(ctx context.Context, now time.Time) bool {
	if !r.started || r.Done() {
		return r.Done()
	}

	scene := r.scenes[r.active]
	if scene.Update(ctx, now, r.out) {
		r.record(now, SceneFinished(scene.Name))
		r.active++
		if r.active < len(r.scenes) {
			r.startActive(ctx, now)
		}
	}
	return r.Done()
}

// Abort silences the active scene. Scene state is kept for display.
func (r *Runner) Abort(ctx context.Context) {
	if !r.started || r.Done() {
		return
	}
	r.scenes[r.active].Stop(ctx, r.out)
}

// Done reports whether every scene has finished
func (r *Runner) Done() bool {
	return r.allScenesFinished()
}

func (r *Runner) allScenesFinished() bool {
	return lo.EveryBy(r.scenes, func(s *Scene) bool {
		return s.Finished()
	})
}

// Started reports whether Start succeeded
func (r *Runner) Started() bool {
	return r.started
}

// Active returns the index of the active scene, len(Scenes()) once done
func (r *Runner) Active() int {
	return r.active
}

// Scenes returns the scenes in play order
func (r *Runner) Scenes() []*Scene {
	return r.scenes
}

// Finished counts finished scenes
func (r *Runner) Finished() int {
	return lo.CountBy(r.scenes, func(s *Scene) bool {
		return s.Finished()
	})
}

func (r *Runner) record(now time.Time, message string) {
	if r.events == nil {
		return
	}
	if err := r.events.Append(now, message); err != nil {
		r.out.logger().Warn("session log write failed",
			zap.String("message", message), zap.Error(err))
	}
}

// String summarises progress for diagnostics
func (r *Runner) String() string {
	return fmt.Sprintf("%d/%d scenes finished", r.Finished(), len(r.scenes))
}
