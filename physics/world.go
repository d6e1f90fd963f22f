package physics

// world.go: the simulation's single context. Grounded on gazed-vu/eng.go's
// Eng, which owns every entity and timing source the engine needs rather
// than scattering them across package-level state - this World plays the
// same role for bodies, barriers, the rope and the random jitter source.

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/M-FF-M/climbing-fall-simulation/math/lin"
)

// World owns every body, barrier and the rope being simulated, plus the
// parameters that apply uniformly to a step (gravity, the maximum step
// size Δmax).
type World struct {
	bodies   []*Body
	Barriers []Barrier
	Rope     *Rope

	Gravity lin.Vector
	MaxStep float64 // Δmax

	jitter    *rand.Rand
	log       *slog.Logger
	interrupt atomic.Bool

	simTime float64
	version string
}

// Version returns the configuration schema version carried through from
// construction, unchanged (§6's Snapshot contract).
func (w *World) Version() string { return w.version }

// Option configures a World at construction time.
type Option func(*World)

// WithLogger overrides the default logger (slog.Default()) used for
// recoverable-condition warnings. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithJitterSource overrides the default time-seeded jitter source with an
// explicit one, so a test can reproduce a run byte-for-byte (Open Question
// (iii)).
func WithJitterSource(src rand.Source) Option {
	return func(w *World) { w.jitter = rand.New(src) }
}

// newWorld returns an empty World ready to have bodies, barriers and a
// rope registered into it. Construct (construct.go) is the usual entry
// point; newWorld is exported as NewEmptyWorld for callers assembling a
// scene by hand (tests, the geometry helpers' own exercises).
func newWorld(opts ...Option) *World {
	w := &World{
		Gravity: lin.New(0, -9.81, 0),
		MaxStep: 1e-4,
		jitter:  rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// NewEmptyWorld returns a World with no bodies, barriers or rope, for
// callers that want to assemble a scene themselves rather than going
// through Construct.
func NewEmptyWorld(opts ...Option) *World { return newWorld(opts...) }

// AddBody registers a new body and returns it. The caller owns placing it
// into a Rope or leaving it standalone (a barrier anchor point, say).
func (w *World) AddBody(kind Kind, name string, pos lin.Vector, mass, damping, friction, avgWindow float64) *Body {
	b := newBody(ID(len(w.bodies)), kind, name, pos, mass, damping, friction, avgWindow)
	w.bodies = append(w.bodies, b)
	return b
}

// body returns the body with the given id. Panics on an unknown id: ids
// are only ever handed out by AddBody, so an unknown id is a programming
// error in this package, not a condition callers need to handle.
func (w *World) body(id ID) *Body { return w.bodies[id] }

// Body returns the body with the given id, or nil if none exists.
func (w *World) Body(id ID) *Body {
	if int(id) < 0 || int(id) >= len(w.bodies) {
		return nil
	}
	return w.bodies[id]
}

// Bodies returns every registered body, in registration order.
func (w *World) Bodies() []*Body { return w.bodies }

// SimTime returns the total simulated time advanced so far.
func (w *World) SimTime() float64 { return w.simTime }

// Interrupt requests that the current or next Advance call stop early and
// return its partial result. Safe to call from another goroutine while
// Advance is running.
func (w *World) Interrupt() { w.interrupt.Store(true) }

// Interrupted reports whether Interrupt has been called since the World
// was created or last cleared.
func (w *World) Interrupted() bool { return w.interrupt.Load() }

// ClearInterrupt resets the interrupt flag so the World can be advanced
// again after a prior interruption.
func (w *World) ClearInterrupt() { w.interrupt.Store(false) }

// step advances the simulation by exactly dt (expected to be <= MaxStep):
// clear forces, apply gravity, apply rope spring/damping forces and
// Capstan sliding, integrate bodies, project against barriers, then
// re-mesh the rope. Returns a SimulationError if a fatal condition (non-
// finite state, unsupported split) is detected.
func (w *World) step(dt float64) error {
	w.clearForces()
	w.applyGravity()
	if w.Rope != nil {
		if err := w.applyRopeForces(dt); err != nil {
			return err
		}
	}
	for _, b := range w.bodies {
		b.integrate(dt)
		if !finite(b.Position) || !finite(b.Velocity) {
			return &SimulationError{Kind: ErrNumericalDegeneracy, SimTime: w.simTime}
		}
	}
	w.projectBarriers()
	if w.Rope != nil {
		if err := w.remesh(); err != nil {
			return err
		}
	}
	w.simTime += dt
	// Re-prime forces from the post-remesh geometry with dt=0: this
	// leaves Capstan sliding and rest-length transport untouched (they
	// already advanced above) but makes each body's Force() - and hence
	// the snapshot about to be taken - reflect the step's final topology,
	// per §4.6's "re-apply gravity, re-apply rope forces" instruction.
	if err := w.refreshForces(); err != nil {
		return err
	}
	return nil
}

// applyGravity adds gravity exactly once per body. Without a rope every
// registered body receives it; with a rope only the rope's joints do: each
// segment's left endpoint, plus the rope's final joint (the climber),
// which no segment owns as a left endpoint. Bodies that are not rope
// joints (deflection points, standalone bodies) then receive none.
func (w *World) applyGravity() {
	if w.Rope == nil {
		for _, b := range w.bodies {
			b.addForce(w.Gravity.Scale(b.Mass))
		}
		return
	}
	for i := 0; i < len(w.Rope.Joints)-1; i++ {
		b := w.body(w.Rope.Joints[i])
		b.addForce(w.Gravity.Scale(b.Mass))
	}
	last := w.body(w.Rope.Joints[len(w.Rope.Joints)-1])
	last.addForce(w.Gravity.Scale(last.Mass))
}

// projectBarriers resolves every body's position and velocity against
// every registered barrier.
func (w *World) projectBarriers() {
	for _, b := range w.bodies {
		if !b.Movable() {
			continue
		}
		for _, barrier := range w.Barriers {
			pos, vel, _ := barrier.Project(b.Position, b.Velocity)
			b.Position, b.Velocity = pos, vel
		}
	}
}

func finite(v lin.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

// Advance runs the simulation forward by duration seconds of simulated
// time, in steps no larger than MaxStep, sampling a Snapshot every
// 1/frameRate seconds. It yields cooperatively roughly every 500ms of
// wall-clock time (via runtime's scheduler) and stops early - returning
// the snapshots captured so far and a nil error - if ctx is cancelled or
// Interrupt was called.
func (w *World) Advance(ctx context.Context, duration, frameRate float64) ([]Snapshot, error) {
	if frameRate <= 0 {
		frameRate = 30
	}
	frameDt := 1 / frameRate
	nextFrame := w.simTime + frameDt
	target := w.simTime + duration

	if err := w.refreshForces(); err != nil {
		return nil, err
	}
	snapshots := []Snapshot{w.Snapshot()}
	lastYield := time.Now()

	for w.simTime < target {
		if w.Interrupted() || ctx.Err() != nil {
			break
		}
		dt := w.MaxStep
		if remaining := target - w.simTime; remaining < dt {
			dt = remaining
		}
		if err := w.step(dt); err != nil {
			return snapshots, err
		}
		if w.simTime+1e-12 >= nextFrame {
			snapshots = append(snapshots, w.Snapshot())
			nextFrame += frameDt
		}
		if time.Since(lastYield) > 500*time.Millisecond {
			runtime.Gosched()
			lastYield = time.Now()
		}
	}
	return snapshots, nil
}
