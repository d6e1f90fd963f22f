package physics

// body.go: point-mass bodies. Grounded on gazed-vu/physics/body.go's
// integrate-velocity/apply-damping split, adapted from a 3D rigid body
// with shape/rotation to a rope-physics point mass: no orientation, no
// collider, value-type Vector instead of pointer-receiver math.

import (
	"math"

	"github.com/M-FF-M/climbing-fall-simulation/math/lin"
)

// defaultForceAvgWindow is the rolling force-average window length that
// Construct and the re-meshing passes give every body they create.
const defaultForceAvgWindow = 0.05

// Body is a point mass: an anchor, a climber, a quickdraw/carabiner, or a
// rope-internal joint produced by re-meshing.
type Body struct {
	id   ID
	kind Kind
	name string

	Position lin.Vector
	Velocity lin.Vector

	Mass     float64 // kg; zero means the body never moves.
	Damping  float64 // velocity retained per second of simulated time, (0,1].
	Friction float64 // Capstan coefficient μ; only meaningful on a quickdraw.

	force lin.Vector // accumulated this step, cleared at the start of the next.

	avg      forceWindow
	maxSpeed float64
}

// newBody constructs a Body with the given identity and zero velocity and
// force. Damping defaults to 1 (no damping) if zero or negative was given,
// since a movable body with Damping==0 would lose all velocity every step -
// almost certainly not what a caller who left the field unset intended.
func newBody(id ID, kind Kind, name string, pos lin.Vector, mass, damping, friction, avgWindow float64) *Body {
	if damping <= 0 {
		damping = 1
	}
	return &Body{
		id:       id,
		kind:     kind,
		name:     name,
		Position: pos,
		Mass:     mass,
		Damping:  damping,
		Friction: friction,
		avg:      newForceWindow(avgWindow),
	}
}

// ID returns the body's identity, unique within the World that created it.
func (b *Body) ID() ID { return b.id }

// Kind returns the body's role tag.
func (b *Body) Kind() Kind { return b.kind }

// Name returns the caller-supplied label, or "" if none was given.
func (b *Body) Name() string { return b.name }

// Movable reports whether the body has positive mass and therefore
// integrates under accumulated force; zero-mass bodies (quickdraws,
// fixed anchors) never move regardless of force applied to them.
func (b *Body) Movable() bool { return b.Mass > 0 }

// Force returns the force accumulated on the body so far this step.
func (b *Body) Force() lin.Vector { return b.force }

// clearForce zeroes the accumulated force, the first action of every step.
func (b *Body) clearForce() { b.force = lin.Zero }

// addForce accumulates f into the body's force for this step. A no-op on
// an immovable body: F=ma is meaningless when m is zero, and silently
// dropping the force here keeps every force-application call site simple.
func (b *Body) addForce(f lin.Vector) {
	if b.Movable() {
		b.force = b.force.Add(f)
	}
}

// InstantForce returns the magnitude of the force accumulated this step.
func (b *Body) InstantForce() float64 { return b.force.Len() }

// AverageForce returns the force magnitude averaged over the body's
// rolling window (see forceWindow).
func (b *Body) AverageForce() float64 { return b.avg.average() }

// MaxAverageForce returns the running maximum of AverageForce observed
// over the body's lifetime.
func (b *Body) MaxAverageForce() float64 { return b.avg.max }

// MaxSpeed returns the running maximum of Velocity.Len() observed over
// the body's lifetime.
func (b *Body) MaxSpeed() float64 { return b.maxSpeed }

// integrate advances the body's velocity and position by dt using
// semi-implicit Euler: velocity updates from the accumulated force first,
// then position updates from the new velocity. Damping is applied as a
// per-second retention factor raised to dt, so halving dt does not halve
// the damping applied per unit simulated time.
func (b *Body) integrate(dt float64) {
	if !b.Movable() {
		return
	}
	accel := b.force.Scale(1 / b.Mass)
	b.Velocity = b.Velocity.Add(accel.Scale(dt))
	if b.Damping < 1 {
		b.Velocity = b.Velocity.Scale(math.Pow(b.Damping, dt))
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	if speed := b.Velocity.Len(); speed > b.maxSpeed {
		b.maxSpeed = speed
	}
	b.avg.push(b.InstantForce(), dt)
}
