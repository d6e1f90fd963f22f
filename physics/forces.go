package physics

// forces.go: per-segment spring/damping force and Capstan sliding.
// Grounded on gazed-vu/physics/pbd.go's per-constraint solve loop (walk an
// ordered list, accumulate onto the two bodies it references), adapted
// from positional constraints to the force-based spring/damper/friction
// model this engine uses instead.

import (
	"math"

	"github.com/M-FF-M/climbing-fall-simulation/math/lin"
)

// snapEpsilon is the tolerance used to decide when a Capstan sliding
// speed should snap to exactly zero rather than chatter across it every
// step (§4.3's "within |a·Δt| − ε of zero").
const snapEpsilon = 1e-9

// halfMinRestWarn is the fraction of L_min below which a non-zero rest
// partition is merely warned about rather than treated as fatal.
const halfMinRestWarn = 0.5

// clearForces zeroes every body's accumulated force.
func (w *World) clearForces() {
	for _, b := range w.bodies {
		b.clearForce()
	}
}

// refreshForces recomputes gravity and rope forces with dt=0, so the
// Capstan sliding speeds and rest-length transport are left untouched but
// every body's Force() reflects the current (post-remesh) geometry. Used
// to prime the t=0 snapshot and to refresh the snapshot taken after a
// step's re-meshing pass, per §4.6.
func (w *World) refreshForces() error {
	w.clearForces()
	w.applyGravity()
	if w.Rope == nil {
		return nil
	}
	return w.applyRopeForces(0)
}

// applyRopeForces walks every segment's polyline, applies spring tension
// and transverse/longitudinal damping to its outer endpoints, and advances
// Capstan sliding at its interior deflection points using dt.
func (w *World) applyRopeForces(dt float64) error {
	r := w.Rope
	for i := range r.Segments {
		if err := w.applySegmentForces(i, dt); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) applySegmentForces(segIdx int, dt float64) error {
	r := w.Rope
	seg := r.Segments[segIdx]
	nodes := r.nodes(segIdx)
	n := len(nodes) - 1 // number of sub-edges

	positions := make([]lin.Vector, len(nodes))
	for i, id := range nodes {
		positions[i] = w.body(id).Position
	}

	tension := make([]float64, n)
	dir := make([]lin.Vector, n) // unit vector of each sub-edge, node[i] -> node[i+1]

	for i := 0; i < n; i++ {
		edge := positions[i+1].Sub(positions[i])
		length := edge.Len()
		rest := seg.Partitions[i]

		if lin.AeqZ(length) {
			return &SimulationError{Kind: ErrNumericalDegeneracy, SegmentIdx: segIdx, Deflections: seg.N(), SimTime: w.simTime}
		}
		if rest == 0 {
			return &SimulationError{Kind: ErrNumericalDegeneracy, SegmentIdx: segIdx, Deflections: seg.N(), SimTime: w.simTime}
		}
		if rest < halfMinRestWarn*r.RestMin {
			w.log.Warn("rope: small rest-length partition", "segment", segIdx, "subedge", i, "rest", rest, "min", r.RestMin)
		}

		dir[i] = edge.Scale(1 / length)
		tension[i] = (length - rest) / (rest * r.Elasticity)
	}

	A := w.body(nodes[0])
	B := w.body(nodes[len(nodes)-1])
	restLen := seg.RestLen()

	A.addForce(dir[0].Scale(tension[0]))
	B.addForce(dir[n-1].Scale(-tension[n-1]))

	if A.Movable() && B.Movable() && restLen > 0 {
		u0, uN := dir[0], dir[n-1]

		vParA := u0.Scale(A.Velocity.Dot(u0))
		vPerpA := A.Velocity.Sub(vParA)
		vParB := uN.Scale(B.Velocity.Dot(uN))
		vPerpB := B.Velocity.Sub(vParB)

		perp := vPerpA.Add(vPerpB).Scale(-r.DampPerp / restLen)
		A.addForce(perp)
		B.addForce(perp.Neg())

		lambda := A.Velocity.Dot(u0.Neg()) + B.Velocity.Dot(uN)
		coeff := (r.DampPar / restLen) * lambda
		A.addForce(u0.Scale(coeff))
		B.addForce(uN.Scale(-coeff))
	}

	for k := 0; k < seg.N(); k++ {
		if err := w.slideDeflectionPoint(segIdx, k, tension, dt); err != nil {
			return err
		}
	}
	return nil
}

// slideDeflectionPoint advances Capstan sliding at interior point k of
// segment segIdx (§4.3), using the tensions of its incoming (tension[k])
// and outgoing (tension[k+1]) sub-edges.
func (w *World) slideDeflectionPoint(segIdx, k int, tension []float64, dt float64) error {
	r := w.Rope
	seg := r.Segments[segIdx]
	nodes := r.nodes(segIdx)

	tL, tR := tension[k], tension[k+1]
	delta := tR - tL

	point := w.body(seg.Deflections[k])
	incoming := w.body(nodes[k+1]).Position.Sub(w.body(nodes[k]).Position)
	outgoing := w.body(nodes[k+2]).Position.Sub(w.body(nodes[k+1]).Position)
	theta := incoming.AngleBetween(outgoing)

	fMu := 0.0
	if tL > 0 && tR > 0 {
		fMu = math.Min(tL, tR) * (math.Exp(point.Friction*theta) - 1)
	}

	sk := seg.Slides[k]
	var effective float64
	switch {
	case sk > 0:
		effective = delta - fMu
	case sk < 0:
		effective = delta + fMu
	default:
		if math.Abs(delta) <= fMu {
			effective = 0
		} else {
			effective = delta - lin.Sign(delta)*fMu
		}
	}

	mass := seg.Mass
	if mass <= 0 {
		mass = 1
	}
	accel := effective / mass
	sk += accel * dt

	if math.Abs(sk) <= math.Abs(accel*dt)-snapEpsilon && math.Abs(delta) <= fMu {
		sk = 0
	}

	seg.Partitions[k] -= sk * dt
	seg.Partitions[k+1] += sk * dt
	seg.Slides[k] = sk
	return nil
}
