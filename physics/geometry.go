package physics

// geometry.go: plane/line/point helpers for the excluded rendering
// collaborator, which needs to turn a Barrier's half-space into a finite
// quad and test where a rope segment crosses it. Grounded on
// gazed-vu/physics/caster.go's castRayPlane, ported from a ray cast
// (origin + direction, t >= 0) to the line- and segment-intersection
// tests a barrier-drawing routine actually wants.

import "github.com/M-FF-M/climbing-fall-simulation/math/lin"

// Plane is Barrier's geometry, exposed independently of the physical
// response Barrier.Project applies.
type Plane struct {
	Normal lin.Vector
	Shift  float64
}

// PlaneOf returns b's boundary surface as a Plane.
func PlaneOf(b Barrier) Plane { return Plane{Normal: b.Normal, Shift: b.Shift} }

// LineIntersect returns the point where the infinite line through a and b
// crosses the plane, and false if the line is parallel to the plane (or
// lies within it).
func (p Plane) LineIntersect(a, b lin.Vector) (lin.Vector, bool) {
	dir := b.Sub(a)
	denom := p.Normal.Dot(dir)
	if lin.AeqZ(denom) {
		return lin.Zero, false
	}
	t := (p.Shift - p.Normal.Dot(a)) / denom
	return a.Add(dir.Scale(t)), true
}

// SegmentIntersect is LineIntersect restricted to the closed segment [a,b]:
// it reports false if the crossing point lies outside that segment.
func (p Plane) SegmentIntersect(a, b lin.Vector) (lin.Vector, bool) {
	hit, ok := p.LineIntersect(a, b)
	if !ok {
		return lin.Zero, false
	}
	dir := b.Sub(a)
	denom := dir.Dot(dir)
	if lin.AeqZ(denom) {
		return lin.Zero, false
	}
	t := hit.Sub(a).Dot(dir) / denom
	if t < 0 || t > 1 {
		return lin.Zero, false
	}
	return hit, true
}

// ClosestPoint returns the orthogonal projection of q onto the plane.
func (p Plane) ClosestPoint(q lin.Vector) lin.Vector {
	d := p.Normal.Dot(q) - p.Shift
	return q.Sub(p.Normal.Scale(d))
}
