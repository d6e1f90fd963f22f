package lin

// vector.go: a 3D vector with value semantics. Every operation returns a
// new Vector rather than mutating the receiver, so a Vector can be passed
// around and compared the same way an int or a string is - callers never
// need to guess whether a function stashed a reference to their vector.
// This trades the teacher library's scratch-vector allocation avoidance
// for the immutability the body/rope invariants are easiest to state
// against; the simulation's hot loop is one pass over a few hundred
// bodies per step, not millions of vertices per frame, so the extra
// copies are not the bottleneck the teacher's 3D renderer guarded against.

import "math"

// Vector is a 3 element real vector. The zero Vector is the origin.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// Zero is the additive identity vector.
var Zero = Vector{}

// New returns the vector (x, y, z).
func New(x, y, z float64) Vector { return Vector{X: x, Y: y, Z: z} }

// Eq (==) returns true if every element of v equals the corresponding
// element of a exactly.
func (v Vector) Eq(a Vector) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) returns true if every element of v is almost-equal to the
// corresponding element of a.
func (v Vector) Aeq(a Vector) bool {
	return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z)
}

// IsZero returns true if the squared length of v is close enough to zero
// that it makes no difference.
func (v Vector) IsZero() bool { return v.Dot(v) < Epsilon }

// Add (+) returns v plus a.
func (v Vector) Add(a Vector) Vector {
	return Vector{v.X + a.X, v.Y + a.Y, v.Z + a.Z}
}

// Sub (-) returns v minus a.
func (v Vector) Sub(a Vector) Vector {
	return Vector{v.X - a.X, v.Y - a.Y, v.Z - a.Z}
}

// Neg (-) returns the negation of v.
func (v Vector) Neg() Vector { return Vector{-v.X, -v.Y, -v.Z} }

// Scale (*) returns v with every element multiplied by s.
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and a.
func (v Vector) Dot(a Vector) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Cross returns the cross product of v and a: a vector perpendicular to
// both v and a.
func (v Vector) Cross(a Vector) Vector {
	return Vector{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

// Len returns the length (2-norm) of v.
func (v Vector) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the squared length of v, avoiding the square root when
// only relative magnitudes matter (e.g. broad comparisons).
func (v Vector) LenSqr() float64 { return v.Dot(v) }

// Dist returns the distance between the points v and a.
func (v Vector) Dist(a Vector) float64 { return v.Sub(a).Len() }

// Unit returns v scaled to length 1. The zero vector is returned
// unchanged since it has no direction to normalize.
func (v Vector) Unit() Vector {
	length := v.Len()
	if length == 0 {
		return v
	}
	return v.Scale(1 / length)
}

// Lerp returns the linear interpolation between v and a at the given
// fraction, which is expected to be in [0,1] but is not clamped.
func (v Vector) Lerp(a Vector, fraction float64) Vector {
	return Vector{
		Lerp(v.X, a.X, fraction),
		Lerp(v.Y, a.Y, fraction),
		Lerp(v.Z, a.Z, fraction),
	}
}

// AngleBetween returns the angle in radians between v and a, clamping the
// cosine of the angle to [-1,1] first so that floating point drift in
// near-parallel or near-antiparallel vectors cannot push acos outside its
// domain and return NaN (Open Question (i) in the spec).
func (v Vector) AngleBetween(a Vector) float64 {
	denom := math.Sqrt(v.Dot(v) * a.Dot(a))
	if denom == 0 {
		return 0
	}
	cos := Clamp(v.Dot(a)/denom, -1, 1)
	return math.Acos(cos)
}

// UnitVector is a Vector already known to have length 1. Carrying the
// fact forward avoids re-normalizing a direction that is reused several
// times within one force computation (the spec calls this an optional
// "known-normalised" cache on Vector; here it is a distinct type so the
// zero value can never be mistaken for a validated unit vector).
type UnitVector struct {
	V Vector
}

// Normalize returns v as a UnitVector and true, or the zero UnitVector
// and false if v has no direction to normalize.
func Normalize(v Vector) (UnitVector, bool) {
	if v.IsZero() {
		return UnitVector{}, false
	}
	return UnitVector{V: v.Unit()}, true
}
