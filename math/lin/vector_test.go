package lin

import (
	"math"
	"testing"
)

func TestAdd(t *testing.T) {
	v := New(1, 2, 3).Add(New(4, 5, 6))
	if want := (Vector{5, 7, 9}); !v.Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestSub(t *testing.T) {
	v := New(4, 5, 6).Sub(New(1, 2, 3))
	if want := (Vector{3, 3, 3}); !v.Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestNeg(t *testing.T) {
	v := New(1, -2, 3).Neg()
	if want := (Vector{-1, 2, -3}); !v.Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestScale(t *testing.T) {
	v := New(1, 2, 3).Scale(2)
	if want := (Vector{2, 4, 6}); !v.Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestDot(t *testing.T) {
	if d := New(1, 2, 3).Dot(New(4, 5, 6)); d != 32 {
		t.Errorf("got %v want 32", d)
	}
}

func TestCross(t *testing.T) {
	v := New(1, 0, 0).Cross(New(0, 1, 0))
	if want := (Vector{0, 0, 1}); !v.Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestLen(t *testing.T) {
	if l := New(3, 4, 0).Len(); l != 5 {
		t.Errorf("got %v want 5", l)
	}
}

func TestUnit(t *testing.T) {
	v := New(3, 4, 0).Unit()
	if !Aeq(v.Len(), 1) {
		t.Errorf("expected unit length, got %v", v.Len())
	}
	if z := Zero.Unit(); !z.Eq(Zero) {
		t.Errorf("zero vector should stay zero, got %v", z)
	}
}

func TestVectorLerp(t *testing.T) {
	v := New(0, 0, 0).Lerp(New(10, 10, 10), 0.5)
	if want := (Vector{5, 5, 5}); !v.Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestAngleBetween(t *testing.T) {
	a := New(1, 0, 0).AngleBetween(New(0, 1, 0))
	if !Aeq(a, HalfPi) {
		t.Errorf("got %v want %v", a, HalfPi)
	}
	// drift that pushes the cosine slightly outside [-1,1] must not panic
	// or return NaN.
	u := New(1, 0, 0)
	a2 := u.AngleBetween(New(1+1e-10, 0, 0))
	if math.IsNaN(a2) {
		t.Errorf("angle between near-parallel vectors is NaN")
	}
}

func TestNormalize(t *testing.T) {
	if _, ok := Normalize(Zero); ok {
		t.Errorf("expected Normalize of zero vector to fail")
	}
	u, ok := Normalize(New(2, 0, 0))
	if !ok || !Aeq(u.V.Len(), 1) {
		t.Errorf("expected unit vector, got %v ok=%v", u, ok)
	}
}
