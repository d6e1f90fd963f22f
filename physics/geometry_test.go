package physics

import (
	"testing"

	"github.com/M-FF-M/climbing-fall-simulation/math/lin"
)

func TestPlaneLineIntersect(t *testing.T) {
	p := Plane{Normal: lin.New(0, 1, 0), Shift: 2}
	hit, ok := p.LineIntersect(lin.New(0, 0, 0), lin.New(0, 4, 0))
	if !ok {
		t.Fatal("expected an intersection")
	}
	if !hit.Aeq(lin.New(0, 2, 0)) {
		t.Errorf("hit = %v, want (0,2,0)", hit)
	}
}

func TestPlaneLineIntersectParallel(t *testing.T) {
	p := Plane{Normal: lin.New(0, 1, 0), Shift: 2}
	if _, ok := p.LineIntersect(lin.New(0, 5, 0), lin.New(1, 5, 0)); ok {
		t.Error("expected no intersection for a line parallel to the plane")
	}
}

func TestPlaneSegmentIntersectBounds(t *testing.T) {
	p := Plane{Normal: lin.New(0, 1, 0), Shift: 2}
	if _, ok := p.SegmentIntersect(lin.New(0, 0, 0), lin.New(0, 1, 0)); ok {
		t.Error("expected no intersection: the crossing point lies beyond the segment's end")
	}
	if _, ok := p.SegmentIntersect(lin.New(0, 0, 0), lin.New(0, 4, 0)); !ok {
		t.Error("expected an intersection within the segment")
	}
}

func TestPlaneClosestPoint(t *testing.T) {
	p := Plane{Normal: lin.New(0, 1, 0), Shift: 2}
	cp := p.ClosestPoint(lin.New(3, 10, -1))
	if !cp.Aeq(lin.New(3, 2, -1)) {
		t.Errorf("ClosestPoint = %v, want (3,2,-1)", cp)
	}
}
