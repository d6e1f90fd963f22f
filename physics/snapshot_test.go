package physics

import (
	"encoding/json"
	"testing"

	"github.com/M-FF-M/climbing-fall-simulation/math/lin"
)

func TestSnapshotIncludesEveryBodyAndRope(t *testing.T) {
	w := NewEmptyWorld()
	a := w.AddBody(KindAnchor, "a", lin.New(0, 0, 0), 0, 1, 0, 0.05)
	c := w.AddBody(KindClimber, "c", lin.New(0, -1, 0), 70, 1, 0, 0.05)
	w.Rope = &Rope{
		Joints:     []ID{a.ID(), c.ID()},
		Segments:   []*Segment{newStraightSegment(1, 1)},
		Elasticity: 0.08,
	}

	snap := w.Snapshot()
	if len(snap.Bodies) != 3 { // anchor + climber + one rope aggregate record
		t.Fatalf("len(Bodies) = %v, want 3", len(snap.Bodies))
	}

	var ropeRecords, pointRecords int
	for _, rec := range snap.Bodies {
		switch rec.Type {
		case RecordRope:
			ropeRecords++
			if len(rec.Positions) != 2 {
				t.Errorf("rope record Positions length = %v, want 2", len(rec.Positions))
			}
		case RecordPointMass:
			pointRecords++
		}
	}
	if ropeRecords != 1 {
		t.Errorf("ropeRecords = %v, want 1", ropeRecords)
	}
	if pointRecords != 2 {
		t.Errorf("pointRecords = %v, want 2", pointRecords)
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	w := NewEmptyWorld()
	a := w.AddBody(KindAnchor, "a", lin.New(0, 0, 0), 0, 1, 0, 0.05)
	c := w.AddBody(KindClimber, "c", lin.New(0, -1, 0), 70, 1, 0, 0.05)
	w.Rope = &Rope{
		Joints:     []ID{a.ID(), c.ID()},
		Segments:   []*Segment{newStraightSegment(1, 1)},
		Elasticity: 0.08,
	}
	snap := w.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if out.Time != snap.Time {
		t.Errorf("Time = %v, want %v", out.Time, snap.Time)
	}
	if len(out.Bodies) != len(snap.Bodies) {
		t.Fatalf("len(Bodies) = %v, want %v", len(out.Bodies), len(snap.Bodies))
	}
	for i := range snap.Bodies {
		if out.Bodies[i].Color.String() != snap.Bodies[i].Color.String() {
			t.Errorf("Bodies[%d].Color = %v, want %v", i, out.Bodies[i].Color, snap.Bodies[i].Color)
		}
	}
}

func TestBodyEnergyKineticAndPotential(t *testing.T) {
	w := NewEmptyWorld()
	w.Gravity = lin.New(0, -10, 0)
	b := w.AddBody(KindClimber, "c", lin.New(0, 2, 0), 2, 1, 0, 0.05)
	b.Velocity = lin.New(3, 0, 0)

	e := w.bodyEnergy(b)
	if got, want := e.Kinetic, 9.0; !lenEq(got, want) { // 0.5*2*3^2
		t.Errorf("Kinetic = %v, want %v", got, want)
	}
	if got, want := e.Potential, 40.0; !lenEq(got, want) { // -m*g.Dot(pos) = -2*(-10)*2
		t.Errorf("Potential = %v, want %v", got, want)
	}
}
