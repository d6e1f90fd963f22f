package physics

// snapshot.go: the immutable per-frame record the advance loop emits.
// Grounded on gazed-vu/pov.go's plain-data transform snapshot idea,
// generalized from a scene-graph node to §3's Snapshot: a tagged variant
// of point-mass and rope payloads plus per-body energy and force fields,
// JSON-round-trippable per the persisted-snapshot contract (§6).

import "github.com/M-FF-M/climbing-fall-simulation/math/lin"

// RecordType distinguishes a Snapshot's per-entry payload.
type RecordType string

const (
	RecordPointMass RecordType = "point-mass"
	RecordRope      RecordType = "rope"
)

// Energy is the kinetic/potential/elastic breakdown carried by a
// BodyRecord.
type Energy struct {
	Kinetic   float64 `json:"kinetic"`
	Potential float64 `json:"potential"`
	Elastic   float64 `json:"elastic"`
	Total     float64 `json:"total"`
}

// BodyRecord is one entry of a Snapshot: either a single body's
// point-mass state, or the rope's own aggregate polyline-and-energy
// record.
type BodyRecord struct {
	Type RecordType `json:"type"`
	ID   ID         `json:"id"`
	Name string     `json:"name,omitempty"`

	InstantForce    float64 `json:"instantForce"`
	AverageForce    float64 `json:"averageForce"`
	AverageWindow   float64 `json:"averageWindow"`
	MaxSpeed        float64 `json:"maxSpeed,omitempty"`
	MaxAverageForce float64 `json:"maxAverageForce,omitempty"`

	Energy Energy `json:"energy"`

	// Position is set for RecordPointMass entries.
	Position *lin.Vector `json:"position,omitempty"`
	// Positions is set for the RecordRope entry: the ordered polyline
	// belayer -> deflections -> climber.
	Positions []lin.Vector `json:"positions,omitempty"`

	Color     Color   `json:"color"`
	Radius    float64 `json:"radius,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`
}

// Snapshot is a versioned, immutable record of the simulation's state at
// one instant.
type Snapshot struct {
	Time    float64      `json:"time"`
	Version string       `json:"version,omitempty"`
	Bodies  []BodyRecord `json:"bodies"`
}

func kindColor(k Kind) Color {
	switch k {
	case KindAnchor:
		return RGB(60, 60, 60)
	case KindClimber:
		return RGB(200, 30, 30)
	case KindQuickdraw:
		return RGB(30, 120, 200)
	case KindJoint:
		return RGB(120, 120, 120)
	default:
		return RGB(90, 90, 90)
	}
}

func kindRadius(k Kind) float64 {
	switch k {
	case KindAnchor, KindClimber:
		return 0.15
	case KindQuickdraw:
		return 0.05
	default:
		return 0.02
	}
}

// Snapshot captures the World's current state as an immutable record.
// Forces are read as-is (call refreshForces first if a caller wants them
// consistent with the current geometry outside of Advance's own loop).
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{Time: w.simTime, Version: w.version}

	for _, b := range w.bodies {
		pos := b.Position
		snap.Bodies = append(snap.Bodies, BodyRecord{
			Type:            RecordPointMass,
			ID:              b.ID(),
			Name:            b.Name(),
			InstantForce:    b.InstantForce(),
			AverageForce:    b.AverageForce(),
			AverageWindow:   b.avg.window,
			MaxSpeed:        b.MaxSpeed(),
			MaxAverageForce: b.MaxAverageForce(),
			Energy:          w.bodyEnergy(b),
			Position:        &pos,
			Color:           kindColor(b.Kind()),
			Radius:          kindRadius(b.Kind()),
		})
	}

	if w.Rope != nil {
		snap.Bodies = append(snap.Bodies, w.ropeRecord())
	}
	return snap
}

func (w *World) bodyEnergy(b *Body) Energy {
	kinetic := 0.5 * b.Mass * b.Velocity.LenSqr()
	potential := -b.Mass * w.Gravity.Dot(b.Position)
	return Energy{
		Kinetic:   kinetic,
		Potential: potential,
		Total:     kinetic + potential,
	}
}

func (w *World) ropeRecord() BodyRecord {
	r := w.Rope
	positions := make([]lin.Vector, 0, len(r.Joints))
	for i := range r.Segments {
		nodes := r.nodes(i)
		for j := 0; j < len(nodes)-1; j++ {
			positions = append(positions, w.body(nodes[j]).Position)
		}
	}
	if len(r.Segments) > 0 {
		last := r.nodes(len(r.Segments) - 1)
		positions = append(positions, w.body(last[len(last)-1]).Position)
	}
	elastic := r.TotalElasticEnergy(w)
	return BodyRecord{
		Type:      RecordRope,
		Energy:    Energy{Elastic: elastic, Total: elastic},
		Positions: positions,
		Color:     RGB(220, 180, 40),
		Thickness: 0.01,
	}
}
