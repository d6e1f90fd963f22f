package physics

// rope.go: the rope itself - an ordered chain of Segments bridging an
// ordered chain of joint bodies. Grounded on the same ownership pattern
// gazed-vu/physics/pbd.go uses for its constraint list: a flat slice owned
// by one object, walked front to back each step.

// Rope is the chain-of-segments climbing rope. Joints[0] is the anchor
// end, Joints[len(Joints)-1] is the climber end, and Segments[i] bridges
// Joints[i] and Joints[i+1].
type Rope struct {
	Joints   []ID
	Segments []*Segment

	Elasticity     float64 // κ in 1/N: strain (stretch per metre of rest length) per newton of tension.
	DampPerp       float64 // d_perp, transverse damping coefficient.
	DampPar        float64 // d_par, longitudinal damping coefficient.
	RestMin        float64 // L_min
	RestMax        float64 // L_max
	RestDefault    float64 // L_default, the length a freshly split segment is given.
	WeightPerMetre float64 // kg of rope mass per metre of rest length.
}

// A returns the body bridged at the start of Segments[i].
func (r *Rope) A(i int) ID { return r.Joints[i] }

// B returns the body bridged at the end of Segments[i].
func (r *Rope) B(i int) ID { return r.Joints[i+1] }

// nodes returns the ordered chain of bodies threaded by Segments[i]: A,
// its deflection points, then B.
func (r *Rope) nodes(i int) []ID {
	seg := r.Segments[i]
	out := make([]ID, 0, len(seg.Deflections)+2)
	out = append(out, r.A(i))
	out = append(out, seg.Deflections...)
	out = append(out, r.B(i))
	return out
}

// TotalRestLength returns the sum of every segment's rest length.
func (r *Rope) TotalRestLength() float64 {
	sum := 0.0
	for _, s := range r.Segments {
		sum += s.RestLen()
	}
	return sum
}

// TotalMass returns the sum of every segment's donated mass (the rope's
// own mass, excluding the anchor/climber bodies' configured masses).
func (r *Rope) TotalMass() float64 {
	sum := 0.0
	for _, s := range r.Segments {
		sum += s.Mass
	}
	return sum
}

// rebalanceJointMasses recomputes every interior joint body's mass as the
// ½-neighbour average of the two segments it bridges, leaving the two
// outermost joints (anchor and climber) untouched. Run after any merge or
// split so invariant mass conservation holds without threading "the three
// affected bodies" through every call site individually - a full recompute
// costs O(segments) and is always correct since segment masses elsewhere
// are unchanged by a local re-mesh action.
func (r *Rope) rebalanceJointMasses(w *World) {
	for j := 1; j < len(r.Joints)-1; j++ {
		body := w.body(r.Joints[j])
		body.Mass = 0.5*r.Segments[j-1].Mass + 0.5*r.Segments[j].Mass
	}
}

// CurrentLength returns the current stretched (Euclidean) length of
// segment i's whole polyline, A through every deflection point to B.
func (r *Rope) CurrentLength(w *World, i int) float64 {
	nodes := r.nodes(i)
	sum := 0.0
	for j := 0; j+1 < len(nodes); j++ {
		sum += w.body(nodes[j]).Position.Dist(w.body(nodes[j+1]).Position)
	}
	return sum
}

// Tension returns segment i's overall tension σ = (L_cur−L_rest)/(L_rest·κ),
// treating the whole segment as one effective spring (distinct from the
// per-sub-edge tensions used internally by the force computation).
func (r *Rope) Tension(w *World, i int) float64 {
	seg := r.Segments[i]
	rest := seg.RestLen()
	if rest <= 0 {
		return 0
	}
	return (r.CurrentLength(w, i) - rest) / (rest * r.Elasticity)
}

// ElasticEnergy returns segment i's stored elastic energy
// ½·(L_cur−L_rest)²/(L_rest·κ).
func (r *Rope) ElasticEnergy(w *World, i int) float64 {
	seg := r.Segments[i]
	rest := seg.RestLen()
	if rest <= 0 {
		return 0
	}
	diff := r.CurrentLength(w, i) - rest
	return 0.5 * diff * diff / (rest * r.Elasticity)
}

// TotalElasticEnergy sums ElasticEnergy over every segment.
func (r *Rope) TotalElasticEnergy(w *World) float64 {
	sum := 0.0
	for i := range r.Segments {
		sum += r.ElasticEnergy(w, i)
	}
	return sum
}

// clone returns a deep copy of the rope's topology (not the bodies it
// references).
func (r *Rope) clone() *Rope {
	c := &Rope{
		Joints:         append([]ID(nil), r.Joints...),
		Segments:       make([]*Segment, len(r.Segments)),
		Elasticity:     r.Elasticity,
		DampPerp:       r.DampPerp,
		DampPar:        r.DampPar,
		RestMin:        r.RestMin,
		RestMax:        r.RestMax,
		RestDefault:    r.RestDefault,
		WeightPerMetre: r.WeightPerMetre,
	}
	for i, s := range r.Segments {
		c.Segments[i] = s.clone()
	}
	return c
}
