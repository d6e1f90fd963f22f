package physics

// remesh.go: the post-step merge/split passes (§4.4). Grounded on the
// same index-recomputation idiom gazed-vu/physics/pbd.go uses when a
// constraint solve can invalidate the list it is iterating (there, solved
// constraints are compacted in place; here, merges delete a predecessor
// and splits insert a successor, both of which shift every later index).

// remesh runs Pass A (merge short sub-partitions) then Pass B (split long
// ones) over the rope's segments.
func (w *World) remesh() error {
	w.remeshMerge()
	return w.remeshSplit()
}

// remeshMerge implements §4.4 Pass A.
func (w *World) remeshMerge() {
	r := w.Rope
	i := 0
	for i < len(r.Segments) {
		if w.mergeLeadingShortfall(i) {
			if i > 0 {
				i--
			}
			continue
		}
		if w.mergeTrailingShortfall(i) {
			continue // the merged segment still lives at index i
		}
		i++
	}
}

// mergeLeadingShortfall handles a too-short partition[0] on segment i,
// reporting whether it mutated the rope.
func (w *World) mergeLeadingShortfall(i int) bool {
	r := w.Rope
	seg := r.Segments[i]
	if seg.Partitions[0] >= r.RestMin {
		return false
	}
	if i > 0 {
		w.mergeSegments(i-1, i)
		return true
	}
	if seg.N() == 0 {
		w.log.Warn("rope: degenerate short tail at rope start", "segment", i, "partition", seg.Partitions[0])
		return false
	}
	seg.Partitions[1] += seg.Partitions[0]
	seg.Partitions = seg.Partitions[1:]
	seg.Deflections = seg.Deflections[1:]
	seg.Slides = seg.Slides[1:]
	return true
}

// mergeTrailingShortfall handles a too-short final partition on segment i.
func (w *World) mergeTrailingShortfall(i int) bool {
	r := w.Rope
	seg := r.Segments[i]
	last := seg.N()
	if seg.Partitions[last] >= r.RestMin {
		return false
	}
	if i < len(r.Segments)-1 {
		w.mergeSegments(i, i+1)
		return true
	}
	if seg.N() == 0 {
		w.log.Warn("rope: degenerate short tail at rope end", "segment", i, "partition", seg.Partitions[last])
		return false
	}
	seg.Partitions[last-1] += seg.Partitions[last]
	seg.Partitions = seg.Partitions[:last]
	seg.Deflections = seg.Deflections[:len(seg.Deflections)-1]
	seg.Slides = seg.Slides[:len(seg.Slides)-1]
	return true
}

// mergeSegments concatenates Segments[left] and Segments[right] (right
// must equal left+1) into one segment living at index left, removes their
// shared joint body from Joints, and re-balances joint masses.
func (w *World) mergeSegments(left, right int) {
	r := w.Rope
	ls, rs := r.Segments[left], r.Segments[right]

	merged := &Segment{Mass: ls.Mass + rs.Mass}
	merged.Deflections = append(append([]ID{}, ls.Deflections...), rs.Deflections...)
	merged.Slides = append(append([]float64{}, ls.Slides...), rs.Slides...)

	boundary := ls.Partitions[len(ls.Partitions)-1] + rs.Partitions[0]
	merged.Partitions = append(append([]float64{}, ls.Partitions[:len(ls.Partitions)-1]...), boundary)
	merged.Partitions = append(merged.Partitions, rs.Partitions[1:]...)

	r.Segments[left] = merged
	r.Segments = append(r.Segments[:right], r.Segments[right+1:]...)
	r.Joints = append(r.Joints[:right], r.Joints[right+1:]...)

	r.rebalanceJointMasses(w)
}

// remeshSplit implements §4.4 Pass B.
func (w *World) remeshSplit() error {
	r := w.Rope
	i := 0
	for i < len(r.Segments) {
		seg := r.Segments[i]
		n := seg.N()

		for k := 1; k < n; k++ {
			if seg.Partitions[k] > r.RestMax {
				return &SimulationError{Kind: ErrUnsupportedSplit, SegmentIdx: i, Deflections: n, SimTime: w.simTime}
			}
		}

		if n >= 1 && seg.Partitions[0] > r.RestMax {
			w.splitLeading(i)
			continue
		}
		if n >= 1 && seg.Partitions[n] > r.RestMax {
			w.splitTrailing(i)
			continue
		}
		i++
	}
	return nil
}

// splitLeading splits off a new L_default-rest-length segment between
// segment i's A endpoint and its first deflection point.
func (w *World) splitLeading(i int) {
	r := w.Rope
	seg := r.Segments[i]

	a := w.body(r.Joints[i])
	d0 := w.body(seg.Deflections[0])
	oldPartition := seg.Partitions[0]
	frac := r.RestDefault / oldPartition
	pos := a.Position.Lerp(d0.Position, frac)

	newMass := r.RestDefault * r.WeightPerMetre
	if newMass > seg.Mass {
		newMass = seg.Mass
	}

	joint := w.AddBody(KindJoint, "", pos, 0, 1, 0, defaultForceAvgWindow)
	joint.Velocity = a.Velocity

	newSeg := &Segment{Mass: newMass, Partitions: []float64{r.RestDefault}}

	seg.Mass -= newMass
	seg.Partitions[0] = oldPartition - r.RestDefault

	r.Joints = append(r.Joints[:i+1], append([]ID{joint.ID()}, r.Joints[i+1:]...)...)
	r.Segments = append(r.Segments[:i], append([]*Segment{newSeg}, r.Segments[i:]...)...)

	r.rebalanceJointMasses(w)
}

// splitTrailing splits off a new L_default-rest-length segment between
// segment i's last deflection point and its B endpoint.
func (w *World) splitTrailing(i int) {
	r := w.Rope
	seg := r.Segments[i]
	n := seg.N()
	last := n

	b := w.body(r.Joints[i+1])
	dLast := w.body(seg.Deflections[n-1])
	oldPartition := seg.Partitions[last]
	frac := r.RestDefault / oldPartition
	pos := b.Position.Lerp(dLast.Position, frac)

	newMass := r.RestDefault * r.WeightPerMetre
	if newMass > seg.Mass {
		newMass = seg.Mass
	}

	joint := w.AddBody(KindJoint, "", pos, 0, 1, 0, defaultForceAvgWindow)
	joint.Velocity = b.Velocity

	newSeg := &Segment{Mass: newMass, Partitions: []float64{r.RestDefault}}

	seg.Mass -= newMass
	seg.Partitions[last] = oldPartition - r.RestDefault

	r.Joints = append(r.Joints[:i+1], append([]ID{joint.ID()}, r.Joints[i+1:]...)...)
	r.Segments = append(r.Segments[:i+1], append([]*Segment{newSeg}, r.Segments[i+1:]...)...)

	r.rebalanceJointMasses(w)
}
