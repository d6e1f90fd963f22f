package physics

// construct.go: §4.1's World construction procedure. Grounded on
// gazed-vu/eng.go's New, which seeds its initial scene graph from a
// config struct in one linear pass; this does the same for the rope's
// initial polyline, resampled into evenly (stretched-length) spaced
// segments.

import (
	"math"
	"math/rand"

	"github.com/M-FF-M/climbing-fall-simulation/config"
	"github.com/M-FF-M/climbing-fall-simulation/math/lin"
)

// Construct builds a World from a validated Config: it places the
// anchor, climber and every deflection point (with a small symmetric
// jitter to break solver-stalling symmetry), resamples the belayer-to-
// climber polyline into Config.RopeSegments equal-stretched-length
// segments, registers the wall and optional ground barriers, and runs one
// re-meshing pass to absorb any already-too-short sub-partition.
func Construct(cfg config.Config, opts ...Option) (*World, error) {
	w := newWorld()
	if cfg.JitterSeed != 0 {
		w.jitter = rand.New(rand.NewSource(cfg.JitterSeed))
	}
	// Options are applied after the seed so an explicit WithJitterSource
	// takes precedence over Config.JitterSeed.
	for _, o := range opts {
		o(w)
	}
	w.version = cfg.Version
	w.MaxStep = cfg.PhysicsStepSizeMS / 1000

	wallAngle := lin.Rad(cfg.WallAngleDeg)
	tanAngle := math.Tan(wallAngle)
	w.Barriers = append(w.Barriers, NewBarrier(lin.New(0, -tanAngle, 1), 0))
	if cfg.GroundPresent {
		w.Barriers = append(w.Barriers, NewBarrier(lin.New(0, 1, 0), cfg.GroundLevel))
	}

	place := func(height, sideways, wallDistance float64) lin.Vector {
		return lin.New(sideways, height, wallDistance+height*tanAngle).Add(w.jitterOffset())
	}

	anchorFixed := cfg.FixedAnchor || cfg.BelayerFixed
	anchorMass := cfg.BelayerWeight
	if anchorFixed {
		anchorMass = 0
	}
	anchor := w.AddBody(KindAnchor, "belayer", place(0, 0, cfg.BelayerWallDistance), anchorMass, 1, 0, defaultForceAvgWindow)

	climber := w.AddBody(KindClimber, "climber", place(cfg.ClimberHeight, cfg.ClimberSideways, cfg.ClimberWallDistance), cfg.ClimberWeight, 1, 0, defaultForceAvgWindow)

	draws := resolveDraws(cfg)
	drawBodies := make([]*Body, len(draws))
	drawPositions := make([]lin.Vector, len(draws))
	for i, d := range draws {
		pos := place(d.Height, d.Sideways, d.WallDistance)
		drawPositions[i] = pos
		drawBodies[i] = w.AddBody(KindQuickdraw, "", pos, 0, 1, cfg.FrictionCoefficient, defaultForceAvgWindow)
	}

	nodes := buildPolyline(anchor.Position, climber.Position, drawPositions)
	l0 := nodes[len(nodes)-1].arc
	lrest := l0 + cfg.Slack
	if lrest <= 0 {
		lrest = l0
	}
	f := 1.0
	if lrest > 0 {
		f = l0 / lrest
	}

	n := cfg.RopeSegments
	lDefault := lrest / float64(n)

	r := &Rope{
		Elasticity:     cfg.ElasticityConstant * 1e-3,
		DampPerp:       cfg.RopeBendDamping,
		DampPar:        cfg.RopeStretchDamping,
		RestDefault:    lDefault,
		RestMin:        0.01 * lDefault,
		RestMax:        1.1 * lDefault,
		WeightPerMetre: cfg.RopeWeight,
	}
	r.Joints = make([]ID, n+1)
	r.Joints[0] = anchor.ID()
	r.Joints[n] = climber.ID()

	boundaries := make([]float64, n+1)
	for i := range boundaries {
		boundaries[i] = float64(i) * l0 / float64(n)
	}
	for i := 1; i < n; i++ {
		jointPos := arcPosition(nodes, boundaries[i])
		joint := w.AddBody(KindJoint, "", jointPos, 0, 1, 0, defaultForceAvgWindow)
		r.Joints[i] = joint.ID()
	}

	r.Segments = make([]*Segment, n)
	drawIdx := 0
	for i := 0; i < n; i++ {
		lo, hi := boundaries[i], boundaries[i+1]
		seg := &Segment{}

		chain := []segNode{{arc: lo, body: r.Joints[i]}}
		for drawIdx < len(draws) {
			arc := nodes[drawIdx+1].arc // nodes[0] is the anchor, draws start at nodes[1]
			inLast := i == n-1
			if arc >= lo && (arc < hi || (inLast && arc <= hi+lin.Epsilon)) {
				chain = append(chain, segNode{arc: arc, body: drawBodies[drawIdx].ID(), defl: true})
				drawIdx++
				continue
			}
			break
		}
		chain = append(chain, segNode{arc: hi, body: r.Joints[i+1]})

		for k := 0; k+1 < len(chain); k++ {
			stretched := chain[k+1].arc - chain[k].arc
			seg.Partitions = append(seg.Partitions, stretched/f)
		}
		for _, node := range chain[1 : len(chain)-1] {
			seg.Deflections = append(seg.Deflections, node.body)
		}
		seg.Slides = make([]float64, len(seg.Deflections))
		seg.Mass = seg.RestLen() * cfg.RopeWeight

		r.Segments[i] = seg
	}

	w.Rope = r
	r.rebalanceJointMasses(w)

	if err := w.remesh(); err != nil {
		return nil, err
	}
	return w, nil
}

// resolveDraws returns the configured deflection points: Config.Draws
// verbatim if the caller supplied them, otherwise DrawNumber points
// evenly spaced in height up to LastDrawHeight, at the default wall
// distance of 0.1m and zero sideways offset (§6's documented default).
func resolveDraws(cfg config.Config) []config.Draw {
	if len(cfg.Draws) > 0 {
		return cfg.Draws
	}
	if cfg.DrawNumber <= 0 {
		return nil
	}
	draws := make([]config.Draw, cfg.DrawNumber)
	for i := 0; i < cfg.DrawNumber; i++ {
		height := cfg.LastDrawHeight * float64(i+1) / float64(cfg.DrawNumber)
		draws[i] = config.Draw{Height: height, WallDistance: 0.1}
	}
	return draws
}

// jitterOffset returns a small symmetric uniform jitter in [-0.01,0.01]m
// on each axis, used to break the perfect symmetry that would otherwise
// stall the solver (§4.1 step 1).
func (w *World) jitterOffset() lin.Vector {
	axis := func() float64 { return (w.jitter.Float64()*2 - 1) * 0.01 }
	return lin.New(axis(), axis(), axis())
}

// segNode is one waypoint while walking a single segment's slice of the
// polyline during construction: a rope-arc position plus the body that
// sits there (a deflection point, or the segment's own boundary joint).
type segNode struct {
	arc  float64
	body ID
	defl bool
}

// polyNode is one waypoint of the belayer->deflections->climber polyline,
// tagged with its cumulative stretched arc length from the belayer.
type polyNode struct {
	pos lin.Vector
	arc float64
}

func buildPolyline(anchor, climber lin.Vector, draws []lin.Vector) []polyNode {
	nodes := make([]polyNode, 0, len(draws)+2)
	nodes = append(nodes, polyNode{pos: anchor, arc: 0})
	prev := anchor
	arc := 0.0
	for _, d := range draws {
		arc += prev.Dist(d)
		nodes = append(nodes, polyNode{pos: d, arc: arc})
		prev = d
	}
	arc += prev.Dist(climber)
	nodes = append(nodes, polyNode{pos: climber, arc: arc})
	return nodes
}

// arcPosition interpolates the polyline's position at the given
// cumulative arc length, clamping to the polyline's two ends.
func arcPosition(nodes []polyNode, arc float64) lin.Vector {
	if arc <= nodes[0].arc {
		return nodes[0].pos
	}
	last := nodes[len(nodes)-1]
	if arc >= last.arc {
		return last.pos
	}
	for i := 0; i+1 < len(nodes); i++ {
		a, b := nodes[i], nodes[i+1]
		if arc >= a.arc && arc <= b.arc {
			span := b.arc - a.arc
			if span <= 0 {
				return a.pos
			}
			return a.pos.Lerp(b.pos, (arc-a.arc)/span)
		}
	}
	return last.pos
}
