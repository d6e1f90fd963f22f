// Package config loads and validates the keyed configuration described in
// the external interfaces contract: wall/ground geometry, the climber and
// belayer's initial placement and mass, the ordered list of deflection
// points, the rope's physical parameters, and the simulation's stepping
// and snapshot-rate parameters.
//
// Grounded on gazed-vu/config.go's functional-options pattern (Attr func
// (*Config), each setter clamping in place) and on load/shd.go's use of
// gopkg.in/yaml.v3 to parse a structured description file into a Go
// struct.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Draw is one configured deflection point: height and sideways offset
// follow the same convention as the climber's, wallDistance is how far
// the carabiner sits out from the wall plane.
type Draw struct {
	Height       float64 `yaml:"height"`
	Sideways     float64 `yaml:"sideways"`
	WallDistance float64 `yaml:"wall-distance"`
}

// Config is the full set of recognised options (§6). Every numeric field
// has a documented default and a clamp range, applied either through a
// functional Option at construction time or by Load when parsing an
// external YAML document.
type Config struct {
	Version string `yaml:"version"`

	WallAngleDeg  float64 `yaml:"wall-angle"`
	GroundPresent bool    `yaml:"ground-present"`
	GroundLevel   float64 `yaml:"ground-level"`

	ClimberHeight       float64 `yaml:"climber-height"`
	ClimberSideways     float64 `yaml:"climber-sideways"`
	ClimberWeight       float64 `yaml:"climber-weight"`
	ClimberWallDistance float64 `yaml:"climber-wall-distance"`

	LastDrawHeight float64 `yaml:"last-draw-height"`
	DrawNumber     int     `yaml:"draw-number"`
	Draws          []Draw  `yaml:"draws"`

	FixedAnchor         bool    `yaml:"fixed-anchor"`
	BelayerFixed        bool    `yaml:"belayer-fixed"`
	BelayerWeight       float64 `yaml:"belayer-weight"`
	BelayerWallDistance float64 `yaml:"belayer-wall-distance"`

	RopeSegments        int     `yaml:"rope-segments"`
	PhysicsStepSizeMS   float64 `yaml:"physics-step-size"`
	ElasticityConstant  float64 `yaml:"elasticity-constant"` // raw, ×10⁻³ 1/N
	RopeWeight          float64 `yaml:"rope-weight"`
	RopeBendDamping     float64 `yaml:"rope-bend-damping"`
	RopeStretchDamping  float64 `yaml:"rope-stretch-damping"`
	FrictionCoefficient float64 `yaml:"friction-coefficient"`
	Slack               float64 `yaml:"slack"`

	FrameRate          float64 `yaml:"frame-rate"`
	SimulationDuration float64 `yaml:"simulation-duration"`

	// JitterSeed seeds the construction-time position jitter (§4.1,
	// Open Question (iii)). Zero selects a time-seeded source.
	JitterSeed int64 `yaml:"jitter-seed"`
}

type bound struct{ lo, hi float64 }

var (
	boundWallAngle           = bound{0, 80}
	boundGroundLevel         = bound{-50, 50}
	boundClimberHeight       = bound{0, 100}
	boundClimberSideways     = bound{-10, 10}
	boundClimberWeight       = bound{1, 200}
	boundClimberWallDistance = bound{0, 5}
	boundLastDrawHeight      = bound{0, 100}
	boundDrawNumber          = bound{0, 50}
	boundBelayerWeight       = bound{1, 200}
	boundBelayerWallDistance = bound{0, 5}
	boundRopeSegments        = bound{1, 500}
	boundPhysicsStepSizeMS   = bound{0.0001, 10}
	boundElasticityConstant  = bound{0.001, 10}
	boundRopeWeight          = bound{0.01, 1}
	boundRopeBendDamping     = bound{0, 5}
	boundRopeStretchDamping  = bound{0, 5}
	boundFrictionCoefficient = bound{0, 2}
	boundSlack               = bound{-5, 5}
	boundFrameRate           = bound{1, 240}
	boundSimulationDuration  = bound{0.01, 600}
	boundDrawWallDistance    = bound{0, 5}
)

func (b bound) clamp(v float64) float64 {
	switch {
	case v < b.lo:
		return b.lo
	case v > b.hi:
		return b.hi
	}
	return v
}

// Default returns the documented default configuration: free fall of a
// 70kg climber from 5m on a vertical wall, no deflection points, no
// ground, a 70-segment rope.
func Default() Config {
	return Config{
		Version:             "1",
		ClimberHeight:       5,
		ClimberWeight:       70,
		ClimberWallDistance: 0.3,
		BelayerWeight:       70,
		BelayerWallDistance: 0.5,
		RopeSegments:        70,
		PhysicsStepSizeMS:   0.01,
		ElasticityConstant:  0.079,
		RopeWeight:          0.062,
		RopeBendDamping:     0.02,
		RopeStretchDamping:  0.1,
		FrictionCoefficient: 0.125,
		Slack:               0.1,
		FrameRate:           40,
		SimulationDuration:  2,
	}
}

// Option mutates a Config in place, clamping the value it sets to its
// documented range. A caller stacking several Options always ends with a
// valid Config, the same guarantee gazed-vu's functional options give a
// window Size().
type Option func(*Config)

func WallAngle(deg float64) Option {
	return func(c *Config) { c.WallAngleDeg = boundWallAngle.clamp(deg) }
}
func Ground(present bool, level float64) Option {
	return func(c *Config) { c.GroundPresent = present; c.GroundLevel = boundGroundLevel.clamp(level) }
}
func Climber(height, sideways, weight float64) Option {
	return func(c *Config) {
		c.ClimberHeight = boundClimberHeight.clamp(height)
		c.ClimberSideways = boundClimberSideways.clamp(sideways)
		c.ClimberWeight = boundClimberWeight.clamp(weight)
	}
}
func ClimberWallDistance(d float64) Option {
	return func(c *Config) { c.ClimberWallDistance = boundClimberWallDistance.clamp(d) }
}
func Draws(lastDrawHeight float64, draws []Draw) Option {
	return func(c *Config) {
		c.LastDrawHeight = boundLastDrawHeight.clamp(lastDrawHeight)
		c.DrawNumber = int(boundDrawNumber.clamp(float64(len(draws))))
		clamped := make([]Draw, len(draws))
		for i, d := range draws {
			clamped[i] = Draw{
				Height:       d.Height,
				Sideways:     d.Sideways,
				WallDistance: boundDrawWallDistance.clamp(d.WallDistance),
			}
		}
		c.Draws = clamped
	}
}
func Anchor(fixed bool) Option {
	return func(c *Config) { c.FixedAnchor = fixed }
}
func Belayer(fixed bool, weight float64) Option {
	return func(c *Config) {
		c.BelayerFixed = fixed
		c.BelayerWeight = boundBelayerWeight.clamp(weight)
	}
}
func BelayerWallDistance(d float64) Option {
	return func(c *Config) { c.BelayerWallDistance = boundBelayerWallDistance.clamp(d) }
}
func RopeSegments(n int) Option {
	return func(c *Config) { c.RopeSegments = int(boundRopeSegments.clamp(float64(n))) }
}
func PhysicsStepSize(ms float64) Option {
	return func(c *Config) { c.PhysicsStepSizeMS = boundPhysicsStepSizeMS.clamp(ms) }
}
func Elasticity(raw float64) Option {
	return func(c *Config) { c.ElasticityConstant = boundElasticityConstant.clamp(raw) }
}
func RopeWeight(kgPerM float64) Option {
	return func(c *Config) { c.RopeWeight = boundRopeWeight.clamp(kgPerM) }
}
func RopeDamping(bend, stretch float64) Option {
	return func(c *Config) {
		c.RopeBendDamping = boundRopeBendDamping.clamp(bend)
		c.RopeStretchDamping = boundRopeStretchDamping.clamp(stretch)
	}
}
func Friction(mu float64) Option {
	return func(c *Config) { c.FrictionCoefficient = boundFrictionCoefficient.clamp(mu) }
}
func Slack(s float64) Option {
	return func(c *Config) { c.Slack = boundSlack.clamp(s) }
}
func FrameRate(hz float64) Option {
	return func(c *Config) { c.FrameRate = boundFrameRate.clamp(hz) }
}
func Duration(seconds float64) Option {
	return func(c *Config) { c.SimulationDuration = boundSimulationDuration.clamp(seconds) }
}
func JitterSeed(seed int64) Option {
	return func(c *Config) { c.JitterSeed = seed }
}

// New returns Default() with every Option applied in order.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Warning records that a loaded field's value fell outside its documented
// range and was clamped.
type Warning struct {
	Key   string
	Given float64
	Used  float64
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %g out of range, clamped to %g", w.Key, w.Given, w.Used)
}

// Load decodes a YAML document into a Config seeded with Default()'s
// values (so missing keys take their documented default per §6), then
// clamps every field to its range, returning a Warning for each field
// that needed clamping.
func Load(r io.Reader) (Config, []Warning, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, nil, fmt.Errorf("config: decode: %w", err)
	}
	warnings := clampAll(&c)
	return c, warnings, nil
}

// Save encodes c as YAML.
func Save(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(c)
}

func clampAll(c *Config) []Warning {
	var warnings []Warning
	check := func(key string, given float64, b bound) float64 {
		used := b.clamp(given)
		if used != given {
			warnings = append(warnings, Warning{Key: key, Given: given, Used: used})
		}
		return used
	}

	c.WallAngleDeg = check("wall-angle", c.WallAngleDeg, boundWallAngle)
	c.GroundLevel = check("ground-level", c.GroundLevel, boundGroundLevel)
	c.ClimberHeight = check("climber-height", c.ClimberHeight, boundClimberHeight)
	c.ClimberSideways = check("climber-sideways", c.ClimberSideways, boundClimberSideways)
	c.ClimberWeight = check("climber-weight", c.ClimberWeight, boundClimberWeight)
	c.ClimberWallDistance = check("climber-wall-distance", c.ClimberWallDistance, boundClimberWallDistance)
	c.LastDrawHeight = check("last-draw-height", c.LastDrawHeight, boundLastDrawHeight)
	c.DrawNumber = int(check("draw-number", float64(c.DrawNumber), boundDrawNumber))
	c.BelayerWeight = check("belayer-weight", c.BelayerWeight, boundBelayerWeight)
	c.BelayerWallDistance = check("belayer-wall-distance", c.BelayerWallDistance, boundBelayerWallDistance)
	c.RopeSegments = int(check("rope-segments", float64(c.RopeSegments), boundRopeSegments))
	c.PhysicsStepSizeMS = check("physics-step-size", c.PhysicsStepSizeMS, boundPhysicsStepSizeMS)
	c.ElasticityConstant = check("elasticity-constant", c.ElasticityConstant, boundElasticityConstant)
	c.RopeWeight = check("rope-weight", c.RopeWeight, boundRopeWeight)
	c.RopeBendDamping = check("rope-bend-damping", c.RopeBendDamping, boundRopeBendDamping)
	c.RopeStretchDamping = check("rope-stretch-damping", c.RopeStretchDamping, boundRopeStretchDamping)
	c.FrictionCoefficient = check("friction-coefficient", c.FrictionCoefficient, boundFrictionCoefficient)
	c.Slack = check("slack", c.Slack, boundSlack)
	c.FrameRate = check("frame-rate", c.FrameRate, boundFrameRate)
	c.SimulationDuration = check("simulation-duration", c.SimulationDuration, boundSimulationDuration)

	for i := range c.Draws {
		c.Draws[i].WallDistance = check(fmt.Sprintf("draw-%d-wall-distance", i), c.Draws[i].WallDistance, boundDrawWallDistance)
	}
	return warnings
}
